package utils

import "testing"

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"x", false},
		{" x ", false},
	}
	for _, tt := range tests {
		if got := IsEmpty(tt.in); got != tt.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last@sub.domain.org", "A+tag@Example.IO"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	invalid := []string{"", "plainaddress", "@missing.local", "user@", "user@domain"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidPasswordLength(t *testing.T) {
	if IsValidPasswordLength("short", 8) {
		t.Error("5-char password should fail an 8-char minimum")
	}
	if !IsValidPasswordLength("longenough", 8) {
		t.Error("10-char password should pass an 8-char minimum")
	}
}
