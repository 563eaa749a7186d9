package services

import (
	"errors"
	"testing"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(nil, nil)
	staff := Actor{ID: 2, Username: "staffer", Role: models.RoleStaff}

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing username", RegisterRequest{Username: " ", Password: "longenough"}},
		{"short password", RegisterRequest{Username: "newuser", Password: "short"}},
		{"bad email", RegisterRequest{Username: "newuser", Password: "longenough", Email: "nope"}},
		{"staff cannot grant admin", RegisterRequest{Username: "newuser", Password: "longenough", Role: models.RoleAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(staff, tt.req)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestActorIsSuperadmin(t *testing.T) {
	if !(Actor{Role: models.RoleSuperadmin}).IsSuperadmin() {
		t.Error("superadmin role should report superadmin")
	}
	if (Actor{Role: models.RoleAdmin}).IsSuperadmin() {
		t.Error("admin role should not report superadmin")
	}
	if (Actor{}).IsSuperadmin() {
		t.Error("empty actor should not report superadmin")
	}
}
