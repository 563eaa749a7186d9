package utils

// NewNullString converts an optional request field to a string pointer, nil
// when empty, so blanks like a missing returner email store as NULL rather
// than empty strings.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
