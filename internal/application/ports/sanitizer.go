package ports

import "user-registry-api/internal/domain/user"

// XSSSanitizer strips markup from free text.
type XSSSanitizer interface {
	Sanitize(s string) string
}

// Sanitizer normalizes raw create input. It never rejects and a nil input
// yields the zero value.
type Sanitizer interface {
	Sanitize(data *user.CreateData) user.CreateData
}
