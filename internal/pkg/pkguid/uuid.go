package pkguid

import "github.com/google/uuid"

// StringID generates session and correlation ids.
type StringID interface {
	Generate() string
}

// UUID generates UUIDv7 strings for sessions and correlation ids.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUIDv7 string. It falls back to a random v4 id when
// the v7 clock sequence cannot be read.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsUUID reports whether s is a UUID in its canonical 36 character form, the
// only form Generate produces.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	return uuid.Validate(s) == nil
}
