// Package idgen produces the opaque identifiers assigned to new characters.
package idgen

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// Generator returns a fresh identifier on every call.
type Generator func() string

// Generate returns a 22 character, URL-safe slug backed by a random UUID.
func Generate() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
