// Package testing provides fixtures for facet tests.
package testing

import (
	"fmt"
	"testing"

	"github.com/zoobzio/facet"
)

// TestKey returns a valid 32-byte AES key for testing.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(tb testing.TB) facet.Encryptor {
	tb.Helper()
	enc, err := facet.AES(TestKey(tb))
	if err != nil {
		tb.Fatalf("AES() error: %v", err)
	}
	return enc
}

// User is the source type behind UserKind.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Details string `json:"details"`
}

// JohnDoe returns the first sample user.
func JohnDoe() User {
	return User{ID: 1, Name: "John Doe", Email: "john@example.com", Details: "Some details"}
}

// JaneDoe returns the second sample user.
func JaneDoe() User {
	return User{ID: 2, Name: "Jane Doe", Email: "jane@example.com", Details: "Other details"}
}

// UserKind returns a kind with default, minimal and detailed modes.
// The detailed mode adds a computed_field built from the name.
func UserKind() *facet.Kind {
	return facet.NewKind("user", func(p *facet.Projector) facet.Modes {
		return facet.Modes{
			facet.ModeDefault: facet.Fields("id", "name", "email"),
			facet.ModeMinimal: facet.Fields("id", "name"),
			facet.ModeDetailed: facet.Fields("id", "name", "email", "details",
				facet.Lazy("computed_field", func() (any, error) {
					name, err := p.Attribute("name")
					if err != nil {
						return nil, err
					}
					return fmt.Sprintf("Computed: %v", name), nil
				}),
			),
		}
	})
}
