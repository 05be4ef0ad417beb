package facet

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const userSchema = `
name: user
modes:
  default: [id, name, email]
  public:
    - id
    - display_name: name
    - email: {mask: email}
    - fingerprint: {from: email, hash: sha256}
    - password: {redact: "***"}
    - version: {value: 2}
`

func TestNewKindFromYAML(t *testing.T) {
	kind, err := NewKindFromYAML([]byte(userSchema))
	if err != nil {
		t.Fatalf("NewKindFromYAML() error: %v", err)
	}
	if kind.Name() != "user" {
		t.Errorf("Name() = %q, want user", kind.Name())
	}
	if got := kind.Modes(); !reflect.DeepEqual(got, []string{"default", "public"}) {
		t.Errorf("Modes() = %v", got)
	}

	src := Map{"id": 1, "name": "John Doe", "email": "john@example.com", "password": "secret"}
	rec, err := kind.New(src).Mode("public").Project(context.Background())
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	fingerprint, _ := SHA256Hasher().Hash([]byte("john@example.com"))
	assertRecord(t, rec,
		[]string{"id", "display_name", "email", "fingerprint", "password", "version"},
		map[string]any{
			"id":           1,
			"display_name": "John Doe",
			"email":        "j***@example.com",
			"fingerprint":  fingerprint,
			"password":     "***",
			"version":      2,
		})
}

func TestParseModes(t *testing.T) {
	modes, err := ParseModes([]byte(`
modes:
  minimal: [id]
  detailed:
    - id
    - ssn: {encrypt: aes}
`))
	if err != nil {
		t.Fatalf("ParseModes() error: %v", err)
	}

	if len(modes[ModeMinimal]) != 1 || len(modes[ModeDetailed]) != 2 {
		t.Fatalf("ParseModes() = %v", modes)
	}
	ssn := modes[ModeDetailed][1]
	if ssn.transform != transformEncrypt || ssn.tag != "aes" || ssn.Attribute() != "ssn" {
		t.Errorf("ssn field = %+v", ssn)
	}
}

func TestParseModes_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"malformed", "modes: [", ""},
		{"no modes", "name: x", "no modes"},
		{"sequence entry", "modes:\n  default:\n    - [a, b]\n", "unsupported field entry"},
		{"two keys", "modes:\n  default:\n    - {a: b, c: d}\n", "exactly one key"},
		{"two transforms", "modes:\n  default:\n    - email: {mask: email, hash: sha256}\n", "more than one"},
		{"empty name", "modes:\n  default:\n    - \"\"\n", "empty field name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModes([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidSchema) {
				t.Fatalf("ParseModes() error = %v, want ErrInvalidSchema", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q should mention %q", err, tt.msg)
			}
		})
	}
}

func TestNewKindFromYAML_MissingName(t *testing.T) {
	_, err := NewKindFromYAML([]byte("modes:\n  default: [id]\n"))
	if !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("NewKindFromYAML() error = %v, want ErrInvalidSchema", err)
	}
}

func TestNewKindFromYAML_ValidatesCapabilities(t *testing.T) {
	kind, err := NewKindFromYAML([]byte("name: card\nmodes:\n  default:\n    - number: {mask: iban}\n"))
	if err != nil {
		t.Fatalf("NewKindFromYAML() error: %v", err)
	}
	if err := kind.Validate(); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("Validate() error = %v, want ErrInvalidTag", err)
	}
}
