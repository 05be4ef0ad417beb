package facet

import (
	"context"
	"fmt"
	"reflect"
	"testing"
)

// testUser is the source type used across projector tests.
type testUser struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Details string `json:"details"`
}

func john() testUser {
	return testUser{ID: 1, Name: "John Doe", Email: "john@example.com", Details: "Some details"}
}

func jane() testUser {
	return testUser{ID: 2, Name: "Jane Doe", Email: "jane@example.com", Details: "Details 2"}
}

// userKind declares default, minimal and detailed modes.
func userKind() *Kind {
	return NewKind("user", func(p *Projector) Modes {
		return Modes{
			ModeDefault: Fields("id", "name", "email"),
			ModeMinimal: Fields("id", "name"),
			ModeDetailed: Fields("id", "name", "email", "details",
				Lazy("computed_field", func() (any, error) {
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

// mustProject projects p and fails the test on error.
func mustProject(t *testing.T, p *Projector) *Record {
	t.Helper()
	rec, err := p.Project(context.Background())
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}
	return rec
}

// assertRecord checks keys in order and the plain values.
func assertRecord(t *testing.T, rec *Record, keys []string, values map[string]any) {
	t.Helper()
	if got := rec.Keys(); !reflect.DeepEqual(got, keys) {
		t.Errorf("Keys() = %v, want %v", got, keys)
	}
	if got := rec.Map(); !reflect.DeepEqual(got, values) {
		t.Errorf("Map() = %#v, want %#v", got, values)
	}
}
