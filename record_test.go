package facet

import (
	"reflect"
	"testing"
)

func TestRecord_Order(t *testing.T) {
	r := NewRecord()
	r.Set("b", 1)
	r.Set("a", 2)
	r.Set("b", 3)

	if got := r.Keys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("Keys() = %v, want [b a]", got)
	}
	if v, ok := r.Get("b"); !ok || v != 3 {
		t.Errorf("Get(b) = %v, %v, want 3, true", v, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestRecord_Delete(t *testing.T) {
	r := NewRecord()
	r.Set("a", 1)
	r.Set("b", 2)
	r.Set("c", 3)

	r.Delete("b")
	r.Delete("missing")

	if got := r.Keys(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Keys() = %v, want [a c]", got)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRecord_Range(t *testing.T) {
	r := NewRecord()
	r.Set("a", 1)
	r.Set("b", 2)
	r.Set("c", 3)

	var seen []string
	r.Range(func(key string, _ any) bool {
		seen = append(seen, key)
		return key != "b"
	})
	if !reflect.DeepEqual(seen, []string{"a", "b"}) {
		t.Errorf("Range visited %v, want [a b]", seen)
	}
}

func TestRecord_Map(t *testing.T) {
	child := NewRecord()
	child.Set("id", 2)

	r := NewRecord()
	r.Set("id", 1)
	r.Set("owner", child)
	r.Set("items", []*Record{child, nil})

	want := map[string]any{
		"id":    1,
		"owner": map[string]any{"id": 2},
		"items": []any{map[string]any{"id": 2}, nil},
	}
	if got := r.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("Map() = %#v, want %#v", got, want)
	}
}

func TestRecord_Nil(t *testing.T) {
	var r *Record
	if r.Len() != 0 {
		t.Error("nil record should be empty")
	}
	if r.Map() != nil {
		t.Error("nil record Map() should be nil")
	}
}
