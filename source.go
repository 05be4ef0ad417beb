package facet

import (
	"reflect"
)

// Source is the attribute store a Projector reads bare fields from.
//
// Types implementing Source are used directly; anything else is adapted by
// SourceOf, which reflects over structs and string-keyed maps.
type Source interface {
	// Attribute returns the value of the named attribute and whether it exists.
	Attribute(name string) (any, bool)
}

// Invoker lets a source or sequence expose operations to dynamic calls that
// are not mode configuration. Projector.Call and Collection.Call forward
// unmatched method names to an Invoker that supports them.
type Invoker interface {
	SupportsMethod(name string) bool
	Invoke(name string, args ...any) (any, error)
}

// Map is a Source backed by a plain map.
type Map map[string]any

// Attribute implements Source.
func (m Map) Attribute(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// SourceOf adapts data to a Source. It returns nil for nil data.
//
// Struct attributes are named by the facet tag, then the json tag name,
// then the Go field name. Pointers are dereferenced; a nil pointer yields nil.
func SourceOf(data any) Source {
	switch v := data.(type) {
	case nil:
		return nil
	case Source:
		return v
	case map[string]any:
		return Map(v)
	}

	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return &structSource{rv: rv, plan: planFor(rv.Type())}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return &mapSource{rv: rv}
		}
	}
	return emptySource{}
}

// structSource reads exported struct fields through a cached attribute plan.
type structSource struct {
	rv   reflect.Value
	plan *attributePlan
}

func (s *structSource) Attribute(name string) (any, bool) {
	idx, ok := s.plan.index[name]
	if !ok {
		return nil, false
	}
	fv, err := s.rv.FieldByIndexErr(idx)
	if err != nil {
		// nil embedded pointer on the path
		return nil, true
	}
	return fv.Interface(), true
}

// mapSource reads typed maps with string keys.
type mapSource struct {
	rv reflect.Value
}

func (s *mapSource) Attribute(name string) (any, bool) {
	v := s.rv.MapIndex(reflect.ValueOf(name).Convert(s.rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// emptySource has no attributes; scalars and other non-record data adapt to it.
type emptySource struct{}

func (emptySource) Attribute(string) (any, bool) { return nil, false }
