package facet

import "fmt"

// Modes maps a mode name to its ordered field descriptors.
type Modes map[string][]Field

// LazyFunc is a deferred computation invoked when its field is resolved.
type LazyFunc func() (any, error)

// transform is the value transformation applied to an attribute-backed field.
type transform int

const (
	transformNone transform = iota
	transformMask
	transformHash
	transformRedact
	transformEncrypt
)

func (t transform) String() string {
	switch t {
	case transformMask:
		return "mask"
	case transformHash:
		return "hash"
	case transformRedact:
		return "redact"
	case transformEncrypt:
		return "encrypt"
	default:
		return "none"
	}
}

// Field describes one output key and how its value is produced.
//
// Attribute fields look their value up on the source by name. Named fields
// carry a value producer: a literal, a func() any, a func() (any, error), a
// LazyFunc, a nested *Projector or a *Collection.
//
// Only *Projector, *Collection and []*Projector values are projected. Any
// other slice, such as a []Order attribute, is returned as is; wrap it in a
// collection of the element kind to project it with the parent's modes:
//
//	facet.Named("orders", orders.Collection(c.Orders))
type Field struct {
	key       string
	attr      string
	value     any
	transform transform
	tag       string
	err       error
}

// Attr returns a bare field whose value is the source attribute of the same name.
func Attr(name string) Field {
	f := Field{key: name, attr: name}
	if name == "" {
		f.err = fmt.Errorf("%w: empty attribute name", ErrInvalidField)
	}
	return f
}

// Named returns a field with an explicit output key and value producer.
// Use a Lazy field when the producer reads attributes of the projected
// source, since the fields function also runs without one.
func Named(key string, value any) Field {
	f := Field{key: key, value: value}
	if key == "" {
		f.err = fmt.Errorf("%w: empty key", ErrInvalidField)
	}
	return f
}

// Lazy returns a named field whose value is computed at resolution time.
func Lazy(key string, fn LazyFunc) Field {
	return Named(key, fn)
}

// Fields builds a descriptor list. Strings become bare attribute fields and
// Field values are kept as is.
//
//	facet.Fields("id", "name", facet.Lazy("label", label))
func Fields(items ...any) []Field {
	out := make([]Field, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, Attr(v))
		case Field:
			out = append(out, v)
		default:
			out = append(out, Field{
				key: fmt.Sprintf("#%d", i),
				err: fmt.Errorf("%w: unsupported descriptor %T at position %d", ErrInvalidField, item, i),
			})
		}
	}
	return out
}

// Masked returns a bare field whose value is masked with the given mask type.
func Masked(name string, mt MaskType) Field {
	f := Attr(name)
	f.transform = transformMask
	f.tag = string(mt)
	return f
}

// Hashed returns a bare field whose value is hashed with the given algorithm.
func Hashed(name string, algo HashAlgo) Field {
	f := Attr(name)
	f.transform = transformHash
	f.tag = string(algo)
	return f
}

// Redacted returns a bare field whose value is replaced by replacement.
func Redacted(name, replacement string) Field {
	f := Attr(name)
	f.transform = transformRedact
	f.tag = replacement
	return f
}

// Encrypted returns a bare field whose value is encrypted and base64 encoded.
func Encrypted(name string, algo EncryptAlgo) Field {
	f := Attr(name)
	f.transform = transformEncrypt
	f.tag = string(algo)
	return f
}

// As returns a copy of f that writes to key instead.
func (f Field) As(key string) Field {
	f.key = key
	if key == "" && f.err == nil {
		f.err = fmt.Errorf("%w: empty key", ErrInvalidField)
	}
	return f
}

// Key returns the output key.
func (f Field) Key() string {
	return f.key
}

// Attribute returns the source attribute name, or "" for named fields.
func (f Field) Attribute() string {
	return f.attr
}
