package facet

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"time"
)

// Sequence is implemented by collection types that hand out their items.
type Sequence interface {
	Items() []any
}

type missing struct{}

// Missing marks an absent collection element. It projects to a nil entry.
var Missing any = missing{}

// Collection projects an ordered sequence of items with one shared
// configuration. Each item is wrapped in a Projector of the collection's kind
// at projection time unless it already is one.
//
// Modes reach an item only when the collection's modes were set, explicitly
// or by a parent, and the item has not set its own. Filters and additional
// fields reach every item.
type Collection struct {
	kind       *Kind
	raw        any
	items      []any
	err        error
	modes      modeSet
	explicit   bool
	inherited  bool
	only       []string
	except     []string
	additional *Record
}

// Kind returns the kind used to wrap raw items.
func (c *Collection) Kind() *Kind {
	return c.kind
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// SetActiveModes replaces the active modes and marks them as explicitly set.
func (c *Collection) SetActiveModes(modes ...string) *Collection {
	c.modes = newModeSet(modes)
	c.explicit = true
	return c
}

// ActiveModes returns the active modes in order.
func (c *Collection) ActiveModes() []string {
	return c.modes.clone()
}

// AddMode activates mode in addition to the current ones.
func (c *Collection) AddMode(mode string) *Collection {
	c.modes = c.modes.add(mode)
	c.explicit = true
	return c
}

// RemoveMode deactivates mode, falling back to the default mode when none remain.
func (c *Collection) RemoveMode(mode string) *Collection {
	c.modes = c.modes.remove(mode)
	c.explicit = true
	return c
}

// Mode activates the single mode named by name after normalization.
func (c *Collection) Mode(name string) *Collection {
	return c.SetActiveModes(NormalizeMode(name))
}

// With adds the mode named by name after normalization.
func (c *Collection) With(name string) *Collection {
	return c.AddMode(NormalizeMode(name))
}

// Without removes the mode named by name after normalization.
func (c *Collection) Without(name string) *Collection {
	return c.RemoveMode(NormalizeMode(name))
}

// Minimal activates only the minimal mode.
func (c *Collection) Minimal() *Collection { return c.SetActiveModes(ModeMinimal) }

// Detailed activates only the detailed mode.
func (c *Collection) Detailed() *Collection { return c.SetActiveModes(ModeDetailed) }

// Default activates only the default mode.
func (c *Collection) Default() *Collection { return c.SetActiveModes(ModeDefault) }

// Basic is an alias for Default.
func (c *Collection) Basic() *Collection { return c.Default() }

// IsModeExplicitlySet reports whether the modes were set on this collection directly.
func (c *Collection) IsModeExplicitlySet() bool {
	return c.explicit
}

// Only keeps just the given output keys on every item.
func (c *Collection) Only(keys ...string) *Collection {
	c.only = append([]string(nil), keys...)
	return c
}

// Except drops the given output keys on every item.
func (c *Collection) Except(keys ...string) *Collection {
	c.except = append([]string(nil), keys...)
	return c
}

// Additional merges data into the additional fields of every item.
// Keys of one call are added in sorted order; later values win.
func (c *Collection) Additional(data map[string]any) *Collection {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.additional.Set(k, data[k])
	}
	return c
}

// AdditionalField adds a single additional field to every item.
func (c *Collection) AdditionalField(key string, value any) *Collection {
	c.additional.Set(key, value)
	return c
}

// Call dispatches a method by name: with<Mode> and without<Mode> first, then
// the operations of the underlying sequence, then a mode the kind defines.
// Anything else fails with an *UnknownMethodError.
//
// Sequences that implement Invoker receive the call directly. Every sequence
// supports count, isEmpty, isNotEmpty, first, last and all.
func (c *Collection) Call(method string, args ...any) (any, error) {
	switch action, mode := parseModeMethod(method); action {
	case actionAdd:
		return c.AddMode(mode), nil
	case actionRemove:
		return c.RemoveMode(mode), nil
	}

	if inv, ok := c.raw.(Invoker); ok && inv.SupportsMethod(method) {
		return inv.Invoke(method, args...)
	}
	if v, ok := c.sequenceOp(method); ok {
		return v, nil
	}

	if mode := NormalizeMode(method); c.kind.HasMode(mode) {
		return c.SetActiveModes(mode), nil
	}

	return nil, &UnknownMethodError{Type: c.kind.name + " collection", Method: method}
}

func (c *Collection) sequenceOp(method string) (any, bool) {
	switch method {
	case "count":
		return len(c.items), true
	case "isEmpty":
		return len(c.items) == 0, true
	case "isNotEmpty":
		return len(c.items) > 0, true
	case "first":
		if len(c.items) == 0 {
			return nil, true
		}
		return c.items[0], true
	case "last":
		if len(c.items) == 0 {
			return nil, true
		}
		return c.items[len(c.items)-1], true
	case "all":
		return append([]any(nil), c.items...), true
	}
	return nil, false
}

// Project projects every item in order. Nil and Missing items produce nil
// entries. An empty collection yields an empty, non-nil slice.
func (c *Collection) Project(ctx context.Context) ([]*Record, error) {
	start := time.Now()
	emitCollectionStart(ctx, c.kind.name, len(c.items))

	var retErr error
	defer func() {
		emitCollectionComplete(ctx, c.kind.name, time.Since(start), len(c.items), retErr)
	}()

	if c.err != nil {
		retErr = c.err
		return nil, c.err
	}
	if err := c.kind.ensureValidated(); err != nil {
		retErr = err
		return nil, err
	}

	out := make([]*Record, 0, len(c.items))
	for _, item := range c.items {
		el := c.element(item)
		if el == nil {
			out = append(out, nil)
			continue
		}

		if (c.explicit || c.inherited) && !el.explicit {
			el.propagateModes(c.modes)
		}
		if len(c.except) > 0 {
			el.Except(c.except...)
		}
		if len(c.only) > 0 {
			el.Only(c.only...)
		}
		if c.additional.Len() > 0 {
			el.mergeAdditional(c.additional)
		}

		rec, err := el.Project(ctx)
		if err != nil {
			retErr = err
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// element wraps item in a projector, or returns nil for absent items. Typed
// nils such as a nil *T inside a []*T count as absent.
func (c *Collection) element(item any) *Projector {
	switch v := item.(type) {
	case nil, missing:
		return nil
	case *Projector:
		if v == nil {
			return nil
		}
		return v.Clone()
	}

	switch rv := reflect.ValueOf(item); rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil
		}
	}
	return c.kind.New(item)
}

// inheritModes applies a parent's modes so they reach the items, without
// marking them explicit.
func (c *Collection) inheritModes(modes modeSet) {
	c.modes = modes.clone()
	c.inherited = true
}

func (c *Collection) mergeAdditional(r *Record) {
	r.Range(func(key string, value any) bool {
		c.additional.Set(key, value)
		return true
	})
}

// sequenceItems flattens the supported sequence shapes into a slice.
func sequenceItems(items any) ([]any, error) {
	switch v := items.(type) {
	case nil:
		return nil, nil
	case []any:
		return append([]any(nil), v...), nil
	case []*Projector:
		out := make([]any, len(v))
		for i, p := range v {
			out[i] = p
		}
		return out, nil
	case Sequence:
		return v.Items(), nil
	}

	rv := reflect.ValueOf(items)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotSequence, items)
}
