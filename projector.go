package facet

import (
	"context"
	"sort"
	"time"
)

// Projector turns one source object into a Record under a set of active
// modes, with only/except filtering and additional fields layered on top.
//
// Configuration methods return the projector for chaining. A Projector is not
// safe for concurrent use; build one per projection.
type Projector struct {
	kind       *Kind
	data       any
	source     Source
	modes      modeSet
	explicit   bool
	only       []string
	except     []string
	additional *Record
}

// Kind returns the kind the projector belongs to.
func (p *Projector) Kind() *Kind {
	return p.kind
}

// Data returns the wrapped source data.
func (p *Projector) Data() any {
	return p.data
}

// Attribute looks name up on the source. It fails with an
// *UndefinedFieldError when the source has no such attribute.
func (p *Projector) Attribute(name string) (any, error) {
	if p.source != nil {
		if v, ok := p.source.Attribute(name); ok {
			return v, nil
		}
	}
	return nil, &UndefinedFieldError{Kind: p.kind.name, Field: name}
}

// SetActiveModes replaces the active modes and marks them as explicitly set.
// Duplicates are dropped; an empty list selects the default mode.
func (p *Projector) SetActiveModes(modes ...string) *Projector {
	p.modes = newModeSet(modes)
	p.explicit = true
	return p
}

// ActiveModes returns the active modes in order.
func (p *Projector) ActiveModes() []string {
	return p.modes.clone()
}

// AddMode activates mode in addition to the current ones.
func (p *Projector) AddMode(mode string) *Projector {
	p.modes = p.modes.add(mode)
	p.explicit = true
	return p
}

// RemoveMode deactivates mode. Removing the last mode falls back to the
// default mode. Like AddMode it counts as an explicit setting.
func (p *Projector) RemoveMode(mode string) *Projector {
	p.modes = p.modes.remove(mode)
	p.explicit = true
	return p
}

// Mode activates the single mode named by name after normalization.
func (p *Projector) Mode(name string) *Projector {
	return p.SetActiveModes(NormalizeMode(name))
}

// With adds the mode named by name after normalization.
func (p *Projector) With(name string) *Projector {
	return p.AddMode(NormalizeMode(name))
}

// Without removes the mode named by name after normalization.
func (p *Projector) Without(name string) *Projector {
	return p.RemoveMode(NormalizeMode(name))
}

// Minimal activates only the minimal mode.
func (p *Projector) Minimal() *Projector { return p.SetActiveModes(ModeMinimal) }

// Detailed activates only the detailed mode.
func (p *Projector) Detailed() *Projector { return p.SetActiveModes(ModeDetailed) }

// Default activates only the default mode.
func (p *Projector) Default() *Projector { return p.SetActiveModes(ModeDefault) }

// Basic is an alias for Default.
func (p *Projector) Basic() *Projector { return p.Default() }

// IsModeExplicitlySet reports whether the modes were set on this projector
// directly. Explicit modes are never replaced by a parent's propagation.
func (p *Projector) IsModeExplicitlySet() bool {
	return p.explicit
}

// Only keeps just the given output keys. It replaces any earlier Only and
// takes precedence over Except.
func (p *Projector) Only(keys ...string) *Projector {
	p.only = append([]string(nil), keys...)
	return p
}

// Except drops the given output keys. It replaces any earlier Except and is
// ignored while Only is set.
func (p *Projector) Except(keys ...string) *Projector {
	p.except = append([]string(nil), keys...)
	return p
}

// Additional merges data into the additional fields, appended after the
// projected fields and never filtered. Keys of one call are added in sorted
// order; later values win.
func (p *Projector) Additional(data map[string]any) *Projector {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.additional.Set(k, data[k])
	}
	return p
}

// AdditionalField adds a single additional field.
func (p *Projector) AdditionalField(key string, value any) *Projector {
	p.additional.Set(key, value)
	return p
}

// Call dispatches a method by name. with<Mode> and without<Mode> add and
// remove modes, a name matching a mode the kind defines activates that mode
// alone, and anything else is forwarded to the source when it implements
// Invoker. Mode calls return the projector itself.
func (p *Projector) Call(method string, args ...any) (any, error) {
	switch action, mode := parseModeMethod(method); action {
	case actionAdd:
		return p.AddMode(mode), nil
	case actionRemove:
		return p.RemoveMode(mode), nil
	}

	mode := NormalizeMode(method)
	if p.kind.HasMode(mode) {
		return p.SetActiveModes(mode), nil
	}

	for _, candidate := range []any{p.data, p.source} {
		if inv, ok := candidate.(Invoker); ok && inv.SupportsMethod(method) {
			return inv.Invoke(method, args...)
		}
	}

	return nil, &UnknownModeError{Kind: p.kind.name, Method: method, Mode: mode}
}

// Project resolves the active fields of the source into a Record.
//
// Fields of all active modes are merged in mode order; when two modes share
// an output key the later mode's descriptor wins while the key keeps its first
// position. Filters apply to the merged keys, then additional fields are
// appended. Nested projectors and collections are projected recursively.
// Project does not modify the projector, so repeated calls return equal
// records.
func (p *Projector) Project(ctx context.Context) (*Record, error) {
	modes := p.modes.clone()
	start := time.Now()
	emitProjectStart(ctx, p.kind.name, modes)

	var rec *Record
	var retErr error
	defer func() {
		emitProjectComplete(ctx, p.kind.name, modes, time.Since(start), rec.Len(), retErr)
	}()

	if err := p.kind.ensureValidated(); err != nil {
		retErr = err
		return nil, err
	}

	rec, retErr = p.project(ctx)
	return rec, retErr
}

func (p *Projector) project(ctx context.Context) (*Record, error) {
	spec := p.kind.fieldsFor(p)

	var keys []string
	byKey := make(map[string]Field)
	for _, mode := range p.modes {
		fields, ok := spec[mode]
		if !ok {
			continue
		}
		for _, f := range fields {
			if f.err != nil {
				return nil, f.err
			}
			if _, seen := byKey[f.key]; !seen {
				keys = append(keys, f.key)
			}
			byKey[f.key] = f
		}
	}

	out := NewRecord()
	for _, key := range p.filter(keys) {
		v, err := p.resolveField(ctx, byKey[key])
		if err != nil {
			return nil, err
		}
		out.Set(key, v)
	}

	var err error
	p.additional.Range(func(key string, value any) bool {
		var v any
		v, err = p.resolveValue(ctx, value)
		if err != nil {
			return false
		}
		out.Set(key, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// filter applies Only, or Except when Only is empty, keeping key order.
func (p *Projector) filter(keys []string) []string {
	switch {
	case len(p.only) > 0:
		return keep(keys, p.only, true)
	case len(p.except) > 0:
		return keep(keys, p.except, false)
	default:
		return keys
	}
}

func keep(keys, set []string, member bool) []string {
	in := make(map[string]bool, len(set))
	for _, k := range set {
		in[k] = true
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if in[k] == member {
			out = append(out, k)
		}
	}
	return out
}

func (p *Projector) resolveField(ctx context.Context, f Field) (any, error) {
	if f.attr == "" {
		return p.resolveValue(ctx, f.value)
	}

	v, err := p.Attribute(f.attr)
	if err != nil {
		return nil, err
	}
	v, err = p.kind.transformValue(f, v)
	if err != nil {
		return nil, err
	}
	return p.resolveValue(ctx, v)
}

// resolveValue invokes lazy values and projects nested projectors and
// collections. Nested values are cloned before propagation so the caller's
// instances are left untouched.
func (p *Projector) resolveValue(ctx context.Context, v any) (any, error) {
	switch t := v.(type) {
	case LazyFunc:
		r, err := t()
		if err != nil {
			return nil, err
		}
		return p.resolveValue(ctx, r)
	case func() (any, error):
		return p.resolveValue(ctx, LazyFunc(t))
	case func() any:
		return p.resolveValue(ctx, t())
	case *Projector:
		if t == nil {
			return nil, nil
		}
		nested := t.Clone()
		if !nested.explicit {
			nested.propagateModes(p.modes)
		}
		rec, err := nested.Project(ctx)
		if err != nil {
			return nil, err
		}
		return rec, nil
	case *Collection:
		if t == nil {
			return nil, nil
		}
		return p.projectCollection(ctx, t.Clone())
	case []*Projector:
		return p.projectCollection(ctx, p.kind.Collection(t))
	default:
		return v, nil
	}
}

// projectCollection hands this projector's state down to a nested
// collection. Modes are propagated unless the collection set its own; filters
// and additional fields only when non-empty.
func (p *Projector) projectCollection(ctx context.Context, c *Collection) (any, error) {
	if !c.explicit {
		c.inheritModes(p.modes)
	}
	if len(p.except) > 0 {
		c.Except(p.except...)
	}
	if len(p.only) > 0 {
		c.Only(p.only...)
	}
	if p.additional.Len() > 0 {
		c.mergeAdditional(p.additional)
	}
	recs, err := c.Project(ctx)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// propagateModes applies a parent's modes without marking them explicit.
func (p *Projector) propagateModes(modes modeSet) {
	p.modes = modes.clone()
}

func (p *Projector) mergeAdditional(r *Record) {
	r.Range(func(key string, value any) bool {
		p.additional.Set(key, value)
		return true
	})
}
