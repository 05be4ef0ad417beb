package facet

// Clone returns a copy of the projector's configuration wrapping the same
// source data. The source itself is shared, never copied.
func (p *Projector) Clone() *Projector {
	clone := *p
	clone.modes = p.modes.clone()
	clone.only = append([]string(nil), p.only...)
	clone.except = append([]string(nil), p.except...)
	clone.additional = p.additional.clone()
	return &clone
}

// Clone returns a copy of the collection's configuration over the same items.
func (c *Collection) Clone() *Collection {
	clone := *c
	clone.items = append([]any(nil), c.items...)
	clone.modes = c.modes.clone()
	clone.only = append([]string(nil), c.only...)
	clone.except = append([]string(nil), c.except...)
	clone.additional = c.additional.clone()
	return &clone
}

// clone copies the record's entries; values are shared.
func (r *Record) clone() *Record {
	out := NewRecord()
	if r == nil {
		return out
	}
	out.keys = append(out.keys, r.keys...)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}
