// Package facet projects domain objects into output records under named modes.
//
// A Kind declares, per mode, the ordered fields a resource exposes. A
// Projector wraps one source object, selects the active modes, filters the
// result with Only or Except and layers additional fields on top. Nested
// projectors and collections inside field values are projected recursively
// with the parent's modes, unless they set their own.
//
// # Modes
//
// Every projector starts in the "default" mode. Several modes may be active
// at once; their fields are merged in mode order and a later mode's field
// replaces an earlier one with the same output key:
//
//	user := facet.NewKind("user", func(p *facet.Projector) facet.Modes {
//	    return facet.Modes{
//	        facet.ModeDefault: facet.Fields("id", "name", "email"),
//	        facet.ModeMinimal: facet.Fields("id", "name"),
//	        "audit-trail":     facet.Fields("created_by", "updated_by"),
//	    }
//	})
//
//	rec, err := user.New(u).Minimal().With("AuditTrail").Project(ctx)
//
// Setting modes on a projector marks them explicit. A parent propagates its
// modes only into nested projectors whose modes were not set explicitly.
//
// # Fields
//
//   - Attr("id"): the source attribute of the same name
//   - Named("kind", "user"): a literal value
//   - Lazy("label", fn): computed when the field is resolved
//   - Named("owner", owner.New(o)): a nested projector
//   - Named("orders", order.Collection(os)): a nested collection
//
// Transform fields expose sensitive attributes in a safe shape:
//
//   - Masked("email", MaskEmail): a***@example.com
//   - Hashed("email", HashSHA256): hex digest
//   - Redacted("password", "***"): constant replacement
//   - Encrypted("id", EncryptAES): base64 AES-GCM ciphertext
//
// # Sources
//
// Bare fields are looked up on a Source. Structs, struct pointers and string
// keyed maps are adapted automatically; struct attributes are named by their
// facet tag, then json tag, then Go field name. Types may implement Source
// themselves to bypass reflection.
//
// # Dynamic calls
//
// Projector.Call and Collection.Call accept method names such as
// "withAuditTrail", "withoutAuditTrail" or "minimal", converting PascalCase to
// kebab-case mode names. Unmatched names are forwarded to sources and
// sequences implementing Invoker.
//
// # Events
//
// Projections emit capitan signals (SignalProjectStart, SignalProjectComplete,
// SignalCollectionStart, SignalCollectionComplete) carrying the kind, modes,
// counts, duration and any error.
package facet
