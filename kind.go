package facet

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"sync"
)

// FieldsFunc returns the per-mode field specification for one projector.
//
// It is also called with a probe projector whose source is nil, to discover
// which modes a kind defines. Attribute values should therefore be read
// inside lazy fields rather than while building the Modes.
type FieldsFunc func(p *Projector) Modes

// Kind describes a projectable resource type: its name, the fields it
// exposes under each mode and the capabilities its transform fields use.
//
// Kinds are safe for concurrent use. Configuration methods (SetEncryptor,
// SetHasher, SetMasker) may be called at any time to update or rotate keys.
//
// Validation occurs automatically on first projection. Configure all required
// capabilities before the first call to Project.
type Kind struct {
	name   string
	fields FieldsFunc

	// Mutable configuration protected by mu
	mu         sync.RWMutex
	encryptors map[EncryptAlgo]Encryptor
	hashers    map[HashAlgo]Hasher
	maskers    map[MaskType]Masker

	// Validation state (runs once on first projection)
	validateOnce sync.Once
	validateErr  error
}

// NewKind creates a kind named name whose fields are produced by fields.
//
// The kind is created with builtin hashers and maskers. Encryptors must be
// configured via SetEncryptor before projecting Encrypted fields.
func NewKind(name string, fields FieldsFunc) *Kind {
	k := &Kind{
		name:       name,
		fields:     fields,
		encryptors: make(map[EncryptAlgo]Encryptor),
		hashers:    builtinHashers(),
		maskers:    builtinMaskers(),
	}
	emitKindCreated(context.Background(), name)
	return k
}

// Name returns the kind name.
func (k *Kind) Name() string {
	return k.name
}

// SetEncryptor registers an encryptor for the given algorithm.
// Returns the kind for chaining. Safe for concurrent use.
func (k *Kind) SetEncryptor(algo EncryptAlgo, enc Encryptor) *Kind {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.encryptors[algo] = enc
	return k
}

// SetHasher registers a hasher for the given algorithm.
// Returns the kind for chaining. Safe for concurrent use.
func (k *Kind) SetHasher(algo HashAlgo, h Hasher) *Kind {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.hashers[algo] = h
	return k
}

// SetMasker registers a masker for the given type.
// Returns the kind for chaining. Safe for concurrent use.
func (k *Kind) SetMasker(mt MaskType, m Masker) *Kind {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.maskers[mt] = m
	return k
}

// New wraps data in a Projector using the default mode.
func (k *Kind) New(data any) *Projector {
	return &Projector{
		kind:       k,
		data:       data,
		source:     SourceOf(data),
		modes:      modeSet{ModeDefault},
		additional: NewRecord(),
	}
}

// Collection wraps a sequence of items. Items may be raw data, *Projector
// values (used as is), nil, or Missing.
func (k *Kind) Collection(items any) *Collection {
	list, err := sequenceItems(items)
	return &Collection{
		kind:       k,
		raw:        items,
		items:      list,
		err:        err,
		modes:      modeSet{ModeDefault},
		additional: NewRecord(),
	}
}

// Project wraps data and projects it in the default mode.
func (k *Kind) Project(ctx context.Context, data any) (*Record, error) {
	return k.New(data).Project(ctx)
}

// Modes returns the sorted names of the modes the kind defines.
func (k *Kind) Modes() []string {
	spec := k.probe()
	names := make([]string, 0, len(spec))
	for name := range spec {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasMode reports whether the kind defines a field specification for mode.
func (k *Kind) HasMode(mode string) bool {
	_, ok := k.probe()[mode]
	return ok
}

// Validate checks every field the kind declares: descriptors must be well
// formed and transform fields must name a known, registered capability.
//
// Validation also runs automatically on first projection. Calling Validate
// explicitly allows catching configuration errors at startup.
func (k *Kind) Validate() error {
	return k.ensureValidated()
}

func (k *Kind) ensureValidated() error {
	k.validateOnce.Do(func() {
		k.mu.RLock()
		defer k.mu.RUnlock()
		k.validateErr = k.validateFields()
	})
	return k.validateErr
}

// probe returns the field specification as seen by a projector with no source.
func (k *Kind) probe() Modes {
	return k.fieldsFor(&Projector{kind: k, modes: modeSet{ModeDefault}, additional: NewRecord()})
}

func (k *Kind) fieldsFor(p *Projector) Modes {
	if k.fields == nil {
		return nil
	}
	return k.fields(p)
}

// validateFields requires k.mu to be held for reading.
func (k *Kind) validateFields() error {
	spec := k.probe()
	modes := make([]string, 0, len(spec))
	for m := range spec {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	for _, mode := range modes {
		for _, f := range spec[mode] {
			if f.err != nil {
				return fmt.Errorf("%s mode %s: %w", k.name, mode, f.err)
			}
			if err := k.checkCapability(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkCapability requires k.mu to be held for reading.
func (k *Kind) checkCapability(f Field) error {
	switch {
	case f.transform == transformNone, f.transform == transformRedact, k.registered(f):
		return nil
	case isBuiltin(f.transform, f.tag):
		return newConfigError(missingErr(f.transform), f.tag, f.key)
	default:
		return newConfigError(ErrInvalidTag, f.tag, f.key)
	}
}

// registered reports whether the kind holds a capability for f's tag.
// Requires k.mu to be held for reading.
func (k *Kind) registered(f Field) bool {
	var ok bool
	switch f.transform {
	case transformMask:
		_, ok = k.maskers[MaskType(f.tag)]
	case transformHash:
		_, ok = k.hashers[HashAlgo(f.tag)]
	case transformEncrypt:
		_, ok = k.encryptors[EncryptAlgo(f.tag)]
	}
	return ok
}

// transformValue applies a field's transform to an attribute value.
// Only string and []byte values can be transformed; nil passes through.
func (k *Kind) transformValue(f Field, v any) (any, error) {
	if f.transform == transformNone || v == nil {
		return v, nil
	}
	if f.transform == transformRedact {
		return f.tag, nil
	}

	var plaintext []byte
	switch t := v.(type) {
	case string:
		plaintext = []byte(t)
	case []byte:
		plaintext = t
	default:
		return nil, newTransformError(sentinelFor(f.transform), f.transform.String(), f.key,
			fmt.Errorf("unsupported value type %T", v))
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	if err := k.checkCapability(f); err != nil {
		return nil, err
	}

	switch f.transform {
	case transformMask:
		return k.maskers[MaskType(f.tag)].Mask(string(plaintext)), nil
	case transformHash:
		hashed, err := k.hashers[HashAlgo(f.tag)].Hash(plaintext)
		if err != nil {
			return nil, newTransformError(ErrHash, "hash", f.key, err)
		}
		return hashed, nil
	case transformEncrypt:
		ciphertext, err := k.encryptors[EncryptAlgo(f.tag)].Encrypt(plaintext)
		if err != nil {
			return nil, newTransformError(ErrEncrypt, "encrypt", f.key, err)
		}
		return base64.StdEncoding.EncodeToString(ciphertext), nil
	}
	return v, nil
}

func sentinelFor(t transform) error {
	switch t {
	case transformHash:
		return ErrHash
	case transformEncrypt:
		return ErrEncrypt
	default:
		return ErrMask
	}
}
