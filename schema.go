package facet

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// schemaDocument is the YAML form of a kind:
//
//	name: user
//	modes:
//	  default: [id, name, email]
//	  public:
//	    - id
//	    - display_name: name
//	    - email: {mask: email}
//	    - fingerprint: {from: email, hash: sha256}
//	    - password: {redact: "***"}
//	    - version: {value: 2}
type schemaDocument struct {
	Name  string                 `yaml:"name"`
	Modes map[string][]yaml.Node `yaml:"modes"`
}

type fieldOptions struct {
	From    string    `yaml:"from"`
	Mask    string    `yaml:"mask"`
	Hash    string    `yaml:"hash"`
	Redact  *string   `yaml:"redact"`
	Encrypt string    `yaml:"encrypt"`
	Value   yaml.Node `yaml:"value"`
}

// ParseModes reads a YAML field specification. Only the modes section is
// used; the document name is ignored.
func ParseModes(data []byte) (Modes, error) {
	_, modes, err := parseSchema(data)
	return modes, err
}

// NewKindFromYAML builds a kind from a YAML document with a name and modes.
// The fields are static: every projector of the kind sees the same Modes.
func NewKindFromYAML(data []byte) (*Kind, error) {
	name, modes, err := parseSchema(data)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidSchema)
	}
	return NewKind(name, func(*Projector) Modes { return modes }), nil
}

func parseSchema(data []byte) (string, Modes, error) {
	var doc schemaDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if len(doc.Modes) == 0 {
		return "", nil, fmt.Errorf("%w: no modes", ErrInvalidSchema)
	}

	modes := make(Modes, len(doc.Modes))
	for mode, nodes := range doc.Modes {
		fields := make([]Field, 0, len(nodes))
		for i := range nodes {
			f, err := parseField(&nodes[i])
			if err != nil {
				return "", nil, fmt.Errorf("mode %s: %w", mode, err)
			}
			fields = append(fields, f)
		}
		modes[mode] = fields
	}
	return doc.Name, modes, nil
}

func parseField(node *yaml.Node) (Field, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return Field{}, fmt.Errorf("%w: line %d: empty field name", ErrInvalidSchema, node.Line)
		}
		return Attr(node.Value), nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return Field{}, fmt.Errorf("%w: line %d: a named field must have exactly one key", ErrInvalidSchema, node.Line)
		}
	default:
		return Field{}, fmt.Errorf("%w: line %d: unsupported field entry", ErrInvalidSchema, node.Line)
	}

	key, body := node.Content[0].Value, node.Content[1]
	if key == "" {
		return Field{}, fmt.Errorf("%w: line %d: empty field key", ErrInvalidSchema, node.Line)
	}

	// display_name: name
	if body.Kind == yaml.ScalarNode {
		return Attr(body.Value).As(key), nil
	}

	var opts fieldOptions
	if err := body.Decode(&opts); err != nil {
		return Field{}, fmt.Errorf("%w: line %d: %v", ErrInvalidSchema, body.Line, err)
	}

	set := 0
	for _, on := range []bool{opts.Mask != "", opts.Hash != "", opts.Redact != nil, opts.Encrypt != "", opts.Value.Kind != 0} {
		if on {
			set++
		}
	}
	if set > 1 {
		return Field{}, fmt.Errorf("%w: line %d: field %s sets more than one of mask, hash, redact, encrypt, value",
			ErrInvalidSchema, body.Line, key)
	}

	if opts.Value.Kind != 0 {
		var v any
		if err := opts.Value.Decode(&v); err != nil {
			return Field{}, fmt.Errorf("%w: line %d: %v", ErrInvalidSchema, opts.Value.Line, err)
		}
		return Named(key, v), nil
	}

	from := opts.From
	if from == "" {
		from = key
	}

	var f Field
	switch {
	case opts.Mask != "":
		f = Masked(from, MaskType(opts.Mask))
	case opts.Hash != "":
		f = Hashed(from, HashAlgo(opts.Hash))
	case opts.Redact != nil:
		f = Redacted(from, *opts.Redact)
	case opts.Encrypt != "":
		f = Encrypted(from, EncryptAlgo(opts.Encrypt))
	default:
		f = Attr(from)
	}
	return f.As(key), nil
}
