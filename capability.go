package facet

import "slices"

// EncryptAlgo names an encryption algorithm for Encrypted fields.
type EncryptAlgo string

// EncryptAES uses AES-GCM. It has no default registration; see Kind.SetEncryptor.
const EncryptAES EncryptAlgo = "aes"

// HashAlgo names a hashing algorithm for Hashed fields.
type HashAlgo string

const (
	HashArgon2 HashAlgo = "argon2" // salted, PHC encoded
	HashBcrypt HashAlgo = "bcrypt" // salted
	HashSHA256 HashAlgo = "sha256" // deterministic hex, for fingerprints
	HashSHA512 HashAlgo = "sha512" // deterministic hex
)

// builtinNames lists the capability names each transform knows without any
// registration. A field naming one of them on a kind that lacks it is a
// missing capability; any other unregistered name is an invalid tag.
var builtinNames = map[transform][]string{
	transformMask: {
		string(MaskSSN), string(MaskEmail), string(MaskPhone),
		string(MaskCard), string(MaskUUID), string(MaskName),
	},
	transformHash: {
		string(HashArgon2), string(HashBcrypt), string(HashSHA256), string(HashSHA512),
	},
	transformEncrypt: {string(EncryptAES)},
}

func isBuiltin(t transform, name string) bool {
	return slices.Contains(builtinNames[t], name)
}

// missingErr is the sentinel reported for an unregistered builtin name.
func missingErr(t transform) error {
	switch t {
	case transformHash:
		return ErrMissingHasher
	case transformEncrypt:
		return ErrMissingEncryptor
	default:
		return ErrMissingMasker
	}
}

// IsValidEncryptAlgo reports whether algo is a builtin encryption algorithm.
func IsValidEncryptAlgo(algo EncryptAlgo) bool {
	return isBuiltin(transformEncrypt, string(algo))
}

// IsValidHashAlgo reports whether algo is a builtin hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return isBuiltin(transformHash, string(algo))
}

// IsValidMaskType reports whether mt is a builtin mask type.
func IsValidMaskType(mt MaskType) bool {
	return isBuiltin(transformMask, string(mt))
}
