package facet

import (
	"strings"
	"unicode"
)

// MaskType names a value format with its own masking rule.
type MaskType string

const (
	MaskSSN   MaskType = "ssn"   // 123-45-6789 -> ***-**-6789
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskCard  MaskType = "card"  // 4111111111111111 -> ************1111
	MaskUUID  MaskType = "uuid"  // 550e8400-e29b-... -> 550e8400-****-****-****-************
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

// Masker hides part of a value while keeping it recognizable.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to Masker.
type MaskerFunc func(value string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string { return f(value) }

// SSNMasker keeps the last four digits of a social security number.
func SSNMasker() Masker {
	return MaskerFunc(func(value string) string {
		digits := digitsOf(value)
		if len(digits) < 4 {
			return stars(len(value))
		}
		return "***-**-" + digits[len(digits)-4:]
	})
}

// EmailMasker keeps the first character of the local part and the domain.
func EmailMasker() Masker {
	return MaskerFunc(func(value string) string {
		at := strings.LastIndex(value, "@")
		if at < 1 {
			return stars(len(value))
		}
		return value[:1] + "***" + value[at:]
	})
}

// PhoneMasker keeps the last four digits and the rough shape of the number.
func PhoneMasker() Masker {
	return MaskerFunc(func(value string) string {
		digits := digitsOf(value)
		if len(digits) < 4 {
			return stars(len(value))
		}
		last4 := digits[len(digits)-4:]
		switch {
		case strings.HasPrefix(value, "(") && len(digits) >= 10:
			return "(***) ***-" + last4
		case len(digits) >= 10:
			return "***-***-" + last4
		default:
			return "***-" + last4
		}
	})
}

// CardMasker keeps the last four digits of a card number. Spaced and dashed
// groupings are preserved as groups of four.
func CardMasker() Masker {
	return MaskerFunc(func(value string) string {
		digits := digitsOf(value)
		if len(digits) < 4 {
			return stars(len(value))
		}
		last4 := digits[len(digits)-4:]
		for _, sep := range []string{" ", "-"} {
			if strings.Contains(value, sep) {
				groups := make([]string, (len(digits)-4+3)/4)
				for i := range groups {
					groups[i] = "****"
				}
				return strings.Join(append(groups, last4), sep)
			}
		}
		return stars(len(digits)-4) + last4
	})
}

// UUIDMasker keeps the first segment of a UUID.
func UUIDMasker() Masker {
	return MaskerFunc(func(value string) string {
		parts := strings.Split(value, "-")
		if len(parts) != 5 {
			return stars(len(value))
		}
		return parts[0] + "-****-****-****-************"
	})
}

// NameMasker keeps the first letter of each word.
func NameMasker() Masker {
	return MaskerFunc(func(value string) string {
		words := strings.Fields(value)
		for i, w := range words {
			r := []rune(w)
			words[i] = string(r[0]) + stars(len(r)-1)
		}
		return strings.Join(words, " ")
	})
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stars(n int) string {
	return strings.Repeat("*", n)
}

func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskSSN:   SSNMasker(),
		MaskEmail: EmailMasker(),
		MaskPhone: PhoneMasker(),
		MaskCard:  CardMasker(),
		MaskUUID:  UUIDMasker(),
		MaskName:  NameMasker(),
	}
}
