package facet

import (
	"strings"
	"testing"
)

func TestSSNMasker(t *testing.T) {
	m := SSNMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"123-45-6789", "***-**-6789"},
		{"123456789", "***-**-6789"},
		{"123", "***"}, // Too short
	}

	for _, tt := range tests {
		if got := m.Mask(tt.input); got != tt.expected {
			t.Errorf("SSNMasker(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEmailMasker(t *testing.T) {
	m := EmailMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"alice@example.com", "a***@example.com"},
		{"a@b.com", "a***@b.com"},
		{"noatsign", "********"},
		{"@x.com", "******"},
	}

	for _, tt := range tests {
		if got := m.Mask(tt.input); got != tt.expected {
			t.Errorf("EmailMasker(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestPhoneMasker(t *testing.T) {
	m := PhoneMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"(555) 123-4567", "(***) ***-4567"},
		{"555-123-4567", "***-***-4567"},
		{"5551234567", "***-***-4567"},
		{"123-4567", "***-4567"},
		{"12", "**"},
	}

	for _, tt := range tests {
		if got := m.Mask(tt.input); got != tt.expected {
			t.Errorf("PhoneMasker(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCardMasker(t *testing.T) {
	m := CardMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"4111111111111111", "************1111"},
		{"4111 1111 1111 1111", "**** **** **** 1111"},
		{"4111-1111-1111-1111", "****-****-****-1111"},
		{"378282246310005", "***********0005"},
		{"12", "**"},
	}

	for _, tt := range tests {
		if got := m.Mask(tt.input); got != tt.expected {
			t.Errorf("CardMasker(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestUUIDMasker(t *testing.T) {
	m := UUIDMasker()

	if got := m.Mask("550e8400-e29b-41d4-a716-446655440000"); got != "550e8400-****-****-****-************" {
		t.Errorf("UUIDMasker() = %q", got)
	}
	if got := m.Mask("not-a-uuid"); got != strings.Repeat("*", 10) {
		t.Errorf("UUIDMasker(not-a-uuid) = %q", got)
	}
}

func TestNameMasker(t *testing.T) {
	m := NameMasker()

	tests := []struct {
		input    string
		expected string
	}{
		{"John Smith", "J*** S****"},
		{"José", "J***"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := m.Mask(tt.input); got != tt.expected {
			t.Errorf("NameMasker(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestMaskerFunc(t *testing.T) {
	m := MaskerFunc(strings.ToUpper)
	if got := m.Mask("abc"); got != "ABC" {
		t.Errorf("Mask() = %q, want ABC", got)
	}
}
