package domain

import "unicode/utf8"

// InputClass restricts the characters accepted by a toolbar field.
type InputClass int

const (
	// Alphanumeric accepts ASCII letters and digits.
	Alphanumeric InputClass = iota
	// AlphanumericPlus also accepts separators, so several values can be inserted at once.
	AlphanumericPlus
)

func (c InputClass) String() string {
	if c == AlphanumericPlus {
		return "alphanumeric-plus"
	}
	return "alphanumeric"
}

// Allows reports whether a single character may be typed into a field of this class.
func (c InputClass) Allows(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case c == AlphanumericPlus:
		return r == ' ' || r == ',' || r == '-' || r == '.'
	}
	return false
}

// AllowsKey reports whether a keypress may reach the field. Named keys
// (Enter, Backspace, ...) are not filtered.
func (c InputClass) AllowsKey(key string) bool {
	if utf8.RuneCountInString(key) != 1 {
		return true
	}
	r, _ := utf8.DecodeRuneInString(key)
	return c.Allows(r)
}

// Valid reports whether every character of value is allowed.
func (c InputClass) Valid(value string) bool {
	for _, r := range value {
		if !c.Allows(r) {
			return false
		}
	}
	return true
}

// InputClassFor returns the input class of the field feeding the operation.
func InputClassFor(kind OpKind) InputClass {
	if kind == OpInsert {
		return AlphanumericPlus
	}
	return Alphanumeric
}
