package domain

import "unique"

// InternedString wraps a unique.Handle[string].
// Task labels are interned because dependency lists repeat them and lookups compare handles.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// NewInternedStrings interns every element of s.
func NewInternedStrings(s []string) []InternedString {
	if len(s) == 0 {
		return nil
	}
	res := make([]InternedString, len(s))
	for i, v := range s {
		res[i] = NewInternedString(v)
	}
	return res
}

// Strings returns the plain string values of labels.
func Strings(labels []InternedString) []string {
	if len(labels) == 0 {
		return nil
	}
	res := make([]string, len(labels))
	for i, l := range labels {
		res[i] = l.String()
	}
	return res
}

// String returns the underlying string value.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the value was never set.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
