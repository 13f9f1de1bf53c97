package market

import "strings"

// Code identifies a tradable instrument. It is a normalized value type
// with well-defined equality so it can be used directly as a map key.
type Code string

// NewCode normalizes a raw identifier (trims whitespace, upper-cases).
func NewCode(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

func (c Code) String() string { return string(c) }
