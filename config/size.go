package config

import (
	"fmt"
	"strings"
)

// KeyboardSize selects which optional key groups a layout contains.
type KeyboardSize int

const (
	// S100 has a function row, number row, arrow and navigation groups and a numpad.
	S100 KeyboardSize = 100
	// S80 drops the numpad.
	S80 KeyboardSize = 80
	// S75 compresses the navigation group into one column.
	S75 KeyboardSize = 75
	// S65 drops the function row.
	S65 KeyboardSize = 65
	// S60 keeps only the main block with the number row.
	S60 KeyboardSize = 60
	// S40 keeps mainly characters.
	S40 KeyboardSize = 40
)

// Sizes lists every supported size from largest to smallest.
var Sizes = []KeyboardSize{S100, S80, S75, S65, S60, S40}

func (s KeyboardSize) String() string {
	return fmt.Sprintf("S%d", int(s))
}

// Valid reports whether s is one of Sizes.
func (s KeyboardSize) Valid() bool {
	for _, v := range Sizes {
		if s == v {
			return true
		}
	}
	return false
}

// AtLeast reports whether s includes every group of min.
func (s KeyboardSize) AtLeast(min KeyboardSize) bool { return s >= min }

// UnmarshalText accepts "S100", "100" and "100%" forms.
func (s *KeyboardSize) UnmarshalText(b []byte) error {
	txt := strings.TrimSuffix(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(string(b))), "S"), "%")
	for _, v := range Sizes {
		if txt == fmt.Sprint(int(v)) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("%w: unknown keyboard size %q", ErrInvalid, b)
}

// MarshalText implements encoding.TextMarshaler.
func (s KeyboardSize) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
