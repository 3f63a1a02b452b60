// Package baseconv validates digit strings against a radix and re-renders
// them in another radix. It covers the four bases of the converter surface:
// binary, octal, decimal, and hexadecimal. A digit string validates with a
// sign only in decimal, but Convert accepts a leading '-' in any source
// radix — its own signed output must convert back — and a sign survives
// conversion into any target base. Hex output is uppercase and leading
// zeros are stripped, so converting a value to its own base canonicalizes
// it.
package baseconv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidDigits reports input that fails ValidateDigits for the
	// source radix.
	ErrInvalidDigits = errors.New("invalid digits for radix")

	// ErrUnsupportedRadix reports a radix outside {2, 8, 10, 16}.
	ErrUnsupportedRadix = errors.New("unsupported radix")

	// ErrRange reports a magnitude that does not fit the 64-bit converter.
	ErrRange = errors.New("value out of range")
)

// Radices supported by the converter.
const (
	Binary      = 2
	Octal       = 8
	Decimal     = 10
	Hexadecimal = 16
)

func supported(radix int) bool {
	switch radix {
	case Binary, Octal, Decimal, Hexadecimal:
		return true
	}
	return false
}

// ValidateDigits reports whether value is a well-formed digit string for the
// given radix. Internal spaces are ignored. Only radix 10 accepts a leading
// sign. An empty (or all-space) value is never valid.
func ValidateDigits(value string, radix int) bool {
	if !supported(radix) {
		return false
	}
	v := strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if radix == Decimal && (strings.HasPrefix(v, "-") || strings.HasPrefix(v, "+")) {
		v = v[1:]
	}
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if !digitOK(v[i], radix) {
			return false
		}
	}
	return true
}

func digitOK(b byte, radix int) bool {
	switch radix {
	case Binary:
		return b == '0' || b == '1'
	case Octal:
		return b >= '0' && b <= '7'
	case Decimal:
		return b >= '0' && b <= '9'
	case Hexadecimal:
		return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
	}
	return false
}

// Convert reinterprets value as an integer in fromRadix and renders it in
// toRadix. The output is canonical: no leading zeros, uppercase hex digits,
// and a leading '-' for negative values.
func Convert(value string, fromRadix, toRadix int) (string, error) {
	if !supported(fromRadix) {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedRadix, fromRadix)
	}
	if !supported(toRadix) {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedRadix, toRadix)
	}
	v := strings.ReplaceAll(strings.TrimSpace(value), " ", "")

	// A leading sign belongs to the value, not the digit string: peel it
	// off here so a converted negative round-trips through any radix, while
	// ValidateDigits itself stays decimal-only-signed.
	neg := false
	switch {
	case strings.HasPrefix(v, "-"):
		neg = true
		v = v[1:]
	case fromRadix == Decimal && strings.HasPrefix(v, "+"):
		v = v[1:]
	}
	if !ValidateDigits(v, fromRadix) {
		return "", fmt.Errorf("%w %d: %q", ErrInvalidDigits, fromRadix, value)
	}

	n, err := strconv.ParseInt(v, fromRadix, 64)
	if err != nil {
		// Digits already validated, so the only remaining failure is size.
		return "", fmt.Errorf("%w: %q in radix %d", ErrRange, value, fromRadix)
	}

	out := strconv.FormatInt(n, toRadix)
	if toRadix == Hexadecimal {
		out = strings.ToUpper(out)
	}
	if neg && n != 0 {
		out = "-" + out
	}
	return out, nil
}
