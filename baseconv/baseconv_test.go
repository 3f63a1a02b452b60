package baseconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ValidateDigits(t *testing.T) {
	valid := []struct {
		value string
		radix int
	}{
		{"1011", Binary},
		{"0", Binary},
		{"777", Octal},
		{"123", Decimal},
		{"-45", Decimal},
		{"+45", Decimal},
		{"1A2b", Hexadecimal},
		{"DEAD BEEF", Hexadecimal}, // internal spaces ignored
	}
	for _, c := range valid {
		assert.True(t, ValidateDigits(c.value, c.radix), "%q base %d", c.value, c.radix)
	}

	invalid := []struct {
		value string
		radix int
	}{
		{"", Binary},
		{"   ", Decimal},
		{"102", Binary},
		{"78", Octal},
		{"12.5", Decimal},
		{"-FF", Hexadecimal}, // only decimal input may be signed
		{"G1", Hexadecimal},
		{"-", Decimal},
		{"101", 3}, // unsupported radix
	}
	for _, c := range invalid {
		assert.False(t, ValidateDigits(c.value, c.radix), "%q base %d", c.value, c.radix)
	}
}

func Test_Convert(t *testing.T) {
	cases := []struct {
		value    string
		from, to int
		want     string
	}{
		{"255", Decimal, Hexadecimal, "FF"},
		{"255", Decimal, Binary, "11111111"},
		{"255", Decimal, Octal, "377"},
		{"ff", Hexadecimal, Decimal, "255"},
		{"FF", Hexadecimal, Binary, "11111111"},
		{"1011", Binary, Decimal, "11"},
		{"777", Octal, Decimal, "511"},
		{"-42", Decimal, Hexadecimal, "-2A"},
		{"-42", Decimal, Binary, "-101010"},
		{"0", Decimal, Binary, "0"},
		{"007", Octal, Octal, "7"}, // canonical form strips zeros
		{"00ff", Hexadecimal, Hexadecimal, "FF"},
		{"1 0 1", Binary, Decimal, "5"}, // spaces stripped
		{"+9", Decimal, Decimal, "9"},   // '+' not re-rendered
	}
	for _, c := range cases {
		got, err := Convert(c.value, c.from, c.to)
		require.NoError(t, err, "Convert(%q, %d, %d)", c.value, c.from, c.to)
		assert.Equal(t, c.want, got, "Convert(%q, %d, %d)", c.value, c.from, c.to)
	}
}

func Test_Convert_InvalidDigits(t *testing.T) {
	_, err := Convert("102", Binary, Decimal)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDigits)

	_, err = Convert("", Decimal, Binary)
	assert.ErrorIs(t, err, ErrInvalidDigits)
}

func Test_Convert_UnsupportedRadix(t *testing.T) {
	_, err := Convert("10", 3, Decimal)
	assert.ErrorIs(t, err, ErrUnsupportedRadix)

	_, err = Convert("10", Decimal, 7)
	assert.ErrorIs(t, err, ErrUnsupportedRadix)
}

func Test_Convert_Range(t *testing.T) {
	// One past MaxInt64.
	_, err := Convert("9223372036854775808", Decimal, Hexadecimal)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRange)
}

func Test_Convert_SignedInput(t *testing.T) {
	got, err := Convert("-42", Decimal, Binary)
	require.NoError(t, err)
	assert.Equal(t, "-101010", got)

	// Convert's own signed output converts back.
	back, err := Convert("-101010", Binary, Decimal)
	require.NoError(t, err)
	assert.Equal(t, "-42", back)

	got, err = Convert("-FF", Hexadecimal, Decimal)
	require.NoError(t, err)
	assert.Equal(t, "-255", got)

	// ValidateDigits stays strict: a sign only validates as decimal input.
	assert.False(t, ValidateDigits("-101010", Binary))
	assert.False(t, ValidateDigits("-FF", Hexadecimal))

	// Negative zero canonicalizes without a sign.
	z, err := Convert("-0", Decimal, Hexadecimal)
	require.NoError(t, err)
	assert.Equal(t, "0", z)
}

func Test_Convert_RoundTrip(t *testing.T) {
	radices := []int{Binary, Octal, Decimal, Hexadecimal}
	values := map[int][]string{
		Binary:      {"0", "1", "101101", "0011"},
		Octal:       {"7", "644", "0017"},
		Decimal:     {"0", "42", "-42", "9001"},
		Hexadecimal: {"FF", "dead", "0A"},
	}
	for _, from := range radices {
		for _, to := range radices {
			for _, v := range values[from] {
				mid, err := Convert(v, from, to)
				require.NoError(t, err, "Convert(%q, %d, %d)", v, from, to)
				back, err := Convert(mid, to, from)
				require.NoError(t, err, "Convert(%q, %d, %d)", mid, to, from)

				canonical, err := Convert(v, from, from)
				require.NoError(t, err)
				assert.Equal(t, canonical, back, "%q: %d -> %d -> %d", v, from, to, from)
			}
		}
	}
}
