package cardnumber

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum_KnownVector(t *testing.T) {
	// 400000 + 123456789 doubles positions 1,3,..,15 and sums to 51
	check, err := Checksum("400000123456789")
	require.NoError(t, err)
	assert.Equal(t, "9", check)
	assert.True(t, Validate("4000001234567899"))
}

func TestChecksum_Deterministic(t *testing.T) {
	first, err := Checksum("400000987654321")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Checksum("400000987654321")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestChecksum_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"too short", "40000012345678", ErrInvalidLength},
		{"too long", "4000001234567890", ErrInvalidLength},
		{"empty", "", ErrInvalidLength},
		{"letters", "40000012345678a", ErrNotDigits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Checksum(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	for i := 0; i < 1000; i++ {
		partial := fmt.Sprintf("%06d%09d", rand.Intn(1_000_000), rand.Intn(1_000_000_000))
		check, err := Checksum(partial)
		require.NoError(t, err)
		assert.True(t, Validate(partial+check), "round trip failed for %s", partial+check)
	}
}

func TestValidate_DetectsEverySingleDigitSubstitution(t *testing.T) {
	numbers := []string{"4000001234567899"}
	for i := 0; i < 50; i++ {
		number, err := Generate(DefaultIssuerPrefix)
		require.NoError(t, err)
		numbers = append(numbers, number)
	}

	for _, number := range numbers {
		for pos := 0; pos < len(number); pos++ {
			for d := byte('0'); d <= '9'; d++ {
				if number[pos] == d {
					continue
				}
				mutated := number[:pos] + string(d) + number[pos+1:]
				assert.False(t, Validate(mutated),
					"substitution at %d turned %s into valid %s", pos, number, mutated)
			}
		}
	}
}

func TestValidate_MalformedInput(t *testing.T) {
	assert.False(t, Validate(""))
	assert.False(t, Validate("400000"))
	assert.False(t, Validate("40000012345678990"))
	assert.False(t, Validate("400000123456789x"))
	assert.False(t, Validate("4000 0012 3456 78"))
}

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		number, err := Generate(DefaultIssuerPrefix)
		require.NoError(t, err)

		assert.Len(t, number, NumberLength)
		assert.Equal(t, DefaultIssuerPrefix, number[:PrefixLength])
		assert.True(t, Validate(number))
		seen[number] = true
	}

	// 200 draws from a 10^9 space colliding down to a handful would mean the
	// body is not uniform
	assert.Greater(t, len(seen), 190)
}

func TestGenerate_InvalidPrefix(t *testing.T) {
	_, err := Generate("4000")
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Generate("40000a")
	assert.ErrorIs(t, err, ErrNotDigits)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "400000******7899", Mask("4000001234567899"))
	assert.Equal(t, "400000", Mask("400000"))
}
