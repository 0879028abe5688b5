// Package cardnumber generates and validates Luhn-checksummed card numbers.
package cardnumber

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

const (
	// NumberLength is the full card number length including the check digit.
	NumberLength = 16

	// PrefixLength is the length of the Issuer Identification Number.
	PrefixLength = 6

	// bodyLength is the number of random digits between prefix and check digit.
	bodyLength = 9

	// DefaultIssuerPrefix is the IIN used when none is configured.
	DefaultIssuerPrefix = "400000"
)

var (
	ErrInvalidLength = errors.New("card number has invalid length")
	ErrNotDigits     = errors.New("card number must contain only digits")
)

// Checksum computes the Luhn check digit for the 15 digits preceding it.
// Positions are 1-indexed from the left; digits at odd positions are doubled,
// values above 9 reduced by 9, and the check digit is the sum's complement mod 10.
func Checksum(fifteen string) (string, error) {
	if len(fifteen) != NumberLength-1 {
		return "", ErrInvalidLength
	}
	if !isDigits(fifteen) {
		return "", ErrNotDigits
	}

	sum := 0
	for i, char := range fifteen {
		digit := int(char - '0')
		if i%2 == 0 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}

	return fmt.Sprintf("%d", (10-sum%10)%10), nil
}

// Generate produces a full card number from the issuer prefix and a uniformly
// random 9-digit body. Uniqueness against the store is the caller's concern.
func Generate(issuerPrefix string) (string, error) {
	if len(issuerPrefix) != PrefixLength {
		return "", fmt.Errorf("issuer prefix must be %d digits: %w", PrefixLength, ErrInvalidLength)
	}
	if !isDigits(issuerPrefix) {
		return "", ErrNotDigits
	}

	body := fmt.Sprintf("%09d", rand.Intn(1_000_000_000))
	partial := issuerPrefix + body

	check, err := Checksum(partial)
	if err != nil {
		return "", err
	}

	return partial + check, nil
}

// Validate reports whether the 16-digit number carries a correct check digit.
// Malformed input is invalid, never an error; callers feed it untrusted
// transfer destinations.
func Validate(number string) bool {
	if len(number) != NumberLength || !isDigits(number) {
		return false
	}

	check, err := Checksum(number[:NumberLength-1])
	if err != nil {
		return false
	}

	return check == number[NumberLength-1:]
}

// Mask hides the middle digits of a card number, keeping the issuer prefix and
// the last four digits. Log fields use this so full numbers never reach logs.
func Mask(number string) string {
	if len(number) <= PrefixLength+4 {
		return number
	}

	var masked strings.Builder
	masked.Grow(len(number))
	masked.WriteString(number[:PrefixLength])
	masked.WriteString(strings.Repeat("*", len(number)-PrefixLength-4))
	masked.WriteString(number[len(number)-4:])
	return masked.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
