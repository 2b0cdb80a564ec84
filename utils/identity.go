package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

const minPhoneDigits = 7

var ErrInvalidPhone = errors.New("phone number must contain at least 7 digits")

// NormalizePhone keeps only the digits, so "+92 300-123 4567" and
// "923001234567" map to the same user.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	if b.Len() < minPhoneDigits {
		return "", ErrInvalidPhone
	}
	return b.String(), nil
}

// DeriveUserKey returns the pseudonymous key stored instead of the phone number.
func DeriveUserKey(phone, pepper string) (string, error) {
	digits, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256([]byte(pepper + ":" + digits))
	return hex.EncodeToString(h[:]), nil
}
