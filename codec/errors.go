package codec

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEncoding        = errors.New("invalid encoding")
	ErrInvalidKeyLength       = errors.New("invalid key length")
	ErrInvalidKeyFormat       = errors.New("invalid key format")
	ErrInvalidSignatureLength = errors.New("signature must be 64 bytes")
	ErrInvalidSignatureFormat = errors.New("invalid signature format")
	ErrInvalidAddress         = errors.New("invalid address")
	ErrInvalidAmount          = errors.New("amount must be greater than 0")
	ErrMissingField           = errors.New("missing required fields")
)

// RequireFields fails with ErrMissingField naming the first empty value.
// Arguments alternate name, value.
func RequireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, pairs[i])
		}
	}
	return nil
}

func RequireAmount(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	return nil
}
