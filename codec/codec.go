// Package codec holds the textual encodings used at the api boundary:
// base58 for addresses and keys, standard base64 for signatures and
// instruction data.
package codec

import (
	"encoding/base64"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

const (
	PublicKeyLength = 32
	SecretKeyLength = 64
	SignatureLength = 64
)

func DecodeBase58(s string) ([]byte, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base58: %s", ErrInvalidEncoding, err)
	}
	return b, nil
}

func EncodeBase58(b []byte) string {
	return base58.Encode(b)
}

func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %s", ErrInvalidEncoding, err)
	}
	return b, nil
}

func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeKey decodes a base58 key and checks its length.
func DecodeKey(s string, size int) ([]byte, error) {
	b, err := DecodeBase58(s)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyLength, size, len(b))
	}
	return b, nil
}

// DecodeAddress decodes a base58 account address. Any failure is reported as
// ErrInvalidAddress carrying the field name.
func DecodeAddress(field, s string) (solana.PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w %q: not base58", ErrInvalidAddress, field)
	}
	if len(b) != PublicKeyLength {
		return solana.PublicKey{}, fmt.Errorf("%w %q: expected %d bytes, got %d", ErrInvalidAddress, field, PublicKeyLength, len(b))
	}
	return solana.PublicKeyFromBytes(b), nil
}

func DecodeSignature(s string) (solana.Signature, error) {
	b, err := DecodeBase64(s)
	if err != nil {
		return solana.Signature{}, err
	}
	if len(b) != SignatureLength {
		return solana.Signature{}, fmt.Errorf("%w: got %d", ErrInvalidSignatureLength, len(b))
	}
	var sig solana.Signature
	copy(sig[:], b)
	return sig, nil
}
