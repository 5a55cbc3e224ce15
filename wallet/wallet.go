// Package wallet generates ed25519 keypairs and signs and verifies messages.
//
// Secret keys follow the Solana convention: 64 bytes holding the 32-byte seed
// followed by the 32-byte public key, base58 encoded.
package wallet

import (
	"bytes"
	"crypto/ed25519"
	"filippo.io/edwards25519"
	"fmt"
	"github.com/egaotan/solana-http-server/codec"
	"github.com/gagliardetto/solana-go"
)

type Keypair struct {
	Pubkey string `json:"pubkey"`
	Secret string `json:"secret"`
}

type SignResult struct {
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
	Message   string `json:"message"`
}

type VerifyResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Pubkey  string `json:"pubkey"`
}

func newKeypair(key solana.PrivateKey) *Keypair {
	return &Keypair{
		Pubkey: key.PublicKey().String(),
		Secret: key.String(),
	}
}

// GenerateKeypair panics if the system entropy source fails.
func GenerateKeypair() *Keypair {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(fmt.Sprintf("entropy source failed: %s", err))
	}
	return newKeypair(key)
}

// ParsePrivateKey decodes a base58 secret and checks that its public half
// matches the key derived from its seed half.
func ParsePrivateKey(secret string) (solana.PrivateKey, error) {
	b, err := codec.DecodeKey(secret, codec.SecretKeyLength)
	if err != nil {
		return nil, err
	}
	derived := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], b[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("%w: public key does not match secret seed", codec.ErrInvalidKeyFormat)
	}
	return solana.PrivateKey(b), nil
}

// ParsePublicKey decodes a base58 public key that must be a point on the curve.
func ParsePublicKey(pubkey string) (solana.PublicKey, error) {
	b, err := codec.DecodeKey(pubkey, codec.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if _, err := new(edwards25519.Point).SetBytes(b); err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: not a curve point", codec.ErrInvalidKeyFormat)
	}
	return solana.PublicKeyFromBytes(b), nil
}

// ParseSignature decodes a base64 signature. The scalar half must have its
// three high bits clear.
func ParseSignature(signature string) (solana.Signature, error) {
	sig, err := codec.DecodeSignature(signature)
	if err != nil {
		return solana.Signature{}, err
	}
	if sig[63]&0xe0 != 0 {
		return solana.Signature{}, fmt.Errorf("%w: scalar is not reduced", codec.ErrInvalidSignatureFormat)
	}
	return sig, nil
}

func Sign(message string, secret string) (*SignResult, error) {
	key, err := ParsePrivateKey(secret)
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign([]byte(message))
	if err != nil {
		return nil, err
	}
	return &SignResult{
		Signature: codec.EncodeBase64(sig[:]),
		PublicKey: key.PublicKey().String(),
		Message:   message,
	}, nil
}

// Verify reports a well formed but non matching signature as Valid false.
// Errors are returned only for malformed input.
func Verify(message string, signature string, pubkey string) (*VerifyResult, error) {
	key, err := ParsePublicKey(pubkey)
	if err != nil {
		return nil, err
	}
	sig, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{
		Valid:   ed25519.Verify(key[:], []byte(message), sig[:]),
		Message: message,
		Pubkey:  pubkey,
	}, nil
}
