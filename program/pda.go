package program

import (
	"errors"
	"filippo.io/edwards25519"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/minio/sha256-simd"
)

const (
	MaxSeeds      = 16
	MaxSeedLength = 32
)

var (
	ErrMaxSeedLength = errors.New("max seed length exceeded")
	ErrOnCurve       = errors.New("address is on the ed25519 curve")
	ErrNoBump        = errors.New("unable to find a viable program address bump seed")
)

const pdaMarker = "ProgramDerivedAddress"

// IsOnCurve reports whether b decodes to a point on the ed25519 curve.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// CreateProgramAddress hashes seeds with the program id. The result must fall
// off the curve so that no private key exists for it.
func CreateProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return solana.PublicKey{}, ErrMaxSeedLength
	}
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return solana.PublicKey{}, ErrMaxSeedLength
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))
	hash := h.Sum(nil)
	if IsOnCurve(hash) {
		return solana.PublicKey{}, ErrOnCurve
	}
	return solana.PublicKeyFromBytes(hash), nil
}

// FindProgramAddress walks the bump seed down from 255 and returns the first
// off-curve address.
func FindProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	bumped := make([][]byte, len(seeds)+1)
	copy(bumped, seeds)
	for bump := uint8(255); bump != 0; bump-- {
		bumped[len(seeds)] = []byte{bump}
		address, err := CreateProgramAddress(bumped, programID)
		if err == nil {
			return address, bump, nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return solana.PublicKey{}, 0, err
		}
	}
	return solana.PublicKey{}, 0, ErrNoBump
}

// AssociatedTokenAddress derives the token account owned by wallet for mint
// under the given token and associated-token programs.
func AssociatedTokenAddress(wallet, mint, tokenProgram, associatedProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	address, bump, err := FindProgramAddress([][]byte{
		wallet[:],
		tokenProgram[:],
		mint[:],
	}, associatedProgram)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive associated token account of %s for mint %s: %w", wallet, mint, err)
	}
	return address, bump, nil
}

func FindAssociatedTokenAddress(wallet, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return AssociatedTokenAddress(wallet, mint, Token, AssociatedToken)
}
