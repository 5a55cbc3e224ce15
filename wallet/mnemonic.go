package wallet

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/tyler-smith/go-bip39"
	"strings"
)

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

const MnemonicEntropyBits = 256

type MnemonicKeypair struct {
	Mnemonic string `json:"mnemonic"`
	Keypair
}

// GenerateMnemonicKeypair creates a fresh 24 word mnemonic and its keypair.
func GenerateMnemonicKeypair(passphrase string) (*MnemonicKeypair, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return RecoverMnemonicKeypair(mnemonic, passphrase)
}

// RecoverMnemonicKeypair derives the keypair the way solana-keygen does
// without a derivation path: the first 32 bytes of the BIP-39 seed are the
// ed25519 seed.
func RecoverMnemonicKeypair(mnemonic string, passphrase string) (*MnemonicKeypair, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMnemonic, err)
	}
	key := solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize]))
	return &MnemonicKeypair{
		Mnemonic: mnemonic,
		Keypair:  *newKeypair(key),
	}, nil
}
