// Package encoder turns textual addresses and amounts into unsigned
// instruction descriptors for the system and spl token programs.
//
// Value moving builders reject a zero amount before looking at any address.
package encoder

import (
	"github.com/egaotan/solana-http-server/codec"
	"github.com/egaotan/solana-http-server/program"
	"github.com/egaotan/solana-http-server/spltoken"
	"github.com/egaotan/solana-http-server/system"
	"github.com/gagliardetto/solana-go"
)

// Programs are the well known ids an Encoder builds against.
type Programs struct {
	Token           solana.PublicKey
	AssociatedToken solana.PublicKey
	System          solana.PublicKey
	SysRent         solana.PublicKey
}

var DefaultPrograms = Programs{
	Token:           program.Token,
	AssociatedToken: program.AssociatedToken,
	System:          program.System,
	SysRent:         program.SysRent,
}

type Encoder struct {
	programs Programs
	token    *spltoken.Program
	system   *system.Program
}

func NewEncoder(programs Programs) *Encoder {
	e := &Encoder{
		programs: programs,
		token:    spltoken.NewProgram(programs.Token, programs.SysRent),
		system:   system.NewProgram(programs.System),
	}
	return e
}

func (e *Encoder) Programs() Programs {
	return e.programs
}

// InitializeMint sets the freeze authority to the mint authority unless a
// distinct freezeAuthority is given.
func (e *Encoder) InitializeMint(mintAuthority string, mint string, decimals uint8, freezeAuthority string) (*Descriptor, error) {
	authorityKey, err := codec.DecodeAddress("mintAuthority", mintAuthority)
	if err != nil {
		return nil, err
	}
	mintKey, err := codec.DecodeAddress("mint", mint)
	if err != nil {
		return nil, err
	}
	freezeKey := authorityKey
	if freezeAuthority != "" {
		freezeKey, err = codec.DecodeAddress("freezeAuthority", freezeAuthority)
		if err != nil {
			return nil, err
		}
	}
	in, err := e.token.InstructionInitializeMint(mintKey, authorityKey, &freezeKey, decimals)
	if err != nil {
		return nil, err
	}
	return NewDescriptor(in)
}

func (e *Encoder) MintTo(mint string, destination string, authority string, amount uint64) (*Descriptor, error) {
	if err := codec.RequireAmount(amount); err != nil {
		return nil, err
	}
	mintKey, err := codec.DecodeAddress("mint", mint)
	if err != nil {
		return nil, err
	}
	destinationKey, err := codec.DecodeAddress("destination", destination)
	if err != nil {
		return nil, err
	}
	authorityKey, err := codec.DecodeAddress("authority", authority)
	if err != nil {
		return nil, err
	}
	in, err := e.token.InstructionMintTo(mintKey, destinationKey, authorityKey, amount)
	if err != nil {
		return nil, err
	}
	return NewDescriptor(in)
}

func (e *Encoder) SolTransfer(from string, to string, lamports uint64) (*Descriptor, error) {
	if err := codec.RequireAmount(lamports); err != nil {
		return nil, err
	}
	fromKey, err := codec.DecodeAddress("from", from)
	if err != nil {
		return nil, err
	}
	toKey, err := codec.DecodeAddress("to", to)
	if err != nil {
		return nil, err
	}
	in, err := e.system.InstructionTransfer(fromKey, toKey, lamports)
	if err != nil {
		return nil, err
	}
	return NewDescriptor(in)
}

// TokenTransfer moves amount from the owner's associated token account to the
// destination wallet's associated token account. Whether the destination
// account exists is the caller's concern.
func (e *Encoder) TokenTransfer(mint string, owner string, destination string, amount uint64) (*Descriptor, error) {
	if err := codec.RequireAmount(amount); err != nil {
		return nil, err
	}
	mintKey, err := codec.DecodeAddress("mint", mint)
	if err != nil {
		return nil, err
	}
	ownerKey, err := codec.DecodeAddress("owner", owner)
	if err != nil {
		return nil, err
	}
	destinationKey, err := codec.DecodeAddress("destination", destination)
	if err != nil {
		return nil, err
	}
	source, _, err := e.associatedTokenAddress(ownerKey, mintKey)
	if err != nil {
		return nil, err
	}
	target, _, err := e.associatedTokenAddress(destinationKey, mintKey)
	if err != nil {
		return nil, err
	}
	in, err := e.token.InstructionTransfer(source, target, ownerKey, amount)
	if err != nil {
		return nil, err
	}
	return NewDescriptor(in)
}

type AssociatedAccount struct {
	Address string `json:"address"`
	Bump    uint8  `json:"bump"`
}

func (e *Encoder) AssociatedTokenAccount(owner string, mint string) (*AssociatedAccount, error) {
	ownerKey, err := codec.DecodeAddress("owner", owner)
	if err != nil {
		return nil, err
	}
	mintKey, err := codec.DecodeAddress("mint", mint)
	if err != nil {
		return nil, err
	}
	address, bump, err := e.associatedTokenAddress(ownerKey, mintKey)
	if err != nil {
		return nil, err
	}
	return &AssociatedAccount{
		Address: address.String(),
		Bump:    bump,
	}, nil
}

func (e *Encoder) associatedTokenAddress(wallet solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return program.AssociatedTokenAddress(wallet, mint, e.programs.Token, e.programs.AssociatedToken)
}
