package encoder

import (
	"github.com/egaotan/solana-http-server/codec"
	"github.com/gagliardetto/solana-go"
)

type AccountMeta struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

// Descriptor is the wire form of an instruction.
type Descriptor struct {
	ProgramId       string        `json:"program_id"`
	Accounts        []AccountMeta `json:"accounts"`
	InstructionData string        `json:"instruction_data"`
}

func NewDescriptor(in solana.Instruction) (*Descriptor, error) {
	data, err := in.Data()
	if err != nil {
		return nil, err
	}
	accounts := make([]AccountMeta, 0, len(in.Accounts()))
	for _, account := range in.Accounts() {
		accounts = append(accounts, AccountMeta{
			Pubkey:     account.PublicKey.String(),
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		})
	}
	return &Descriptor{
		ProgramId:       in.ProgramID().String(),
		Accounts:        accounts,
		InstructionData: codec.EncodeBase64(data),
	}, nil
}
