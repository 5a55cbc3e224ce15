package program

import "github.com/gagliardetto/solana-go"

// Instruction is an unsigned instruction ready to be placed in a transaction
// by the caller.
type Instruction struct {
	programID solana.PublicKey
	accounts  []*solana.AccountMeta
	data      []byte
}

func NewInstruction(programID solana.PublicKey, accounts []*solana.AccountMeta, data []byte) *Instruction {
	return &Instruction{
		programID: programID,
		accounts:  accounts,
		data:      data,
	}
}

func (i *Instruction) Accounts() []*solana.AccountMeta {
	return i.accounts
}

func (i *Instruction) ProgramID() solana.PublicKey {
	return i.programID
}

func (i *Instruction) Data() ([]byte, error) {
	return i.data, nil
}
