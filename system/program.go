package system

import (
	"encoding/binary"
	"github.com/egaotan/solana-http-server/codec"
	"github.com/egaotan/solana-http-server/program"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"math/big"
)

const (
	InstructionTransfer uint32 = 2
)

const (
	TransferDataSize = 12
	LamportsPerSol   = 1_000_000_000
)

type Program struct {
	id solana.PublicKey
}

func NewProgram(id solana.PublicKey) *Program {
	p := &Program{
		id: id,
	}
	return p
}

func (p *Program) Name() string {
	return "system"
}

func (p *Program) Id() solana.PublicKey {
	return p.id
}

func (p *Program) InstructionTransfer(from solana.PublicKey, to solana.PublicKey, lamports uint64) (solana.Instruction, error) {
	if err := codec.RequireAmount(lamports); err != nil {
		return nil, err
	}
	data := make([]byte, TransferDataSize)
	binary.LittleEndian.PutUint32(data[0:], InstructionTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	instruction := program.NewInstruction(p.id, []*solana.AccountMeta{
		{PublicKey: from, IsSigner: true, IsWritable: true},
		{PublicKey: to, IsSigner: false, IsWritable: true},
	}, data)
	return instruction, nil
}

// LamportsToSol renders a lamport amount in whole SOL.
func LamportsToSol(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -9)
}
