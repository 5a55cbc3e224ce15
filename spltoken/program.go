package spltoken

import (
	"encoding/binary"
	"fmt"
	"github.com/egaotan/solana-http-server/codec"
	"github.com/egaotan/solana-http-server/program"
	"github.com/gagliardetto/solana-go"
)

const (
	InstructionInitializeMint uint8 = 0
	InstructionTransfer       uint8 = 3
	InstructionMintTo         uint8 = 7
)

const (
	InitializeMintDataSize       = 35
	InitializeMintWithFreezeSize = 67
	AmountDataSize               = 9
)

type Program struct {
	id   solana.PublicKey
	rent solana.PublicKey
}

func NewProgram(id solana.PublicKey, rent solana.PublicKey) *Program {
	p := &Program{
		id:   id,
		rent: rent,
	}
	return p
}

func (p *Program) Name() string {
	return "spl token"
}

func (p *Program) Id() solana.PublicKey {
	return p.id
}

// InstructionInitializeMint leaves the freeze authority unset when
// freezeAuthority is nil.
func (p *Program) InstructionInitializeMint(mint solana.PublicKey, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey, decimals uint8) (solana.Instruction, error) {
	data := make([]byte, InitializeMintDataSize, InitializeMintWithFreezeSize)
	data[0] = InstructionInitializeMint
	data[1] = decimals
	copy(data[2:34], mintAuthority.Bytes())
	if freezeAuthority != nil {
		data[34] = 1
		data = append(data, freezeAuthority.Bytes()...)
	}
	instruction := program.NewInstruction(p.id, []*solana.AccountMeta{
		{PublicKey: mint, IsSigner: false, IsWritable: true},
		{PublicKey: p.rent, IsSigner: false, IsWritable: false},
	}, data)
	return instruction, nil
}

func (p *Program) InstructionMintTo(mint solana.PublicKey, destination solana.PublicKey, authority solana.PublicKey, amount uint64) (solana.Instruction, error) {
	if err := codec.RequireAmount(amount); err != nil {
		return nil, err
	}
	instruction := program.NewInstruction(p.id, []*solana.AccountMeta{
		{PublicKey: mint, IsSigner: false, IsWritable: true},
		{PublicKey: destination, IsSigner: false, IsWritable: true},
		{PublicKey: authority, IsSigner: true, IsWritable: false},
	}, amountData(InstructionMintTo, amount))
	return instruction, nil
}

func (p *Program) InstructionTransfer(source solana.PublicKey, destination solana.PublicKey, owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	if err := codec.RequireAmount(amount); err != nil {
		return nil, err
	}
	instruction := program.NewInstruction(p.id, []*solana.AccountMeta{
		{PublicKey: source, IsSigner: false, IsWritable: true},
		{PublicKey: destination, IsSigner: false, IsWritable: true},
		{PublicKey: owner, IsSigner: true, IsWritable: false},
	}, amountData(InstructionTransfer, amount))
	return instruction, nil
}

func amountData(command uint8, amount uint64) []byte {
	data := make([]byte, AmountDataSize)
	data[0] = command
	binary.LittleEndian.PutUint64(data[1:], amount)
	return data
}

type InstructionData struct {
	Command         uint8
	Amount          uint64
	Decimals        uint8
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
}

func (p *Program) DecodeInstruction(in solana.Instruction) (*InstructionData, error) {
	if in.ProgramID() != p.id {
		return nil, fmt.Errorf("instruction is not for spl token program, expected: %s, actual: %s", p.id, in.ProgramID())
	}
	data, err := in.Data()
	if err != nil {
		return nil, err
	}
	return DecodeInstructionData(data)
}

func DecodeInstructionData(data []byte) (*InstructionData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data is empty")
	}
	decoded := &InstructionData{Command: data[0]}
	switch decoded.Command {
	case InstructionTransfer, InstructionMintTo:
		if len(data) != AmountDataSize {
			return nil, fmt.Errorf("data size is not valid, expected: %d, actual: %d", AmountDataSize, len(data))
		}
		decoded.Amount = binary.LittleEndian.Uint64(data[1:])
	case InstructionInitializeMint:
		if len(data) < InitializeMintDataSize {
			return nil, fmt.Errorf("data size is not valid, expected at least: %d, actual: %d", InitializeMintDataSize, len(data))
		}
		decoded.Decimals = data[1]
		decoded.MintAuthority = solana.PublicKeyFromBytes(data[2:34])
		switch data[34] {
		case 0:
			if len(data) != InitializeMintDataSize {
				return nil, fmt.Errorf("data size is not valid, expected: %d, actual: %d", InitializeMintDataSize, len(data))
			}
		case 1:
			if len(data) != InitializeMintWithFreezeSize {
				return nil, fmt.Errorf("data size is not valid, expected: %d, actual: %d", InitializeMintWithFreezeSize, len(data))
			}
			freeze := solana.PublicKeyFromBytes(data[35:])
			decoded.FreezeAuthority = &freeze
		default:
			return nil, fmt.Errorf("freeze authority option is not valid: %d", data[34])
		}
	default:
		return nil, fmt.Errorf("command %d is not supported", decoded.Command)
	}
	return decoded, nil
}
