package spltoken

import (
	"github.com/egaotan/solana-http-server/program"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

var (
	usdc  = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	alice = solana.MustPublicKeyFromBase58("7H4ShpibmzrKS8yPJX9wi1ZyrRYzw5tLym7RjWvAxcHA")
	bob   = solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z")
)

func newProgram() *Program {
	return NewProgram(program.Token, program.SysRent)
}

func instructionData(t *testing.T, in solana.Instruction) []byte {
	data, err := in.Data()
	require.NoError(t, err)
	return data
}

func TestProgram_InstructionInitializeMint(t *testing.T) {
	p := newProgram()
	in, err := p.InstructionInitializeMint(usdc, alice, &alice, 6)
	require.NoError(t, err)

	assert.Equal(t, program.Token, in.ProgramID())
	assert.Equal(t, []*solana.AccountMeta{
		{PublicKey: usdc, IsSigner: false, IsWritable: true},
		{PublicKey: program.SysRent, IsSigner: false, IsWritable: false},
	}, in.Accounts())

	expected := []byte{0, 6}
	expected = append(expected, alice[:]...)
	expected = append(expected, 1)
	expected = append(expected, alice[:]...)
	data := instructionData(t, in)
	assert.Len(t, data, InitializeMintWithFreezeSize)
	assert.Equal(t, expected, data)

	reference := token.NewInitializeMintInstruction(6, alice, alice, usdc, program.SysRent).Build()
	assert.Equal(t, instructionData(t, reference), data)
}

func TestProgram_InstructionInitializeMintWithoutFreeze(t *testing.T) {
	in, err := newProgram().InstructionInitializeMint(usdc, bob, nil, 9)
	require.NoError(t, err)
	data := instructionData(t, in)
	require.Len(t, data, InitializeMintDataSize)
	assert.Equal(t, byte(9), data[1])
	assert.Equal(t, bob[:], data[2:34])
	assert.Equal(t, byte(0), data[34])
}

func TestProgram_InstructionMintTo(t *testing.T) {
	p := newProgram()
	in, err := p.InstructionMintTo(usdc, bob, alice, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, []*solana.AccountMeta{
		{PublicKey: usdc, IsSigner: false, IsWritable: true},
		{PublicKey: bob, IsSigner: false, IsWritable: true},
		{PublicKey: alice, IsSigner: true, IsWritable: false},
	}, in.Accounts())
	data := instructionData(t, in)
	assert.Equal(t, []byte{7, 0x40, 0x42, 0x0f, 0, 0, 0, 0, 0}, data)

	reference := token.NewMintToInstruction(1_000_000, usdc, bob, alice, nil).Build()
	assert.Equal(t, instructionData(t, reference), data)

	_, err = p.InstructionMintTo(usdc, bob, alice, 0)
	assert.Error(t, err)
}

func TestProgram_InstructionTransfer(t *testing.T) {
	p := newProgram()
	in, err := p.InstructionTransfer(alice, bob, usdc, ^uint64(0))
	require.NoError(t, err)
	assert.Equal(t, []*solana.AccountMeta{
		{PublicKey: alice, IsSigner: false, IsWritable: true},
		{PublicKey: bob, IsSigner: false, IsWritable: true},
		{PublicKey: usdc, IsSigner: true, IsWritable: false},
	}, in.Accounts())
	data := instructionData(t, in)
	assert.Equal(t, []byte{3, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, data)

	reference := token.NewTransferInstruction(^uint64(0), alice, bob, usdc, nil).Build()
	assert.Equal(t, instructionData(t, reference), data)
}

func TestProgram_DecodeInstruction(t *testing.T) {
	p := newProgram()

	in, err := p.InstructionTransfer(alice, bob, usdc, 42)
	require.NoError(t, err)
	decoded, err := p.DecodeInstruction(in)
	require.NoError(t, err)
	assert.Equal(t, InstructionTransfer, decoded.Command)
	assert.Equal(t, uint64(42), decoded.Amount)

	in, err = p.InstructionInitializeMint(usdc, alice, &bob, 2)
	require.NoError(t, err)
	decoded, err = p.DecodeInstruction(in)
	require.NoError(t, err)
	assert.Equal(t, InstructionInitializeMint, decoded.Command)
	assert.Equal(t, uint8(2), decoded.Decimals)
	assert.Equal(t, alice, decoded.MintAuthority)
	require.NotNil(t, decoded.FreezeAuthority)
	assert.Equal(t, bob, *decoded.FreezeAuthority)

	foreign := program.NewInstruction(program.System, nil, []byte{3})
	_, err = p.DecodeInstruction(foreign)
	assert.Error(t, err)

	_, err = DecodeInstructionData([]byte{3, 1})
	assert.Error(t, err)
	_, err = DecodeInstructionData([]byte{99})
	assert.Error(t, err)
	_, err = DecodeInstructionData(nil)
	assert.Error(t, err)
}
