package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

type MakeImmutableInstructionArgs struct {
}

type MakeImmutableInstructionAccounts struct {
	Metadata               arch.Pubkey
	CurrentUpdateAuthority arch.Pubkey
}

func (args *MakeImmutableInstructionArgs) InstructionType() InstructionType {
	return InstructionTypeMakeImmutable
}

func (args *MakeImmutableInstructionArgs) Validate() error {
	return nil
}

func (args *MakeImmutableInstructionArgs) marshal(enc *archbinary.Encoder) error {
	return nil
}

func (args *MakeImmutableInstructionArgs) unmarshal(dec *archbinary.Decoder) error {
	return nil
}

func NewMakeImmutableInstruction(
	program arch.Pubkey,
	accounts *MakeImmutableInstructionAccounts,
	args *MakeImmutableInstructionArgs,
) (arch.Instruction, error) {
	return newInstruction(
		program,
		args,
		arch.NewAccountMeta(accounts.Metadata, false),
		arch.NewReadonlyAccountMeta(accounts.CurrentUpdateAuthority, true),
	)
}
