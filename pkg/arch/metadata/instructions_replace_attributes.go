package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

// ReplaceAttributesInstructionArgs carries the full new attribute set, not a
// delta.
type ReplaceAttributesInstructionArgs struct {
	Data []Attribute
}

type ReplaceAttributesInstructionAccounts struct {
	Attributes      arch.Pubkey
	UpdateAuthority arch.Pubkey
	Metadata        arch.Pubkey
}

func (args *ReplaceAttributesInstructionArgs) InstructionType() InstructionType {
	return InstructionTypeReplaceAttributes
}

func (args *ReplaceAttributesInstructionArgs) Validate() error {
	return ValidateAttributes(args.Data)
}

func (args *ReplaceAttributesInstructionArgs) marshal(enc *archbinary.Encoder) error {
	return putAttributes(enc, args.Data)
}

func (args *ReplaceAttributesInstructionArgs) unmarshal(dec *archbinary.Decoder) (err error) {
	args.Data, err = getAttributes(dec)
	return err
}

func NewReplaceAttributesInstruction(
	program arch.Pubkey,
	accounts *ReplaceAttributesInstructionAccounts,
	args *ReplaceAttributesInstructionArgs,
) (arch.Instruction, error) {
	return newInstruction(
		program,
		args,
		arch.NewAccountMeta(accounts.Attributes, false),
		arch.NewReadonlyAccountMeta(accounts.UpdateAuthority, true),
		arch.NewReadonlyAccountMeta(accounts.Metadata, false),
	)
}
