package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

type CreateAttributesInstructionArgs struct {
	Data []Attribute
}

type CreateAttributesInstructionAccounts struct {
	Payer           arch.Pubkey
	Mint            arch.Pubkey
	Attributes      arch.Pubkey
	UpdateAuthority arch.Pubkey
	Metadata        arch.Pubkey
}

func (args *CreateAttributesInstructionArgs) InstructionType() InstructionType {
	return InstructionTypeCreateAttributes
}

func (args *CreateAttributesInstructionArgs) Validate() error {
	return ValidateAttributes(args.Data)
}

func (args *CreateAttributesInstructionArgs) marshal(enc *archbinary.Encoder) error {
	return putAttributes(enc, args.Data)
}

func (args *CreateAttributesInstructionArgs) unmarshal(dec *archbinary.Decoder) (err error) {
	args.Data, err = getAttributes(dec)
	return err
}

func NewCreateAttributesInstruction(
	program arch.Pubkey,
	accounts *CreateAttributesInstructionAccounts,
	args *CreateAttributesInstructionArgs,
) (arch.Instruction, error) {
	return newInstruction(
		program,
		args,
		arch.NewAccountMeta(accounts.Payer, true),
		arch.NewReadonlyAccountMeta(SystemProgramKey, false),
		arch.NewReadonlyAccountMeta(accounts.Mint, false),
		arch.NewAccountMeta(accounts.Attributes, false),
		arch.NewReadonlyAccountMeta(accounts.UpdateAuthority, true),
		arch.NewReadonlyAccountMeta(accounts.Metadata, false),
	)
}
