package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

// UpdateMetadataInstructionArgs replaces only the fields that are set.
type UpdateMetadataInstructionArgs struct {
	Name        *string
	Symbol      *string
	Image       *string
	Description *string
}

type UpdateMetadataInstructionAccounts struct {
	Metadata        arch.Pubkey
	UpdateAuthority arch.Pubkey
}

func (args *UpdateMetadataInstructionArgs) InstructionType() InstructionType {
	return InstructionTypeUpdateMetadata
}

func (args *UpdateMetadataInstructionArgs) Validate() error {
	return ValidateOptionalMetadataFields(args.Name, args.Symbol, args.Image, args.Description)
}

func (args *UpdateMetadataInstructionArgs) marshal(enc *archbinary.Encoder) error {
	for _, v := range []*string{args.Name, args.Symbol, args.Image, args.Description} {
		if err := enc.WriteOptionalString(v); err != nil {
			return err
		}
	}
	return nil
}

func (args *UpdateMetadataInstructionArgs) unmarshal(dec *archbinary.Decoder) (err error) {
	if args.Name, err = dec.ReadOptionalString("name"); err != nil {
		return err
	}
	if args.Symbol, err = dec.ReadOptionalString("symbol"); err != nil {
		return err
	}
	if args.Image, err = dec.ReadOptionalString("image"); err != nil {
		return err
	}
	args.Description, err = dec.ReadOptionalString("description")
	return err
}

func NewUpdateMetadataInstruction(
	program arch.Pubkey,
	accounts *UpdateMetadataInstructionAccounts,
	args *UpdateMetadataInstructionArgs,
) (arch.Instruction, error) {
	return newInstruction(
		program,
		args,
		arch.NewAccountMeta(accounts.Metadata, false),
		arch.NewReadonlyAccountMeta(accounts.UpdateAuthority, true),
	)
}
