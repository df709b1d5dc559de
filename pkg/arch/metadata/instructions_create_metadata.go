package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

type CreateMetadataInstructionArgs struct {
	Name        string
	Symbol      string
	Image       string
	Description string
	Immutable   bool
}

type CreateMetadataInstructionAccounts struct {
	Payer                 arch.Pubkey
	Mint                  arch.Pubkey
	Metadata              arch.Pubkey
	MintOrFreezeAuthority arch.Pubkey
}

func (args *CreateMetadataInstructionArgs) InstructionType() InstructionType {
	return InstructionTypeCreateMetadata
}

func (args *CreateMetadataInstructionArgs) Validate() error {
	return ValidateMetadataFields(args.Name, args.Symbol, args.Image, args.Description)
}

func (args *CreateMetadataInstructionArgs) marshal(enc *archbinary.Encoder) error {
	for _, v := range []string{args.Name, args.Symbol, args.Image, args.Description} {
		if err := enc.WriteString(v); err != nil {
			return err
		}
	}
	return enc.WriteBool(args.Immutable)
}

func (args *CreateMetadataInstructionArgs) unmarshal(dec *archbinary.Decoder) (err error) {
	if args.Name, err = dec.ReadString("name"); err != nil {
		return err
	}
	if args.Symbol, err = dec.ReadString("symbol"); err != nil {
		return err
	}
	if args.Image, err = dec.ReadString("image"); err != nil {
		return err
	}
	if args.Description, err = dec.ReadString("description"); err != nil {
		return err
	}
	args.Immutable, err = dec.ReadBool("immutable")
	return err
}

// NewCreateMetadataInstruction creates the metadata account for a mint. The
// mint or freeze authority must sign.
func NewCreateMetadataInstruction(
	program arch.Pubkey,
	accounts *CreateMetadataInstructionAccounts,
	args *CreateMetadataInstructionArgs,
) (arch.Instruction, error) {
	return newInstruction(
		program,
		args,
		arch.NewAccountMeta(accounts.Payer, true),
		arch.NewReadonlyAccountMeta(SystemProgramKey, false),
		arch.NewReadonlyAccountMeta(accounts.Mint, false),
		arch.NewAccountMeta(accounts.Metadata, false),
		arch.NewReadonlyAccountMeta(accounts.MintOrFreezeAuthority, true),
	)
}
