package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

type TransferAuthorityInstructionArgs struct {
	NewAuthority arch.Pubkey
}

type TransferAuthorityInstructionAccounts struct {
	Metadata               arch.Pubkey
	CurrentUpdateAuthority arch.Pubkey
}

func (args *TransferAuthorityInstructionArgs) InstructionType() InstructionType {
	return InstructionTypeTransferAuthority
}

func (args *TransferAuthorityInstructionArgs) Validate() error {
	return nil
}

func (args *TransferAuthorityInstructionArgs) marshal(enc *archbinary.Encoder) error {
	return enc.WritePubkey(args.NewAuthority)
}

func (args *TransferAuthorityInstructionArgs) unmarshal(dec *archbinary.Decoder) (err error) {
	args.NewAuthority, err = dec.ReadPubkey("new_authority")
	return err
}

func NewTransferAuthorityInstruction(
	program arch.Pubkey,
	accounts *TransferAuthorityInstructionAccounts,
	args *TransferAuthorityInstructionArgs,
) (arch.Instruction, error) {
	return newInstruction(
		program,
		args,
		arch.NewAccountMeta(accounts.Metadata, false),
		arch.NewReadonlyAccountMeta(accounts.CurrentUpdateAuthority, true),
	)
}
