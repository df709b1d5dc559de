package metadata

import (
	"github.com/pkg/errors"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

// InstructionArgs is the body of a metadata instruction.
type InstructionArgs interface {
	InstructionType() InstructionType

	// Validate checks the arguments against the program's limits.
	Validate() error

	marshal(enc *archbinary.Encoder) error
	unmarshal(dec *archbinary.Decoder) error
}

// MarshalInstructionArgs validates args and then encodes the tag byte followed
// by the body. Nothing is encoded for arguments that fail validation.
func MarshalInstructionArgs(args InstructionArgs) ([]byte, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	enc := archbinary.NewEncoder()
	if err := enc.WriteUint8(uint8(args.InstructionType())); err != nil {
		return nil, errors.Wrap(err, "error encoding instruction type")
	}
	if err := args.marshal(enc); err != nil {
		return nil, errors.Wrapf(err, "error encoding %s", args.InstructionType())
	}
	return enc.Bytes(), nil
}

// UnmarshalInstructionArgs decodes instruction data produced by
// MarshalInstructionArgs. Unlike account records, instruction data must be
// consumed exactly.
func UnmarshalInstructionArgs(data []byte) (InstructionArgs, error) {
	dec := archbinary.NewDecoder(data)

	tag, err := dec.ReadUint8("instruction type")
	if err != nil {
		return nil, err
	}

	var args InstructionArgs
	switch InstructionType(tag) {
	case InstructionTypeCreateMetadata:
		args = &CreateMetadataInstructionArgs{}
	case InstructionTypeUpdateMetadata:
		args = &UpdateMetadataInstructionArgs{}
	case InstructionTypeCreateAttributes:
		args = &CreateAttributesInstructionArgs{}
	case InstructionTypeReplaceAttributes:
		args = &ReplaceAttributesInstructionArgs{}
	case InstructionTypeTransferAuthority:
		args = &TransferAuthorityInstructionArgs{}
	case InstructionTypeMakeImmutable:
		args = &MakeImmutableInstructionArgs{}
	default:
		return nil, arch.MalformedDataf("unknown instruction type %d", tag)
	}

	if err := args.unmarshal(dec); err != nil {
		return nil, err
	}
	if dec.Remaining() != 0 {
		return nil, arch.MalformedDataf("%s: %d trailing bytes", args.InstructionType(), dec.Remaining())
	}
	return args, nil
}

// DecompileInstruction decodes the arguments of an instruction addressed to
// program.
func DecompileInstruction(program arch.Pubkey, ix arch.Instruction) (InstructionArgs, error) {
	if ix.Program != program {
		return nil, arch.ErrIncorrectProgram
	}
	return UnmarshalInstructionArgs(ix.Data)
}

func newInstruction(program arch.Pubkey, args InstructionArgs, accounts ...arch.AccountMeta) (arch.Instruction, error) {
	data, err := MarshalInstructionArgs(args)
	if err != nil {
		return arch.Instruction{}, err
	}
	return arch.NewInstruction(program, data, accounts...), nil
}
