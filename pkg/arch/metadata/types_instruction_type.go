package metadata

// InstructionType is the leading tag byte of every instruction. The order is
// part of the wire format and must never change.
type InstructionType uint8

const (
	InstructionTypeCreateMetadata InstructionType = iota
	InstructionTypeUpdateMetadata
	InstructionTypeCreateAttributes
	InstructionTypeReplaceAttributes
	InstructionTypeTransferAuthority
	InstructionTypeMakeImmutable
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeCreateMetadata:
		return "create_metadata"
	case InstructionTypeUpdateMetadata:
		return "update_metadata"
	case InstructionTypeCreateAttributes:
		return "create_attributes"
	case InstructionTypeReplaceAttributes:
		return "replace_attributes"
	case InstructionTypeTransferAuthority:
		return "transfer_authority"
	case InstructionTypeMakeImmutable:
		return "make_immutable"
	default:
		return "unknown"
	}
}
