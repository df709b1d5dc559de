package computebudget

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

// ComputeBudget1111111111111111111
var ProgramKey = arch.PubkeyFromSlice([]byte("ComputeBudget1111111111111111111"))

// HeapFrameGranularity is the unit heap frame requests must be a multiple of.
const HeapFrameGranularity = 1024

const (
	commandRequestHeapFrame uint32 = iota
	commandSetComputeUnitLimit
)

const dataSize = 4 + 4

// RequestHeapFrame requests a heap frame of the provided size in bytes.
func RequestHeapFrame(bytes uint32) (arch.Instruction, error) {
	if err := ValidateHeapFrame(bytes); err != nil {
		return arch.Instruction{}, err
	}
	return newInstruction(commandRequestHeapFrame, bytes), nil
}

// SetComputeUnitLimit sets the per-transaction compute unit limit.
func SetComputeUnitLimit(computeUnitLimit uint32) arch.Instruction {
	return newInstruction(commandSetComputeUnitLimit, computeUnitLimit)
}

func ValidateHeapFrame(bytes uint32) error {
	if bytes%HeapFrameGranularity != 0 {
		return &arch.ValidationError{
			Field:  "heap_frame_bytes",
			Actual: int(bytes),
			Reason: "must be a multiple of 1024",
		}
	}
	return nil
}

func newInstruction(command, value uint32) arch.Instruction {
	data := make([]byte, dataSize)

	var offset int
	archbinary.PutUint32(data[offset:], command, &offset)
	archbinary.PutUint32(data[offset:], value, &offset)

	return arch.NewInstruction(
		ProgramKey,
		data,
	)
}

func ParseRequestHeapFrameIxnData(data []byte) (uint32, error) {
	return parse(data, commandRequestHeapFrame)
}

func ParseSetComputeUnitLimitIxnData(data []byte) (uint32, error) {
	return parse(data, commandSetComputeUnitLimit)
}

func parse(data []byte, command uint32) (uint32, error) {
	if len(data) != dataSize {
		return 0, errors.New("invalid length")
	}

	if binary.LittleEndian.Uint32(data) != command {
		return 0, errors.New("invalid instruction")
	}

	return binary.LittleEndian.Uint32(data[4:]), nil
}
