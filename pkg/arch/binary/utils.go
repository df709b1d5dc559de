package binary

import (
	"encoding/binary"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
)

// Fixed-width helpers. Callers size dst (or check src) up front; the offset
// is advanced by the width of the value.

func PutKey32(dst []byte, src arch.Pubkey, offset *int) {
	copy(dst, src[:])
	*offset += arch.PublicKeySize
}

func PutOptionalKey32(dst []byte, src *arch.Pubkey, offset *int, optionSize int) {
	if src != nil {
		dst[0] = 1
		copy(dst[optionSize:], src[:])
	}

	*offset += optionSize + arch.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst, v)
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst, v)
	*offset += 4
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[0] = v
	*offset += 1
}

func GetKey32(src []byte, dst *arch.Pubkey, offset *int) {
	copy(dst[:], src)
	*offset += arch.PublicKeySize
}

func GetOptionalKey32(src []byte, dst **arch.Pubkey, offset *int, optionSize int) {
	if src[0] == 1 {
		var key arch.Pubkey
		copy(key[:], src[optionSize:])
		*dst = &key
	}
	*offset += optionSize + arch.PublicKeySize
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src)
	*offset += 8
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src)
	*offset += 4
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[0]
	*offset += 1
}
