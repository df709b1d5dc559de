package pointer

import "github.com/code-payments/arch-token-metadata/pkg/arch"

// String returns a pointer to the provided string value
func String(value string) *string {
	return &value
}

// Uint32 returns a pointer to the provided uint32 value
func Uint32(value uint32) *uint32 {
	return &value
}

// Pubkey returns a pointer to the provided key
func Pubkey(value arch.Pubkey) *arch.Pubkey {
	return &value
}
