package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
)

// Seed prefixes of the metadata program's derived accounts.
const (
	metadataSeedPrefix   = "metadata"
	attributesSeedPrefix = "attributes"
)

// GetMetadataAddress derives the metadata account for a mint.
func GetMetadataAddress(program, mint arch.Pubkey) (arch.Pubkey, uint8, error) {
	return deriveMintAddress(metadataSeedPrefix, program, mint)
}

// GetAttributesAddress derives the attributes account for a mint.
func GetAttributesAddress(program, mint arch.Pubkey) (arch.Pubkey, uint8, error) {
	return deriveMintAddress(attributesSeedPrefix, program, mint)
}

func deriveMintAddress(prefix string, program, mint arch.Pubkey) (arch.Pubkey, uint8, error) {
	return arch.FindProgramAddressAndBump(
		program,
		[]byte(prefix),
		mint[:],
	)
}
