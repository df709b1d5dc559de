package arch

import (
	"encoding/hex"
)

const (
	SignatureSize = 64
	HashSize      = 32
)

// Signature is a raw 64-byte Schnorr signature.
type Signature [SignatureSize]byte

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// Hash is a recent block hash used to anchor a message.
type Hash [HashSize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// AccountInfo is the subset of on-chain account state the metadata reader
// consumes.
type AccountInfo struct {
	Data       []byte
	Owner      Pubkey
	Utxo       string
	Executable bool
}

// MessageHasher turns an ordered instruction list into the canonical message
// that gets signed. The message format belongs to the transaction envelope and
// is not implemented here.
type MessageHasher interface {
	HashMessage(instructions []Instruction, payer Pubkey, recentBlockhash Hash) (message []byte, digest []byte, err error)
}
