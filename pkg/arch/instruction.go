package arch

import (
	"github.com/pkg/errors"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")
)

// AccountMeta represents the account information required
// for building transactions.
type AccountMeta struct {
	PublicKey  Pubkey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a readonly
// account.
func NewReadonlyAccountMeta(pub Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// Instruction represents a transaction instruction. The order of Accounts is
// part of the wire contract with the target program.
type Instruction struct {
	Program  Pubkey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program Pubkey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// Signers returns the distinct signer keys of the instructions in order of
// first appearance.
func Signers(instructions ...Instruction) []Pubkey {
	var signers []Pubkey
	seen := make(map[Pubkey]struct{})
	for _, ix := range instructions {
		for _, account := range ix.Accounts {
			if !account.IsSigner {
				continue
			}
			if _, ok := seen[account.PublicKey]; ok {
				continue
			}
			seen[account.PublicKey] = struct{}{}
			signers = append(signers, account.PublicKey)
		}
	}
	return signers
}
