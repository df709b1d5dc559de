package system

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

// ProgramKey is 31 zero bytes followed by 0x01.
var ProgramKey = arch.Pubkey{31: 1}

// MinAccountLamports is the minimum balance the runtime accepts for a new
// account.
const MinAccountLamports uint64 = 1024

const (
	commandCreateAccount uint32 = iota
	// nolint:varcheck,deadcode,unused
	commandAssign
	// nolint:varcheck,deadcode,unused
	commandTransfer
)

const createAccountDataSize = 4 + 8 + 8 + arch.PublicKeySize

// CreateAccount allocates space bytes at address, owned by owner and funded
// by funder.
func CreateAccount(funder, address, owner arch.Pubkey, lamports, space uint64) arch.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE, SIGNER] New account
	data := make([]byte, createAccountDataSize)

	var offset int
	archbinary.PutUint32(data[offset:], commandCreateAccount, &offset)
	archbinary.PutUint64(data[offset:], lamports, &offset)
	archbinary.PutUint64(data[offset:], space, &offset)
	archbinary.PutKey32(data[offset:], owner, &offset)

	return arch.NewInstruction(
		ProgramKey,
		data,
		arch.NewAccountMeta(funder, true),
		arch.NewAccountMeta(address, true),
	)
}

type DecompiledCreateAccount struct {
	Funder  arch.Pubkey
	Address arch.Pubkey

	Lamports uint64
	Size     uint64
	Owner    arch.Pubkey
}

func DecompileCreateAccount(ix arch.Instruction) (*DecompiledCreateAccount, error) {
	if ix.Program != ProgramKey {
		return nil, arch.ErrIncorrectProgram
	}
	if len(ix.Data) != createAccountDataSize || binary.LittleEndian.Uint32(ix.Data) != commandCreateAccount {
		return nil, arch.ErrIncorrectInstruction
	}
	if len(ix.Accounts) != 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(ix.Accounts))
	}

	v := &DecompiledCreateAccount{
		Funder:  ix.Accounts[0].PublicKey,
		Address: ix.Accounts[1].PublicKey,
	}

	var command uint32
	var offset int
	archbinary.GetUint32(ix.Data[offset:], &command, &offset)
	archbinary.GetUint64(ix.Data[offset:], &v.Lamports, &offset)
	archbinary.GetUint64(ix.Data[offset:], &v.Size, &offset)
	archbinary.GetKey32(ix.Data[offset:], &v.Owner, &offset)

	return v, nil
}
