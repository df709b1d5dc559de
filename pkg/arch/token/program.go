package token

import (
	"github.com/pkg/errors"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

// ProgramKey is the address of the APL token program.
var ProgramKey = arch.PubkeyFromSlice([]byte("apl-token00000000000000000000000"))

// MintSize is the packed size of a mint account.
const MintSize = 82

type Command byte

const (
	// nolint:varcheck,deadcode,unused
	CommandInitializeMint Command = iota
	CommandInitializeAccount
	CommandInitializeMultisig
	CommandTransfer
	CommandApprove
	CommandRevoke
	CommandSetAuthority
	CommandMintTo
	CommandBurn
	CommandCloseAccount
	CommandFreezeAccount
	CommandThawAccount
	CommandTransfer2
	CommandApprove2
	CommandMintTo2
	CommandBurn2
	CommandInitializeAccount2
	CommandSyncNative
	CommandInitializeAccount3
	CommandInitializeMultisig2
	CommandInitializeMint2
)

type AuthorityType byte

const (
	AuthorityTypeMintTokens AuthorityType = iota
	AuthorityTypeFreezeAccount
	AuthorityTypeAccountHolder
	AuthorityTypeCloseAccount
)

// InitializeMint2 initializes a mint without requiring the rent sysvar.
func InitializeMint2(mint, mintAuthority arch.Pubkey, freezeAuthority *arch.Pubkey, decimals uint8) arch.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable]` The mint to initialize.
	data := []byte{byte(CommandInitializeMint2), decimals}
	data = append(data, mintAuthority[:]...)
	data = appendOptionalKey(data, freezeAuthority)

	return arch.NewInstruction(
		ProgramKey,
		data,
		arch.NewAccountMeta(mint, false),
	)
}

type DecompiledInitializeMint2 struct {
	Mint            arch.Pubkey
	MintAuthority   arch.Pubkey
	FreezeAuthority *arch.Pubkey
	Decimals        uint8
}

func DecompileInitializeMint2(ix arch.Instruction) (*DecompiledInitializeMint2, error) {
	if ix.Program != ProgramKey {
		return nil, arch.ErrIncorrectProgram
	}
	if len(ix.Data) < 1 || ix.Data[0] != byte(CommandInitializeMint2) {
		return nil, arch.ErrIncorrectInstruction
	}
	if len(ix.Accounts) != 1 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(ix.Accounts))
	}
	if len(ix.Data) < 2+arch.PublicKeySize+1 {
		return nil, errors.Errorf("invalid data size: %d", len(ix.Data))
	}

	freezeAuthority, err := readOptionalKey(ix.Data[2+arch.PublicKeySize:])
	if err != nil {
		return nil, err
	}

	return &DecompiledInitializeMint2{
		Mint:            ix.Accounts[0].PublicKey,
		MintAuthority:   arch.PubkeyFromSlice(ix.Data[2 : 2+arch.PublicKeySize]),
		FreezeAuthority: freezeAuthority,
		Decimals:        ix.Data[1],
	}, nil
}

// SetAuthority sets, or clears when newAuthority is nil, an authority of a
// mint or account.
func SetAuthority(account, currentAuthority arch.Pubkey, newAuthority *arch.Pubkey, authorityType AuthorityType) arch.Instruction {
	// Accounts expected by this instruction:
	//
	//   * Single authority
	//   0. `[writable]` The mint or account to change the authority of.
	//   1. `[signer]` The current authority of the mint or account.
	data := []byte{byte(CommandSetAuthority), byte(authorityType)}
	data = appendOptionalKey(data, newAuthority)

	return arch.NewInstruction(
		ProgramKey,
		data,
		arch.NewAccountMeta(account, false),
		arch.NewReadonlyAccountMeta(currentAuthority, true),
	)
}

type DecompiledSetAuthority struct {
	Account          arch.Pubkey
	CurrentAuthority arch.Pubkey
	NewAuthority     *arch.Pubkey
	Type             AuthorityType
}

func DecompileSetAuthority(ix arch.Instruction) (*DecompiledSetAuthority, error) {
	if ix.Program != ProgramKey {
		return nil, arch.ErrIncorrectProgram
	}
	if len(ix.Data) < 1 || ix.Data[0] != byte(CommandSetAuthority) {
		return nil, arch.ErrIncorrectInstruction
	}
	if len(ix.Accounts) < 2 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(ix.Accounts))
	}
	if len(ix.Data) < 3 {
		return nil, errors.Errorf("invalid data size: %d (expect at least 3)", len(ix.Data))
	}

	newAuthority, err := readOptionalKey(ix.Data[2:])
	if err != nil {
		return nil, err
	}

	return &DecompiledSetAuthority{
		Account:          ix.Accounts[0].PublicKey,
		CurrentAuthority: ix.Accounts[1].PublicKey,
		NewAuthority:     newAuthority,
		Type:             AuthorityType(ix.Data[1]),
	}, nil
}

// appendOptionalKey writes a COption<Pubkey>: a single zero byte for None, or
// a one byte followed by the key for Some.
func appendOptionalKey(dst []byte, key *arch.Pubkey) []byte {
	var offset int
	if key == nil {
		buf := make([]byte, 1)
		binary.PutUint8(buf, 0, &offset)
		return append(dst, buf[:offset]...)
	}

	buf := make([]byte, 1+arch.PublicKeySize)
	binary.PutOptionalKey32(buf, key, &offset, 1)
	return append(dst, buf[:offset]...)
}

func readOptionalKey(src []byte) (*arch.Pubkey, error) {
	if len(src) == 0 {
		return nil, errors.New("missing optional key flag")
	}

	var offset int
	var flag uint8
	binary.GetUint8(src, &flag, &offset)

	switch flag {
	case 0:
		if len(src) != offset {
			return nil, errors.Errorf("invalid optional key encoding of %d bytes", len(src))
		}
		return nil, nil
	case 1:
		if len(src) != 1+arch.PublicKeySize {
			return nil, errors.Errorf("invalid optional key encoding of %d bytes", len(src))
		}

		var key *arch.Pubkey
		offset = 0
		binary.GetOptionalKey32(src, &key, &offset, 1)
		return key, nil
	default:
		return nil, errors.Errorf("invalid optional key flag %d", flag)
	}
}
