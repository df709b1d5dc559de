package arch

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// PublicKeySize is the size, in bytes, of an Arch account address.
const PublicKeySize = 32

var ErrInvalidPublicKeyLength = errors.New("invalid public key length")

// Pubkey is an Arch account address. It is either the x-only form of a
// secp256k1 public key, or a deliberately off-curve program derived address.
type Pubkey [PublicKeySize]byte

// PubkeyFromBytes copies b into a Pubkey. b must be exactly 32 bytes.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var pub Pubkey
	if len(b) != PublicKeySize {
		return pub, errors.Wrapf(ErrInvalidPublicKeyLength, "got %d bytes", len(b))
	}
	copy(pub[:], b)
	return pub, nil
}

// PubkeyFromSlice zero pads b into a Pubkey, truncating anything past 32
// bytes. It is used for the fixed ASCII program identifiers.
func PubkeyFromSlice(b []byte) Pubkey {
	var pub Pubkey
	copy(pub[:], b)
	return pub
}

// PubkeyFromHex parses a hex encoded Pubkey.
func PubkeyFromHex(s string) (Pubkey, error) {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return Pubkey{}, errors.Wrap(err, "invalid hex encoded public key")
	}
	return PubkeyFromBytes(decoded)
}

// PubkeyFromBase58 parses a base58 encoded Pubkey.
func PubkeyFromBase58(s string) (Pubkey, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, errors.Wrap(err, "invalid base58 encoded public key")
	}
	return PubkeyFromBytes(decoded)
}

// ParsePubkey accepts either a 64 character hex string or a base58 string.
func ParsePubkey(s string) (Pubkey, error) {
	if len(s) == 2*PublicKeySize {
		if pub, err := PubkeyFromHex(s); err == nil {
			return pub, nil
		}
	}
	return PubkeyFromBase58(s)
}

func MustParsePubkey(s string) Pubkey {
	pub, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pub
}

func (p Pubkey) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	copy(b, p[:])
	return b
}

func (p Pubkey) Equals(other Pubkey) bool {
	return bytes.Equal(p[:], other[:])
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// String returns the hex encoding used by the Arch RPC and fixture files.
func (p Pubkey) String() string {
	return hex.EncodeToString(p[:])
}

func (p Pubkey) ToBase58() string {
	return base58.Encode(p[:])
}
