package arch

import (
	"crypto/sha256"
	"math"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	ErrInvalidPublicKey = errors.New("invalid public key")
)

var (
	programHashCtor = sha256.New
)

// DerivedAddress is a program derived address together with the bump that
// produced it.
type DerivedAddress struct {
	Address Pubkey
	Bump    uint8
}

// IsOnCurve reports whether b is a valid BIP-340 x-only encoding of a
// secp256k1 point, which is the key format used by ordinary Arch accounts.
func IsOnCurve(b []byte) bool {
	_, err := schnorr.ParsePubKey(b)
	return err == nil
}

// CreateProgramAddress hashes the seeds, the bump and the program id into a
// candidate address.
//
// Program addresses are keys that _do not_ lie on the secp256k1 curve, so
// there is no associated private key. If the digest is a valid x-only point,
// ErrInvalidPublicKey is returned and the caller should try the next bump.
func CreateProgramAddress(program Pubkey, bump uint8, seeds ...[]byte) (Pubkey, error) {
	if len(seeds) > maxSeeds {
		return Pubkey{}, ErrTooManySeeds
	}

	h := programHashCtor()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return Pubkey{}, ErrMaxSeedLengthExceeded
		}

		if _, err := h.Write(s); err != nil {
			return Pubkey{}, errors.Wrap(err, "failed to hash seed")
		}
	}

	for _, v := range [][]byte{{bump}, program[:]} {
		if _, err := h.Write(v); err != nil {
			return Pubkey{}, errors.Wrap(err, "failed to hash seed")
		}
	}

	var pub Pubkey
	copy(pub[:], h.Sum(nil))

	if IsOnCurve(pub[:]) {
		return Pubkey{}, ErrInvalidPublicKey
	}

	return pub, nil
}

// FindProgramAddressAndBump searches bumps from 255 down to 0 and returns the
// first off-curve address along with its bump. Every bump is tried before
// ErrAddressDerivationExhausted is returned.
func FindProgramAddressAndBump(program Pubkey, seeds ...[]byte) (Pubkey, uint8, error) {
	for bump := math.MaxUint8; bump >= 0; bump-- {
		pub, err := CreateProgramAddress(program, uint8(bump), seeds...)
		if err == nil {
			return pub, uint8(bump), nil
		}
		if err != ErrInvalidPublicKey {
			return Pubkey{}, 0, err
		}
	}

	return Pubkey{}, 0, ErrAddressDerivationExhausted
}

// FindProgramAddress is FindProgramAddressAndBump without the bump.
func FindProgramAddress(program Pubkey, seeds ...[]byte) (Pubkey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}

// DeriveAddress returns the canonical DerivedAddress for the seeds.
func DeriveAddress(program Pubkey, seeds ...[]byte) (DerivedAddress, error) {
	pub, bump, err := FindProgramAddressAndBump(program, seeds...)
	if err != nil {
		return DerivedAddress{}, err
	}
	return DerivedAddress{Address: pub, Bump: bump}, nil
}
