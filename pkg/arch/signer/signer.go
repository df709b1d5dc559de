package signer

import (
	"encoding/base64"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/pkg/errors"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/arch/bip322"
)

const (
	PrivateKeySize = 32

	// sigHashAllMarker is the sighash type byte appended to a taproot
	// signature that commits with SIGHASH_ALL.
	sigHashAllMarker = 0x01
)

// Identity is the signing identity of a private key on a network.
type Identity struct {
	// XOnly is the x-only form of the public key, which is also its Arch
	// account key.
	XOnly arch.Pubkey

	// Address is the BIP-86 taproot address of the key.
	Address *btcutil.AddressTaproot
}

// SignBip322 signs message with the BIP-322 simple scheme for the taproot
// address of privateKey and returns the raw 64-byte Schnorr signature.
//
// The caller keeps ownership of privateKey. Every copy of the scalar made
// here is zeroed before returning, on success and failure alike.
func SignBip322(privateKey []byte, message []byte, network arch.Network) (arch.Signature, error) {
	priv, err := parsePrivateKey(privateKey)
	if err != nil {
		return arch.Signature{}, err
	}
	defer priv.Zero()

	params, err := network.Params()
	if err != nil {
		return arch.Signature{}, newSigningError("network", err)
	}

	address, err := bip322.TaprootAddress(priv.PubKey(), params)
	if err != nil {
		return arch.Signature{}, newSigningError("derive address", err)
	}

	wif, err := btcutil.NewWIF(priv, params, true)
	if err != nil {
		return arch.Signature{}, newSigningError("encode wif", err)
	}

	encoded, err := bip322.SignSimple(wif, address, message)
	if err != nil {
		return arch.Signature{}, newSigningError("sign", err)
	}

	witness, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return arch.Signature{}, newSigningError("decode witness", err)
	}

	return ExtractSignature(witness)
}

// ExtractSignature returns the 64 bytes of a serialized witness that end at
// the signature boundary. A trailing 0x01 is taken to be a SIGHASH_ALL marker
// and excluded; otherwise the witness is assumed to end at the boundary.
//
// This only holds for a single item key path witness. Any other witness
// framing needs the boundary derived from the parsed stack instead.
func ExtractSignature(witness []byte) (arch.Signature, error) {
	end := len(witness)
	if end > 0 && witness[end-1] == sigHashAllMarker {
		end--
	}
	if end < arch.SignatureSize {
		return arch.Signature{}, newSigningError("extract signature", errors.Wrapf(ErrWitnessTooShort, "%d bytes", len(witness)))
	}

	var sig arch.Signature
	copy(sig[:], witness[end-arch.SignatureSize:end])
	return sig, nil
}

// DeriveIdentity returns the x-only key and taproot address of privateKey.
func DeriveIdentity(privateKey []byte, network arch.Network) (*Identity, error) {
	priv, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()

	params, err := network.Params()
	if err != nil {
		return nil, newSigningError("network", err)
	}

	address, err := bip322.TaprootAddress(priv.PubKey(), params)
	if err != nil {
		return nil, newSigningError("derive address", err)
	}

	xOnly, err := arch.PubkeyFromBytes(schnorr.SerializePubKey(priv.PubKey()))
	if err != nil {
		return nil, newSigningError("derive identity", err)
	}

	return &Identity{
		XOnly:   xOnly,
		Address: address,
	}, nil
}

// SignedMessage is a message produced by an external hasher together with
// the signature over its digest.
type SignedMessage struct {
	Message   []byte
	Digest    []byte
	Signature arch.Signature
}

// SignMessage hashes instructions with hasher and signs the resulting digest.
func SignMessage(
	privateKey []byte,
	network arch.Network,
	hasher arch.MessageHasher,
	instructions []arch.Instruction,
	payer arch.Pubkey,
	recentBlockhash arch.Hash,
) (*SignedMessage, error) {
	message, digest, err := hasher.HashMessage(instructions, payer, recentBlockhash)
	if err != nil {
		return nil, errors.Wrap(err, "error hashing message")
	}

	sig, err := SignBip322(privateKey, digest, network)
	if err != nil {
		return nil, err
	}

	return &SignedMessage{
		Message:   message,
		Digest:    digest,
		Signature: sig,
	}, nil
}

// parsePrivateKey rejects anything other than a 32-byte scalar in [1, n).
func parsePrivateKey(privateKey []byte) (*btcec.PrivateKey, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, newSigningError("parse private key", errors.Wrapf(ErrInvalidPrivateKey, "length %d", len(privateKey)))
	}

	var scalar btcec.ModNScalar
	defer scalar.Zero()

	overflow := scalar.SetByteSlice(privateKey)
	if overflow || scalar.IsZero() {
		return nil, newSigningError("parse private key", errors.Wrap(ErrInvalidPrivateKey, "scalar out of range"))
	}

	priv, _ := btcec.PrivKeyFromBytes(privateKey)
	return priv, nil
}
