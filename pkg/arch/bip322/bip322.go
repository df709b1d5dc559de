package bip322

import (
	"bytes"
	"encoding/base64"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"
)

const (
	messageTag = "BIP0322-signed-message"

	// maxWitnessItemSize bounds a single decoded witness item.
	maxWitnessItemSize = 10_000
	maxWitnessItems    = 100
)

var (
	ErrUnsupportedAddress = errors.New("bip322: unsupported address type")
	ErrKeyAddressMismatch = errors.New("bip322: private key does not control address")
	ErrInvalidSignature   = errors.New("bip322: invalid signature")
)

// MessageHash is the tagged hash committed to by the virtual to_spend
// transaction.
func MessageHash(message []byte) chainhash.Hash {
	return *chainhash.TaggedHash([]byte(messageTag), message)
}

// TaprootAddress returns the BIP-86 key path only taproot address of the
// provided internal key.
func TaprootAddress(internalKey *btcec.PublicKey, params *chaincfg.Params) (*btcutil.AddressTaproot, error) {
	return btcutil.NewAddressTaproot(taprootOutputKey(internalKey), params)
}

func taprootOutputKey(internalKey *btcec.PublicKey) []byte {
	return schnorr.SerializePubKey(txscript.ComputeTaprootKeyNoScript(internalKey))
}

// SignSimple produces a BIP-322 simple signature: the base64 encoding of the
// consensus serialized witness stack that spends the virtual to_spend output
// paying to address.
//
// P2TR key path and P2WPKH addresses are supported. Taproot inputs are signed
// with SIGHASH_ALL, so the signature witness item is 65 bytes.
func SignSimple(wif *btcutil.WIF, address btcutil.Address, message []byte) (string, error) {
	if wif == nil || wif.PrivKey == nil {
		return "", errors.New("bip322: missing private key")
	}

	pkScript, err := txscript.PayToAddrScript(address)
	if err != nil {
		return "", errors.Wrap(err, "bip322: error building output script")
	}

	toSpend := buildToSpend(message, pkScript)
	toSign := buildToSign(toSpend)

	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, 0)
	sigHashes := txscript.NewTxSigHashes(toSign, fetcher)

	var witness wire.TxWitness
	switch address.(type) {
	case *btcutil.AddressTaproot:
		if !bytes.Equal(taprootOutputKey(wif.PrivKey.PubKey()), address.ScriptAddress()) {
			return "", ErrKeyAddressMismatch
		}

		witness, err = txscript.TaprootWitnessSignature(toSign, sigHashes, 0, 0, pkScript, txscript.SigHashAll, wif.PrivKey)
		if err != nil {
			return "", errors.Wrap(err, "bip322: error signing taproot input")
		}
	case *btcutil.AddressWitnessPubKeyHash:
		if !wif.CompressPubKey {
			return "", errors.Wrap(ErrUnsupportedAddress, "p2wpkh requires a compressed key")
		}
		if !bytes.Equal(btcutil.Hash160(wif.SerializePubKey()), address.ScriptAddress()) {
			return "", ErrKeyAddressMismatch
		}

		witness, err = txscript.WitnessSignature(toSign, sigHashes, 0, 0, pkScript, txscript.SigHashAll, wif.PrivKey, true)
		if err != nil {
			return "", errors.Wrap(err, "bip322: error signing segwit input")
		}
	default:
		return "", errors.Wrapf(ErrUnsupportedAddress, "%T", address)
	}

	encoded, err := SerializeWitness(witness)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(encoded), nil
}

// VerifySimple checks a BIP-322 simple signature by executing the address
// script against the reconstructed to_sign transaction.
func VerifySimple(address btcutil.Address, message []byte, signature string) error {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return errors.Wrap(ErrInvalidSignature, "signature is not base64")
	}

	witness, err := ParseWitness(raw)
	if err != nil {
		return err
	}

	pkScript, err := txscript.PayToAddrScript(address)
	if err != nil {
		return errors.Wrap(err, "bip322: error building output script")
	}

	toSign := buildToSign(buildToSpend(message, pkScript))
	toSign.TxIn[0].Witness = witness

	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, 0)
	engine, err := txscript.NewEngine(
		pkScript,
		toSign,
		0,
		txscript.StandardVerifyFlags,
		nil,
		txscript.NewTxSigHashes(toSign, fetcher),
		0,
		fetcher,
	)
	if err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}
	if err := engine.Execute(); err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}
	return nil
}

// SerializeWitness encodes a witness stack as a compact size item count
// followed by each item with a compact size length prefix.
func SerializeWitness(witness wire.TxWitness) ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteVarInt(&buf, 0, uint64(len(witness))); err != nil {
		return nil, errors.Wrap(err, "bip322: error encoding witness")
	}
	for _, item := range witness {
		if err := wire.WriteVarBytes(&buf, 0, item); err != nil {
			return nil, errors.Wrap(err, "bip322: error encoding witness")
		}
	}
	return buf.Bytes(), nil
}

// ParseWitness decodes the output of SerializeWitness. Trailing bytes are
// rejected.
func ParseWitness(raw []byte) (wire.TxWitness, error) {
	r := bytes.NewReader(raw)

	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSignature, "truncated witness item count")
	}
	if count == 0 || count > maxWitnessItems {
		return nil, errors.Wrapf(ErrInvalidSignature, "invalid witness item count %d", count)
	}

	witness := make(wire.TxWitness, count)
	for i := range witness {
		witness[i], err = wire.ReadVarBytes(r, 0, maxWitnessItemSize, "witness item")
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSignature, "witness item %d: %v", i, err)
		}
	}
	if r.Len() != 0 {
		return nil, errors.Wrapf(ErrInvalidSignature, "%d trailing bytes", r.Len())
	}
	return witness, nil
}

func buildToSpend(message []byte, pkScript []byte) *wire.MsgTx {
	messageHash := MessageHash(message)

	// OP_0 PUSH32[message_hash]
	scriptSig := make([]byte, 0, 2+chainhash.HashSize)
	scriptSig = append(scriptSig, txscript.OP_0, txscript.OP_DATA_32)
	scriptSig = append(scriptSig, messageHash[:]...)

	tx := wire.NewMsgTx(0)
	prevOut := wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex)
	txIn := wire.NewTxIn(prevOut, scriptSig, nil)
	txIn.Sequence = 0
	tx.AddTxIn(txIn)
	tx.AddTxOut(wire.NewTxOut(0, pkScript))
	return tx
}

func buildToSign(toSpend *wire.MsgTx) *wire.MsgTx {
	toSpendHash := toSpend.TxHash()

	tx := wire.NewMsgTx(0)
	txIn := wire.NewTxIn(wire.NewOutPoint(&toSpendHash, 0), nil, nil)
	txIn.Sequence = 0
	tx.AddTxIn(txIn)
	tx.AddTxOut(wire.NewTxOut(0, []byte{txscript.OP_RETURN}))
	return tx
}
