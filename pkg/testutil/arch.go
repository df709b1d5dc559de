package testutil

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
)

// GeneratePrivateKey returns the raw 32-byte scalar of a fresh secp256k1 key.
func GeneratePrivateKey(t *testing.T) []byte {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return priv.Serialize()
}

// GenerateArchKeys returns n x-only account keys.
func GenerateArchKeys(t *testing.T, n int) []arch.Pubkey {
	keys := make([]arch.Pubkey, n)
	for i := 0; i < n; i++ {
		priv, err := btcec.NewPrivateKey()
		require.NoError(t, err)

		keys[i], err = arch.PubkeyFromBytes(schnorr.SerializePubKey(priv.PubKey()))
		require.NoError(t, err)
	}
	return keys
}

// RepeatedKey returns a key with every byte set to b, matching the fixed
// inputs used by the fixture corpus.
func RepeatedKey(b byte) arch.Pubkey {
	var key arch.Pubkey
	for i := range key {
		key[i] = b
	}
	return key
}
