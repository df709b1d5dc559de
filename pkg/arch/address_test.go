package arch

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgram = PubkeyFromSlice([]byte("arch-metadata000000000000000000"))

func TestCreateProgramAddress(t *testing.T) {
	exceededSeed := make([]byte, maxSeedLength+1)
	maxSeed := make([]byte, maxSeedLength)

	_, err := CreateProgramAddress(testProgram, 255, exceededSeed)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
	_, err = CreateProgramAddress(testProgram, 255, []byte("short seed"), exceededSeed)
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)

	tooMany := make([][]byte, maxSeeds+1)
	_, err = CreateProgramAddress(testProgram, 255, tooMany...)
	assert.Equal(t, ErrTooManySeeds, err)

	_, _, err = FindProgramAddressAndBump(testProgram, maxSeed)
	assert.NoError(t, err)

	_, _, err = FindProgramAddressAndBump(testProgram, make([][]byte, maxSeeds)...)
	assert.NoError(t, err)
}

func TestFindProgramAddress_Fixtures(t *testing.T) {
	cases := []struct {
		seed     string
		mint     byte
		expected string
		bump     uint8
	}{
		{"metadata", 2, "aeaaeae26e9538872de92377eedcfe4bc028aac84af89cf6c60aabf8b86ab3dd", 253},
		{"attributes", 2, "dadeb613b4bfb891f2daba1fef272d142e4280c6c52f727b6d61796c364d0752", 254},
		{"metadata", 3, "68b7150f87861e0f7e820bccd8873381c57dbf726748ea9fd89b1d9386b13465", 254},
		{"attributes", 3, "ac5e13ece1eb6fc05e0ad2da1e05b228f698eb59a710088a955441a832db8174", 254},
		{"metadata", 0, "deeaa31a9b4296c76ca9ad4a8ca52545166b8532e259d76b87a6802caa6d5c67", 250},
	}

	for _, tc := range cases {
		mint := bytes.Repeat([]byte{tc.mint}, PublicKeySize)

		address, bump, err := FindProgramAddressAndBump(testProgram, []byte(tc.seed), mint)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, address.String())
		assert.Equal(t, tc.bump, bump)
		assert.False(t, IsOnCurve(address[:]))

		// Every bump above the winning one must have landed on the curve
		for skipped := int(tc.bump) + 1; skipped <= 255; skipped++ {
			_, err := CreateProgramAddress(testProgram, uint8(skipped), []byte(tc.seed), mint)
			assert.Equal(t, ErrInvalidPublicKey, err)
		}

		derived, err := DeriveAddress(testProgram, []byte(tc.seed), mint)
		require.NoError(t, err)
		assert.Equal(t, address, derived.Address)
		assert.Equal(t, bump, derived.Bump)
	}
}

func TestFindProgramAddress_Deterministic(t *testing.T) {
	mint := make([]byte, PublicKeySize)
	mint[0] = 42

	a, bumpA, err := FindProgramAddressAndBump(testProgram, []byte("metadata"), mint)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		b, bumpB, err := FindProgramAddressAndBump(testProgram, []byte("metadata"), mint)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Equal(t, bumpA, bumpB)
	}

	other, err := FindProgramAddress(testProgram, []byte("attributes"), mint)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestIsOnCurve(t *testing.T) {
	for i := 0; i < 8; i++ {
		priv, err := btcec.NewPrivateKey()
		require.NoError(t, err)
		assert.True(t, IsOnCurve(schnorr.SerializePubKey(priv.PubKey())))
	}

	// x >= field prime
	assert.False(t, IsOnCurve(bytes.Repeat([]byte{0xff}, 32)))
	assert.False(t, IsOnCurve(make([]byte, 31)))
}

type testCtor struct {
	sumResult []byte
}

func (t *testCtor) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func (t *testCtor) Sum(b []byte) []byte {
	return t.sumResult
}

func (t *testCtor) Reset() {
}

func (t *testCtor) Size() int {
	return sha256.Size
}

func (t *testCtor) BlockSize() int {
	return sha256.BlockSize
}

func TestFindProgramAddress_Exhausted(t *testing.T) {
	defer func() { programHashCtor = sha256.New }()

	// x-coordinate of the secp256k1 generator, always on the curve
	generatorX, err := hex.DecodeString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	require.NoError(t, err)

	var calls int
	programHashCtor = func() hash.Hash {
		calls++
		return &testCtor{sumResult: generatorX}
	}

	_, _, err = FindProgramAddressAndBump(testProgram, []byte("metadata"))
	assert.Equal(t, ErrAddressDerivationExhausted, err)
	assert.Equal(t, 256, calls)
}
