package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
)

func TestPointers(t *testing.T) {
	var key arch.Pubkey
	key[0] = 1

	for _, tc := range []struct {
		name     string
		deref    func() any
		expected any
	}{
		{"string", func() any { return *String("value") }, "value"},
		{"empty string", func() any { return *String("") }, ""},
		{"uint32", func() any { return *Uint32(12000) }, uint32(12000)},
		{"zero uint32", func() any { return *Uint32(0) }, uint32(0)},
		{"pubkey", func() any { return *Pubkey(key) }, key},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.deref())
		})
	}
}

func TestPointers_Copy(t *testing.T) {
	value := "original"
	p := String(value)
	value = "changed"
	assert.Equal(t, "original", *p)

	var key arch.Pubkey
	keyPtr := Pubkey(key)
	require.NotNil(t, keyPtr)
	key[0] = 0xff
	assert.EqualValues(t, 0, keyPtr[0])

	assert.NotSame(t, Uint32(1), Uint32(1))
}
