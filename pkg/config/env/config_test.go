package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/config"
)

func TestConfigDoesntExist(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"
	t.Setenv(env, "default")

	v, err := NewConfig(env).Get(context.Background())
	assert.Equal(t, []byte("default"), v)
	assert.Nil(t, err)

	t.Setenv(env, "")

	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestTypedConfigs(t *testing.T) {
	key := arch.PubkeyFromSlice([]byte("arch-metadata000000000000000000"))

	t.Setenv("ENV_CONFIG_TEST_PUBKEY", key.ToBase58())
	t.Setenv("ENV_CONFIG_TEST_UINT64", "25")
	t.Setenv("ENV_CONFIG_TEST_DURATION", "150ms")

	pub, err := NewPubkeyConfig("ENV_CONFIG_TEST_PUBKEY", arch.Pubkey{}).GetSafe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, key, pub)

	assert.EqualValues(t, 25, NewUint64Config("ENV_CONFIG_TEST_UINT64", 1).Get(context.Background()))
	assert.Equal(t, "150ms", NewDurationConfig("ENV_CONFIG_TEST_DURATION", 0).Get(context.Background()).String())
	assert.True(t, NewBoolConfig("ENV_CONFIG_TEST_MISSING", true).Get(context.Background()))
}
