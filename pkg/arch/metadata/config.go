package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/config"
	"github.com/code-payments/arch-token-metadata/pkg/config/env"
	"github.com/code-payments/arch-token-metadata/pkg/config/memory"
	"github.com/code-payments/arch-token-metadata/pkg/config/wrapper"
)

const (
	envConfigPrefix = "METADATA_READER_"

	ProgramIdConfigEnvName = envConfigPrefix + "PROGRAM_ID"

	MaxBatchSizeConfigEnvName = envConfigPrefix + "MAX_BATCH_SIZE"
	defaultMaxBatchSize       = 100

	AddressCacheSizeConfigEnvName = envConfigPrefix + "ADDRESS_CACHE_SIZE"
	defaultAddressCacheSize       = 10_000
)

type conf struct {
	programId        config.Pubkey
	maxBatchSize     config.Uint64
	addressCacheSize config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			programId:        env.NewPubkeyConfig(ProgramIdConfigEnvName, ProgramKey),
			maxBatchSize:     env.NewUint64Config(MaxBatchSizeConfigEnvName, defaultMaxBatchSize),
			addressCacheSize: env.NewUint64Config(AddressCacheSizeConfigEnvName, defaultAddressCacheSize),
		}
	}
}

type testOverrides struct {
	programId        arch.Pubkey
	maxBatchSize     uint64
	addressCacheSize uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			programId:        wrapper.NewPubkeyConfig(memory.NewConfig(overrides.programId), ProgramKey),
			maxBatchSize:     wrapper.NewUint64Config(memory.NewConfig(overrides.maxBatchSize), defaultMaxBatchSize),
			addressCacheSize: wrapper.NewUint64Config(memory.NewConfig(overrides.addressCacheSize), defaultAddressCacheSize),
		}
	}
}
