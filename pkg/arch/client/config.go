package client

import (
	"time"

	"github.com/code-payments/arch-token-metadata/pkg/config"
	"github.com/code-payments/arch-token-metadata/pkg/config/env"
	"github.com/code-payments/arch-token-metadata/pkg/config/memory"
	"github.com/code-payments/arch-token-metadata/pkg/config/wrapper"
)

const (
	envConfigPrefix = "ARCH_RPC_"

	MaxAttemptsConfigEnvName = envConfigPrefix + "MAX_ATTEMPTS"
	defaultMaxAttempts       = 3

	BaseBackoffConfigEnvName = envConfigPrefix + "BASE_BACKOFF"
	defaultBaseBackoff       = time.Second

	MaxBackoffConfigEnvName = envConfigPrefix + "MAX_BACKOFF"
	defaultMaxBackoff       = 10 * time.Second

	RequestTimeoutConfigEnvName = envConfigPrefix + "REQUEST_TIMEOUT"
	defaultRequestTimeout       = 30 * time.Second

	// Zero disables client side rate limiting.
	MaxRequestsPerSecondConfigEnvName = envConfigPrefix + "MAX_REQUESTS_PER_SECOND"
	defaultMaxRequestsPerSecond       = 0
)

type conf struct {
	maxAttempts    config.Uint64
	baseBackoff    config.Duration
	maxBackoff     config.Duration
	requestTimeout config.Duration
	maxRps         config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			maxAttempts:    env.NewUint64Config(MaxAttemptsConfigEnvName, defaultMaxAttempts),
			baseBackoff:    env.NewDurationConfig(BaseBackoffConfigEnvName, defaultBaseBackoff),
			maxBackoff:     env.NewDurationConfig(MaxBackoffConfigEnvName, defaultMaxBackoff),
			requestTimeout: env.NewDurationConfig(RequestTimeoutConfigEnvName, defaultRequestTimeout),
			maxRps:         env.NewUint64Config(MaxRequestsPerSecondConfigEnvName, defaultMaxRequestsPerSecond),
		}
	}
}

type testOverrides struct {
	maxAttempts    uint64
	baseBackoff    time.Duration
	maxBackoff     time.Duration
	requestTimeout time.Duration
	maxRps         uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			maxAttempts:    wrapper.NewUint64Config(memory.NewConfig(overrides.maxAttempts), defaultMaxAttempts),
			baseBackoff:    wrapper.NewDurationConfig(memory.NewConfig(overrides.baseBackoff), defaultBaseBackoff),
			maxBackoff:     wrapper.NewDurationConfig(memory.NewConfig(overrides.maxBackoff), defaultMaxBackoff),
			requestTimeout: wrapper.NewDurationConfig(memory.NewConfig(overrides.requestTimeout), defaultRequestTimeout),
			maxRps:         wrapper.NewUint64Config(memory.NewConfig(overrides.maxRps), defaultMaxRequestsPerSecond),
		}
	}
}
