package wrapper

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/config"
)

// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

type converter[T any] func(source interface{}) (T, error)

// valueConfig adapts an untyped config.Config into a typed one, falling back
// to the default when no value is set and to the last observed value on
// error.
type valueConfig[T any] struct {
	override     config.Config
	defaultValue T
	convert      converter[T]

	stateMu   sync.RWMutex
	lastValue T
}

func newValueConfig[T any](override config.Config, defaultValue T, convert converter[T]) *valueConfig[T] {
	return &valueConfig[T]{
		override:     override,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *valueConfig[T]) GetSafe(ctx context.Context) (T, error) {
	override, err := c.override.Get(ctx)
	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()
	if err == config.ErrNoValue {
		c.stateMu.Lock()
		c.lastValue = c.defaultValue
		c.stateMu.Unlock()
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	newValue, err := c.convert(override)
	if err != nil {
		return lastValue, err
	}

	c.stateMu.Lock()
	c.lastValue = newValue
	c.stateMu.Unlock()
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *valueConfig[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *valueConfig[T]) Shutdown() {
	c.override.Shutdown()
}

// NewBoolConfig returns a new bool config utility wrapper
func NewBoolConfig(override config.Config, defaultValue bool) config.Bool {
	return newValueConfig(override, defaultValue, func(source interface{}) (bool, error) {
		switch source := source.(type) {
		case []byte:
			return strconv.ParseBool(string(source))
		case bool:
			return source, nil
		default:
			return false, ErrUnsuportedConversion
		}
	})
}

// NewUint64Config returns a new uint64 config utility wrapper
func NewUint64Config(override config.Config, defaultValue uint64) config.Uint64 {
	return newValueConfig(override, defaultValue, func(source interface{}) (uint64, error) {
		switch source := source.(type) {
		case []byte:
			return strconv.ParseUint(string(source), 10, 64)
		case uint64:
			return source, nil
		case int:
			if source < 0 {
				return 0, errors.Errorf("config: negative value %d", source)
			}
			return uint64(source), nil
		default:
			return 0, ErrUnsuportedConversion
		}
	})
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return newValueConfig(override, defaultValue, func(source interface{}) (string, error) {
		switch source := source.(type) {
		case []byte:
			return string(source), nil
		case string:
			return source, nil
		default:
			return "", ErrUnsuportedConversion
		}
	})
}

// NewDurationConfig returns a new duration config utility wrapper
func NewDurationConfig(override config.Config, defaultValue time.Duration) config.Duration {
	return newValueConfig(override, defaultValue, func(source interface{}) (time.Duration, error) {
		switch source := source.(type) {
		case []byte:
			return time.ParseDuration(string(source))
		case time.Duration:
			return source, nil
		default:
			return 0, ErrUnsuportedConversion
		}
	})
}

// NewPubkeyConfig returns a new account address config utility wrapper.
// Textual values may be hex or base58.
func NewPubkeyConfig(override config.Config, defaultValue arch.Pubkey) config.Pubkey {
	return newValueConfig(override, defaultValue, func(source interface{}) (arch.Pubkey, error) {
		switch source := source.(type) {
		case []byte:
			return arch.ParsePubkey(string(source))
		case string:
			return arch.ParsePubkey(source)
		case arch.Pubkey:
			return source, nil
		default:
			return arch.Pubkey{}, ErrUnsuportedConversion
		}
	})
}
