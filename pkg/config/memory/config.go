package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/code-payments/arch-token-metadata/pkg/config"
)

// ErrInduced is returned by Get after InduceError is called without an error.
var ErrInduced = errors.New("memory config: induced error")

// Config holds a single value in memory. It backs the manual test overrides
// of every package that reads typed configs.
type Config struct {
	mu       sync.Mutex
	value    interface{}
	err      error
	reads    int
	shutdown bool
}

// NewConfig returns a config holding value. A nil value reports
// config.ErrNoValue, so wrappers fall back to their defaults.
func NewConfig(value interface{}) *Config {
	return &Config{value: value}
}

func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reads++

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.err != nil:
		return nil, c.err
	case c.value == nil:
		return nil, config.ErrNoValue
	default:
		return c.value, nil
	}
}

func (c *Config) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.shutdown = true
}

// SetValue replaces the value returned by subsequent Get calls. Setting nil
// is equivalent to ClearValue.
func (c *Config) SetValue(value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
}

func (c *Config) ClearValue() {
	c.SetValue(nil)
}

// InduceError makes Get fail with err, or ErrInduced when err is nil, until
// ClearError is called.
func (c *Config) InduceError(err error) {
	if err == nil {
		err = ErrInduced
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = err
}

func (c *Config) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = nil
}

// Reads returns how many times Get has been called.
func (c *Config) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.reads
}
