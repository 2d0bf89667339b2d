// Package config holds the runtime configuration of the unit-aware array operations: block
// concurrency, default equivalencies, the default unit format and the log verbosity. Values
// come from defaults, an optional config file and XUNITS_* environment variables, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/viper"

	"github.com/l7mp/xunits/pkg/operator"
	"github.com/l7mp/xunits/pkg/units"
)

const EnvPrefix = "XUNITS"

const (
	KeyConcurrency   = "concurrency"
	KeyEquivalencies = "equivalencies"
	KeyFormat        = "format"
	KeyVerbosity     = "verbosity"
)

type Config struct {
	// Concurrency bounds the number of blocks processed in parallel.
	Concurrency int `mapstructure:"concurrency"`
	// Equivalencies are the names of the equivalencies every conversion uses.
	Equivalencies []string `mapstructure:"equivalencies"`
	// Format is the unit format of the results.
	Format string `mapstructure:"format"`
	// Verbosity is the logr verbosity of the logs.
	Verbosity int `mapstructure:"verbosity"`
}

// New returns a viper instance with the defaults and the environment bindings set.
func New() *viper.Viper {
	vip := viper.New()
	vip.SetDefault(KeyConcurrency, 1)
	vip.SetDefault(KeyEquivalencies, []string{})
	vip.SetDefault(KeyFormat, units.FormatGeneric)
	vip.SetDefault(KeyVerbosity, 0)

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	vip.AutomaticEnv()

	return vip
}

// Load reads the configuration. An empty path skips the config file.
func Load(path string) (*Config, error) {
	vip := New()
	if path != "" {
		vip.SetConfigFile(path)
		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}
	return FromViper(vip)
}

// FromViper decodes and validates the configuration held by a viper instance.
func FromViper(vip *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := vip.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d: must be positive", c.Concurrency)
	}

	if _, err := units.EquivalenciesByName(c.Equivalencies...); err != nil {
		return fmt.Errorf("invalid equivalencies: %w", err)
	}

	if _, err := units.MustParse("m").Format(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	if c.Verbosity < 0 {
		return fmt.Errorf("invalid verbosity %d: must not be negative", c.Verbosity)
	}

	return nil
}

// Dispatcher returns a dispatcher configured with the equivalencies and the concurrency.
func (c *Config) Dispatcher(logger logr.Logger) (*operator.Dispatcher, error) {
	eqs, err := units.EquivalenciesByName(c.Equivalencies...)
	if err != nil {
		return nil, err
	}

	return operator.New(operator.Options{
		Equivalencies: eqs,
		Concurrency:   c.Concurrency,
		Logger:        logger,
	}), nil
}
