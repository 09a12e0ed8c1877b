// Package config loads the YAML file that selects and tunes the decision
// policy.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/candle-bot/internal/strategy"
	"github.com/rxtech-lab/candle-bot/internal/version"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the bot configuration file.
type Config struct {
	// Version is the binary version the file was written for. Empty skips
	// the compatibility check.
	Version string `yaml:"version" json:"version"`
	// Policy is the registry name of the decision policy
	Policy string `yaml:"policy" json:"policy" validate:"required"`
	// Pair is the traded instrument, QUOTE_BASE
	Pair string `yaml:"pair" json:"pair" validate:"required"`
	// Fraction of the quote balance committed per trade
	Fraction float64 `yaml:"fraction" json:"fraction" validate:"gt=0,lte=1"`
	// MinQuoteBalance below which the bot stops trading
	MinQuoteBalance float64 `yaml:"min_quote_balance" json:"min_quote_balance" validate:"gte=0"`
	// Params holds the policy specific parameters, decoded by the policy
	Params yaml.Node `yaml:"params" json:"-" validate:"-"`
}

// Default returns the configuration used without a config file.
func Default() Config {
	options := strategy.DefaultOptions()

	return Config{
		Policy:          "bollinger",
		Pair:            options.Pair,
		Fraction:        options.Fraction,
		MinQuoteBalance: options.MinQuoteBalance,
	}
}

// Load reads and validates the config file at path. Fields missing from the
// file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return Parse(data)
}

// Parse decodes and validates a config document.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field constraints and version compatibility.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.Version != "" {
		if err := version.CheckCompatibility(version.GetVersion(), c.Version); err != nil {
			return err
		}
	}

	return c.Options().Validate()
}

// Options returns the policy options of the configuration.
func (c Config) Options() strategy.Options {
	return strategy.Options{
		Pair:            c.Pair,
		Fraction:        c.Fraction,
		MinQuoteBalance: c.MinQuoteBalance,
	}
}

// ParamDecoder returns a decoder for the params section, nil when the file
// has none.
func (c Config) ParamDecoder() strategy.ParamDecoder {
	if c.Params.Kind == 0 {
		return nil
	}

	params := c.Params

	return func(out any) error {
		return params.Decode(out)
	}
}

// NewPolicy builds the configured policy from registry.
func (c Config) NewPolicy(registry strategy.Registry) (strategy.Policy, error) {
	return registry.New(c.Policy, c.Options(), c.ParamDecoder())
}
