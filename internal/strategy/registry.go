package strategy

import (
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
)

// ParamDecoder fills out with the policy specific parameters. It must leave
// fields it has no value for untouched so defaults survive.
type ParamDecoder func(out any) error

// Factory builds a policy from the shared options and its parameters.
type Factory func(options Options, decode ParamDecoder) (Policy, error)

// Registry maps policy names to their constructors.
type Registry interface {
	Register(name string, factory Factory, defaults func() any) error
	New(name string, options Options, decode ParamDecoder) (Policy, error)
	// DefaultParams returns the default parameter struct of a policy.
	DefaultParams(name string) (any, error)
	Names() []string
}

type registryEntry struct {
	factory  Factory
	defaults func() any
}

// RegistryV1 is the map backed Registry.
type RegistryV1 struct {
	entries map[string]registryEntry
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *RegistryV1 {
	return &RegistryV1{
		entries: make(map[string]registryEntry),
		mu:      sync.RWMutex{},
	}
}

// DefaultRegistry returns a registry holding every shipped policy.
func DefaultRegistry() Registry {
	r := NewRegistry()

	mustRegister(r, "bollinger", debounced(DefaultBollingerParams, func(p BollingerParams) Signaler { return NewBollinger(p) }),
		func() any { return DefaultBollingerParams() })
	mustRegister(r, "sma_cross", debounced(DefaultSMACrossParams, func(p SMACrossParams) Signaler { return NewSMACross(p) }),
		func() any { return DefaultSMACrossParams() })
	mustRegister(r, "ema_bollinger", debounced(DefaultEMABollingerParams, func(p EMABollingerParams) Signaler { return NewEMABollinger(p) }),
		func() any { return DefaultEMABollingerParams() })
	mustRegister(r, "macd", debounced(DefaultMACDParams, func(p MACDParams) Signaler { return NewMACD(p) }),
		func() any { return DefaultMACDParams() })
	mustRegister(r, "bollinger_macd", debounced(DefaultBollingerMACDParams, func(p BollingerMACDParams) Signaler { return NewBollingerMACD(p) }),
		func() any { return DefaultBollingerMACDParams() })
	mustRegister(r, "gain_loss", debounced(DefaultGainLossParams, func(p GainLossParams) Signaler { return NewGainLoss(p) }),
		func() any { return DefaultGainLossParams() })

	return r
}

func mustRegister(r Registry, name string, factory Factory, defaults func() any) {
	if err := r.Register(name, factory, defaults); err != nil {
		panic(err)
	}
}

// Register adds a policy to the registry.
func (r *RegistryV1) Register(name string, factory Factory, defaults func() any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyConfigError, "policy %s already registered", name)
	}

	r.entries[name] = registryEntry{factory: factory, defaults: defaults}

	return nil
}

// New builds the policy registered as name.
func (r *RegistryV1) New(name string, options Options, decode ParamDecoder) (Policy, error) {
	r.mu.RLock()
	entry, exists := r.entries[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unknown policy %q, available: %v", name, r.Names())
	}

	return entry.factory(options, decode)
}

// DefaultParams returns the default parameters of the policy registered as
// name.
func (r *RegistryV1) DefaultParams(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unknown policy %q", name)
	}

	return entry.defaults(), nil
}

// Names returns the registered policy names, sorted.
func (r *RegistryV1) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// debounced returns a Factory that decodes and validates parameters of type
// P and wraps the resulting signaler in Debounced.
func debounced[P any](defaults func() P, build func(P) Signaler) Factory {
	return func(options Options, decode ParamDecoder) (Policy, error) {
		params, err := DecodeParams(defaults(), decode)
		if err != nil {
			return nil, err
		}

		return NewDebounced(build(params), options)
	}
}

// DecodeParams decodes parameters over defaults and validates the result.
func DecodeParams[P any](defaults P, decode ParamDecoder) (P, error) {
	params := defaults

	if decode != nil {
		if err := decode(&params); err != nil {
			return defaults, errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to decode policy params", err)
		}
	}

	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		return defaults, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid policy params", err)
	}

	return params, nil
}
