package strategy

import (
	"testing"

	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func yamlParams(body string) ParamDecoder {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(body), &node); err != nil {
		panic(err)
	}

	return func(out any) error {
		return node.Decode(out)
	}
}

func (suite *RegistryTestSuite) TestDefaultRegistryNames() {
	suite.Equal([]string{"bollinger", "bollinger_macd", "ema_bollinger", "gain_loss", "macd", "sma_cross"},
		DefaultRegistry().Names())
}

func (suite *RegistryTestSuite) TestNewBuildsNamedPolicy() {
	registry := DefaultRegistry()

	for _, name := range registry.Names() {
		policy, err := registry.New(name, DefaultOptions(), nil)
		suite.Require().NoError(err, name)
		suite.Equal(name, policy.Name())
	}
}

func (suite *RegistryTestSuite) TestUnknownPolicy() {
	_, err := DefaultRegistry().New("martingale", DefaultOptions(), nil)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))

	_, err = DefaultRegistry().DefaultParams("martingale")
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}

func (suite *RegistryTestSuite) TestDuplicateRegistration() {
	registry := NewRegistry()
	factory := func(Options, ParamDecoder) (Policy, error) { return nil, nil }

	suite.NoError(registry.Register("x", factory, func() any { return struct{}{} }))
	suite.Error(registry.Register("x", factory, func() any { return struct{}{} }))
}

func (suite *RegistryTestSuite) TestDecodeParamsKeepsDefaults() {
	params, err := DecodeParams(DefaultBollingerParams(), yamlParams("period: 10\n"))
	suite.NoError(err)
	suite.Equal(BollingerParams{Period: 10, Multiplier: 2, Window: WindowLeading}, params)

	inline, err := DecodeParams(DefaultBollingerMACDParams(), yamlParams("fast: 6\nband_period: 12\n"))
	suite.NoError(err)
	suite.Equal(6, inline.Fast)
	suite.Equal(26, inline.Slow)
	suite.Equal(12, inline.BandPeriod)
}

func (suite *RegistryTestSuite) TestDecodeParamsValidates() {
	tests := []struct {
		name   string
		policy string
		body   string
	}{
		{name: "period too small", policy: "bollinger", body: "period: 1"},
		{name: "unknown window", policy: "bollinger", body: "window: sideways"},
		{name: "long not above short", policy: "sma_cross", body: "short: 40\nlong: 20"},
		{name: "slow not above fast", policy: "macd", body: "fast: 30"},
		{name: "zero multiplier", policy: "ema_bollinger", body: "multiplier: 0"},
		{name: "zero period", policy: "gain_loss", body: "period: 0"},
		{name: "wrong type", policy: "gain_loss", body: "period: five"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := DefaultRegistry().New(tc.policy, DefaultOptions(), yamlParams(tc.body))
			suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError), "got %v", err)
		})
	}
}

func (suite *RegistryTestSuite) TestDefaultParams() {
	params, err := DefaultRegistry().DefaultParams("gain_loss")
	suite.NoError(err)
	suite.Equal(GainLossParams{Period: 5}, params)
}

func (suite *RegistryTestSuite) TestPolicyUsesDecodedParams() {
	policy, err := DefaultRegistry().New("bollinger", DefaultOptions(), yamlParams("period: 5\nmultiplier: 1"))
	suite.Require().NoError(err)

	state := newState(nil, 10, 10, 10, 10, 10, 5)
	state.ReplaceStacks(map[string]float64{"USDT": 1000})

	decision := policy.Decide(state)
	suite.Equal(types.ActionBuy, decision.Action)
}
