// Package strategy exposes the parameter schemas of the bundled policies so
// config files can be validated and edited with JSON schema tooling.
package strategy

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/candle-bot/internal/strategy"
)

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.FieldNameTag = "yaml"
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// ParamsSchema returns the JSON schema of the params section for the policy
// registered as name.
func ParamsSchema(name string) (string, error) {
	params, err := strategy.DefaultRegistry().DefaultParams(name)
	if err != nil {
		return "", err
	}

	return ToJSONSchema(params)
}

// OptionsSchema returns the JSON schema of the options shared by every
// policy.
func OptionsSchema() (string, error) {
	return ToJSONSchema(strategy.DefaultOptions())
}
