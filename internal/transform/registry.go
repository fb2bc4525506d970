package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Loan terms
	registry.Register("adjust_rate", createAdjustRate)
	registry.Register("set_rate", createSetRate)
	registry.Register("set_tenure", createSetTenure)
	registry.Register("set_principal", createSetPrincipal)
	registry.Register("scale_principal", createScalePrincipal)

	// Herd and funds
	registry.Register("set_units", createSetUnits)
	registry.Register("toggle_cpf", createToggleCPF)
	registry.Register("toggle_cgf", createToggleCGF)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_units:units=2,scale_principal=true"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func requireInt(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// parseFlag accepts true/yes/on/1 and false/no/off/0.
func parseFlag(transform string, params map[string]string, key string, def bool) (bool, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}
	switch strings.ToLower(raw) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%s: invalid %s value %q", transform, key, raw)
}

func createAdjustRate(params map[string]string) (ScenarioTransform, error) {
	delta, err := requireDecimal("adjust_rate", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustRate{Delta: delta}, nil
}

func createSetRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := requireDecimal("set_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetRate{Rate: rate}, nil
}

func createSetTenure(params map[string]string) (ScenarioTransform, error) {
	months, err := requireInt("set_tenure", params, "months")
	if err != nil {
		return nil, err
	}
	return &SetTenure{Months: months}, nil
}

func createSetPrincipal(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireDecimal("set_principal", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetPrincipal{Amount: amount}, nil
}

func createScalePrincipal(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal("scale_principal", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScalePrincipal{Factor: factor}, nil
}

func createSetUnits(params map[string]string) (ScenarioTransform, error) {
	units, err := requireInt("set_units", params, "units")
	if err != nil {
		return nil, err
	}
	scale, err := parseFlag("set_units", params, "scale_principal", false)
	if err != nil {
		return nil, err
	}
	return &SetUnits{Units: units, ScalePrincipal: scale}, nil
}

func createToggleCPF(params map[string]string) (ScenarioTransform, error) {
	enabled, err := parseFlag("toggle_cpf", params, "enabled", false)
	if err != nil {
		return nil, err
	}
	return &ToggleCPF{Enabled: enabled}, nil
}

func createToggleCGF(params map[string]string) (ScenarioTransform, error) {
	enabled, err := parseFlag("toggle_cgf", params, "enabled", false)
	if err != nil {
		return nil, err
	}
	return &ToggleCGF{Enabled: enabled}, nil
}
