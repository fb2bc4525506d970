package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ValidationError collects field-level validation failures keyed by field path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

// InputParser handles parsing of input configuration files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML configuration document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration is nil")
	}
	if err := ip.validate.Struct(config); err != nil {
		return toValidationError(err)
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, s := range config.Scenarios {
		key := strings.ToLower(s.Name)
		if seen[key] {
			return fmt.Errorf("scenario %d: duplicate scenario name %q", i, s.Name)
		}
		seen[key] = true
	}

	plans := make(map[string]bool, len(config.ACFPlans))
	for i, p := range config.ACFPlans {
		key := strings.ToLower(p.Name)
		if plans[key] {
			return fmt.Errorf("acf plan %d: duplicate plan name %q", i, p.Name)
		}
		plans[key] = true
	}
	return nil
}

// ValidateInput checks a single simulation input, as received by the API.
func (ip *InputParser) ValidateInput(in *domain.SimulationInput) error {
	if err := ip.validate.Struct(in); err != nil {
		return toValidationError(err)
	}
	return nil
}

// ValidateACFPlan checks a single ACF request; an unnamed plan is accepted.
func (ip *InputParser) ValidateACFPlan(plan *domain.ACFPlan) error {
	named := *plan
	if named.Name == "" {
		named.Name = "request"
	}
	if err := ip.validate.Struct(&named); err != nil {
		return toValidationError(err)
	}
	return nil
}

// ProcessValidationErrors flattens validator errors into field -> rule.
func ProcessValidationErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	errorResponse := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		field := ve.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		// scenario inputs are inlined in YAML
		field = strings.ReplaceAll(field, "SimulationInput.", "")
		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		errorResponse[field] = rule
	}
	return errorResponse
}

func toValidationError(err error) error {
	fields := ProcessValidationErrors(err)
	if fields == nil {
		return err
	}
	return &ValidationError{Fields: fields}
}
