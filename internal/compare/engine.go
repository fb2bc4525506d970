package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against
	Templates        []string // Built-in template names, one alternative each
	Transforms       []string // "name:key=value" specs, one alternative each
}

// Compare runs the base scenario and one alternative per template or transform spec.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseScenario, ok := config.FindScenario(options.BaseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s: %w", options.BaseScenarioName, calculation.ErrScenarioNotFound)
	}

	baseRes, err := ce.CalcEngine.RunScenario(ctx, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseScenario, baseRes)

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, err := ce.TemplateRegistry.Lookup(templateName)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTemplate(baseScenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = baseScenario.Name + "_" + template.Name
		modified.Description = template.Description

		alt, err := ce.runAlternative(ctx, modified, baseResult)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(baseScenario, []transform.ScenarioTransform{t})
		if err != nil {
			return nil, err
		}
		modified.Name = baseScenario.Name + "_" + t.Name()
		modified.Description = t.Description()

		alt, err := ce.runAlternative(ctx, modified, baseResult)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) runAlternative(ctx context.Context, scenario *domain.Scenario, base ComparisonResult) (ComparisonResult, error) {
	res, err := ce.CalcEngine.RunScenario(ctx, scenario)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("failed to calculate scenario %s: %w", scenario.Name, err)
	}
	alt := ce.MetricsCalculator.CalculateMetrics(scenario, res)
	return ce.MetricsCalculator.CalculateComparison(alt, base), nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	baseScenario, ok := config.FindScenario(baseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s: %w", baseScenarioName, calculation.ErrScenarioNotFound)
	}
	baseRes, err := ce.CalcEngine.RunScenario(ctx, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseScenario, baseRes)

	alternatives := []ComparisonResult{}

	for _, altName := range alternativeScenarioNames {
		altScenario, ok := config.FindScenario(altName)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s: %w", altName, calculation.ErrScenarioNotFound)
		}
		alt, err := ce.runAlternative(ctx, altScenario, baseResult)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
