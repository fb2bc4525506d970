package transform

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrTemplateNotFound is returned when a template name is not registered.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []ScenarioTransform
}

// Template categories, in help order.
const (
	CategoryLoan        = "Loan Terms"
	CategoryFunds       = "Fund Coverage"
	CategoryHerd        = "Herd Size"
	CategoryCombination = "Combination Strategies"
)

var templateCategories = []string{CategoryLoan, CategoryFunds, CategoryHerd, CategoryCombination}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// Lookup is Get returning ErrTemplateNotFound for unknown names
func (tr *TemplateRegistry) Lookup(name string) (Template, error) {
	t, ok := tr.Get(name)
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t, nil
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if variations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	two := decimal.NewFromInt(2)

	registry.Register(Template{
		Name:        "rate_minus_2",
		Description: "Annual rate 2 points lower",
		Category:    CategoryLoan,
		Transforms:  []ScenarioTransform{&AdjustRate{Delta: two.Neg()}},
	})
	registry.Register(Template{
		Name:        "rate_plus_2",
		Description: "Annual rate 2 points higher",
		Category:    CategoryLoan,
		Transforms:  []ScenarioTransform{&AdjustRate{Delta: two}},
	})
	registry.Register(Template{
		Name:        "tenure_36",
		Description: "Repay over 3 years",
		Category:    CategoryLoan,
		Transforms:  []ScenarioTransform{&SetTenure{Months: 36}},
	})
	registry.Register(Template{
		Name:        "tenure_84",
		Description: "Repay over 7 years",
		Category:    CategoryLoan,
		Transforms:  []ScenarioTransform{&SetTenure{Months: 84}},
	})
	registry.Register(Template{
		Name:        "tenure_120",
		Description: "Repay over 10 years",
		Category:    CategoryLoan,
		Transforms:  []ScenarioTransform{&SetTenure{Months: 120}},
	})

	registry.Register(Template{
		Name:        "no_cpf",
		Description: "Skip CPF insurance",
		Category:    CategoryFunds,
		Transforms:  []ScenarioTransform{&ToggleCPF{Enabled: false}},
	})
	registry.Register(Template{
		Name:        "no_cgf",
		Description: "Skip the calf growth fund",
		Category:    CategoryFunds,
		Transforms:  []ScenarioTransform{&ToggleCGF{Enabled: false}},
	})
	registry.Register(Template{
		Name:        "no_funds",
		Description: "Skip both CPF and the calf growth fund",
		Category:    CategoryFunds,
		Transforms: []ScenarioTransform{
			&ToggleCPF{Enabled: false},
			&ToggleCGF{Enabled: false},
		},
	})
	registry.Register(Template{
		Name:        "all_funds",
		Description: "Pay both CPF and the calf growth fund",
		Category:    CategoryFunds,
		Transforms: []ScenarioTransform{
			&ToggleCPF{Enabled: true},
			&ToggleCGF{Enabled: true},
		},
	})

	registry.Register(Template{
		Name:        "double_units",
		Description: "Twice the units, loan scaled to match",
		Category:    CategoryHerd,
		Transforms:  []ScenarioTransform{&doubleUnits{}},
	})

	registry.Register(Template{
		Name:        "conservative",
		Description: "Rate 2 points higher, both funds paid",
		Category:    CategoryCombination,
		Transforms: []ScenarioTransform{
			&AdjustRate{Delta: two},
			&ToggleCPF{Enabled: true},
			&ToggleCGF{Enabled: true},
		},
	})
	registry.Register(Template{
		Name:        "stretch",
		Description: "Repay over 7 years without the calf growth fund",
		Category:    CategoryCombination,
		Transforms: []ScenarioTransform{
			&SetTenure{Months: 84},
			&ToggleCGF{Enabled: false},
		},
	})

	return registry
}

// doubleUnits resolves the target unit count against the scenario it is applied to.
type doubleUnits struct{}

func (t *doubleUnits) Name() string        { return "double_units" }
func (t *doubleUnits) Description() string { return "Double the units with a proportionally scaled loan" }

func (t *doubleUnits) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	return t.inner(base).Validate(base)
}

func (t *doubleUnits) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	return t.inner(base).Apply(base)
}

func (t *doubleUnits) inner(base *domain.Scenario) *SetUnits {
	return &SetUnits{Units: base.UnitCount * 2, ScalePrincipal: true}
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = CategoryCombination
		}
		categories[category] = append(categories[category], t)
	}

	for _, category := range templateCategories {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  herdemi compare scenarios.yaml --with no_cpf,rate_plus_2\n")
	sb.WriteString("  herdemi compare scenarios.yaml --scenario baseline --with conservative,stretch\n")

	return sb.String()
}
