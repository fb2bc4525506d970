package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/herdemi/internal/breakeven"
	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/compare"
	"github.com/rgehrsitz/herdemi/internal/config"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/tui/scenes"
	"github.com/rgehrsitz/herdemi/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	config     *domain.Configuration
	calcEngine *calculation.CalculationEngine

	// active scenario, possibly edited on the parameters scene
	current     domain.Scenario
	hasScenario bool
	result      *domain.SimulationResult
	calcSeq     int

	compareStale  bool
	optimizeStale bool

	homeModel       *scenes.HomeModel
	scenariosModel  *scenes.ScenariosModel
	parametersModel *scenes.ParametersModel
	resultsModel    *scenes.ResultsModel
	compareModel    *scenes.CompareModel
	optimizeModel   *scenes.OptimizeModel
	acfModel        *scenes.ACFModel
	help            help.Model

	err error
}

// NewModel creates the application model. An empty configPath starts on the
// built-in default scenario; a nil engine gets a fresh one.
func NewModel(configPath string, engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return Model{
		currentScene:    SceneHome,
		configPath:      configPath,
		calcEngine:      engine,
		homeModel:       scenes.NewHomeModel(configPath),
		scenariosModel:  scenes.NewScenariosModel(),
		parametersModel: scenes.NewParametersModel(),
		resultsModel:    scenes.NewResultsModel(),
		compareModel:    scenes.NewCompareModel(),
		optimizeModel:   scenes.NewOptimizeModel(),
		acfModel:        scenes.NewACFModel(),
		help:            help.New(),
		width:           100,
		height:          40,
	}
}

// DefaultScenario is the reference booking: one unit on a ₹4,00,000 loan at
// 18% over five years with both funds.
func DefaultScenario() domain.Scenario {
	return domain.Scenario{
		Name:        "default",
		Description: "One unit, ₹4,00,000 at 18% over 60 months",
		SimulationInput: domain.SimulationInput{
			Principal:         decimal.NewFromInt(400000),
			AnnualRatePercent: decimal.NewFromInt(18),
			TenureMonths:      60,
			UnitCount:         1,
			CPFEnabled:        true,
			CGFEnabled:        true,
		},
	}
}

// Init loads the configuration.
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return ConfigLoadedMsg{Config: &domain.Configuration{Scenarios: []domain.Scenario{DefaultScenario()}}}
		}
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

func calculateCmd(engine *calculation.CalculationEngine, seq int, in domain.SimulationInput) tea.Cmd {
	return func() tea.Msg {
		return CalculationCompleteMsg{Seq: seq, Input: in, Result: engine.Simulate(in)}
	}
}

func compareCmd(engine *calculation.CalculationEngine, seq int, scenario domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		ce := compare.NewCompareEngine(engine)
		cfg := &domain.Configuration{Scenarios: []domain.Scenario{scenario}}
		set, err := ce.Compare(context.Background(), cfg, compare.CompareOptions{
			BaseScenarioName: scenario.Name,
			Templates:        ce.TemplateRegistry.List(),
		})
		return ComparisonCompleteMsg{Seq: seq, Set: set, Err: err}
	}
}

func optimizeCmd(engine *calculation.CalculationEngine, seq int, scenario domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		solver := breakeven.NewDefaultSolver(engine)
		res, err := solver.OptimizeMultiDimensional(context.Background(), &scenario,
			breakeven.DefaultConstraints(), []breakeven.OptimizationGoal{breakeven.GoalZeroLoss})
		return OptimizationCompleteMsg{Seq: seq, Result: res, Err: err}
	}
}
