package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/config"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/logging"
	"github.com/rgehrsitz/herdemi/internal/tui"
)

func main() {
	// an optional scenario file seeds the scenario list
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: config file not found: %s\n", configPath)
			os.Exit(1)
		}
	}

	env, err := config.LoadEnv(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// the alt screen owns stdout, so only warnings reach stderr
	logCfg := env.ApplyLogging(domain.LoggingConfig{})
	if logCfg.Level != "error" {
		logCfg.Level = "warn"
	}
	logger := logging.New(logging.Config{Level: logCfg.Level, Pretty: logCfg.Pretty})
	logging.SetGlobalLogger(logger)

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logging.NewEngineLogger(logger, "tui"))

	p := tea.NewProgram(
		tui.NewModel(configPath, engine),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
