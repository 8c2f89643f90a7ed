package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"scenario-builder/internal/config"
	"scenario-builder/internal/model"
	"scenario-builder/internal/options"
	"scenario-builder/internal/registry"
	"scenario-builder/internal/scenario"
	"scenario-builder/internal/submit"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "settings":
		cmdSettings(os.Args[2:])
	case "submit":
		cmdSubmit(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli settings [--snapshot data/settings.json | --config config.yaml]")
	fmt.Println("  cli submit --scenario scenario.yaml --config config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - settings lists every setting category and its available options")
	fmt.Println("  - submit hydrates a scenario form from YAML and creates the scenario")
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "cli"})
}

func cmdSettings(args []string) {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	snapshotPath := fs.String("snapshot", "", "Path to a settings snapshot (offline mode)")
	cfgPath := fs.String("config", "", "Path to YAML config (live provider mode)")
	_ = fs.Parse(args)

	logger := newLogger()

	var provider scenario.OptionProvider
	switch {
	case *snapshotPath != "":
		snap, err := options.LoadSnapshot(*snapshotPath)
		if err != nil {
			logger.Fatal("failed to load snapshot", "error", err)
		}
		provider = snap
	default:
		cfg := config.Default()
		if *cfgPath != "" {
			loaded, err := config.Load(*cfgPath)
			if err != nil {
				logger.Fatal("failed to load config", "error", err)
			}
			cfg = loaded
		}
		client := options.NewClient(cfg.Provider.APIKey, cfg.Provider.BaseURL, logger)
		client.Client.Timeout = time.Duration(cfg.Provider.TimeoutSeconds) * time.Second
		provider = client
	}

	structure := scenario.NewStructure()
	loader := scenario.NewLoader(provider, structure, logger)
	failed := loader.LoadAll(context.Background())

	for _, slot := range structure.Slots() {
		switch slot.Status {
		case model.StatusLoaded:
			fmt.Printf("%s (%s): %d option(s)\n", slot.Label, slot.Key, len(slot.Options))
			for _, opt := range slot.Options {
				fmt.Printf("  %s  %s\n", opt.ID, opt.Label)
			}
		case model.StatusFailed:
			fmt.Printf("%s (%s): FAILED: %s\n", slot.Label, slot.Key, slot.Error)
		default:
			fmt.Printf("%s (%s): pending\n", slot.Label, slot.Key)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// scenarioFile is the YAML shape accepted by `cli submit`.
type scenarioFile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Features    map[string]string `yaml:"features"` // feature key -> "yes"/"no"
	Settings    map[string]string `yaml:"settings"` // field key -> option id
}

func cmdSubmit(args []string) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	scenarioPath := fs.String("scenario", "", "Path to a scenario YAML file")
	cfgPath := fs.String("config", "", "Path to YAML config")
	_ = fs.Parse(args)

	logger := newLogger()

	if *scenarioPath == "" {
		fmt.Println("--scenario is required")
		os.Exit(2)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logger.Fatal("failed to load config", "error", err)
		}
		cfg = loaded
	}

	sv, err := loadScenarioFile(*scenarioPath)
	if err != nil {
		logger.Fatal("failed to load scenario file", "error", err)
	}

	form := scenario.NewFormState()
	if err := form.Hydrate(sv); err != nil {
		logger.Fatal("failed to hydrate form", "error", err)
	}

	coordinator := submit.NewCoordinator(
		cfg.Submission.URL,
		time.Duration(cfg.Submission.TimeoutSeconds)*time.Second,
		logger,
	)
	id, err := coordinator.Submit(context.Background(), form.Snapshot())
	if err != nil {
		logger.Fatal("submission failed", "error", err)
	}
	fmt.Printf("created scenario %s\n", id)
}

// loadScenarioFile turns the YAML scenario description into a full
// starting-values record: every schema field present, unspecified ones null.
func loadScenarioFile(path string) (model.StartingValues, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf scenarioFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if sf.Name == "" {
		return nil, fmt.Errorf("scenario name is required")
	}

	sv := scenario.EmptyStartingValues()
	sv[registry.FieldScenarioName] = model.StringPtr(sf.Name)
	if sf.Description != "" {
		sv[registry.FieldScenarioDescription] = model.StringPtr(sf.Description)
	}

	featureFields := make(map[string]string, len(registry.Features()))
	for _, f := range registry.Features() {
		featureFields[f.Key] = f.ToggleField
	}
	for key, val := range sf.Features {
		field, ok := featureFields[key]
		if !ok {
			return nil, fmt.Errorf("unknown feature %q", key)
		}
		sv[field] = model.StringPtr(val)
	}

	for key, val := range sf.Settings {
		if !registry.IsFormField(key) {
			return nil, fmt.Errorf("unknown setting field %q", key)
		}
		sv[key] = model.StringPtr(val)
	}
	return sv, nil
}
