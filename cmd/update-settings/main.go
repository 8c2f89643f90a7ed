package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"scenario-builder/internal/model"
	"scenario-builder/internal/options"
	"scenario-builder/internal/scenario"
)

// update-settings fetches every setting category's options from the live
// provider and writes them to a JSON snapshot, the seed file for the
// offline CLI.
func main() {
	var (
		baseURL    = flag.String("provider", "", "Option provider base URL (default from PROVIDER_BASE_URL)")
		outputPath = flag.String("output", "", "Output file path (default: ./data/settings.json)")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "update-settings"})

	if *baseURL == "" {
		*baseURL = os.Getenv("PROVIDER_BASE_URL")
	}
	if *outputPath == "" {
		*outputPath = options.DefaultSnapshotPath()
	}

	client := options.NewClient(os.Getenv("PROVIDER_API_KEY"), *baseURL, logger)

	structure := scenario.NewStructure()
	loader := scenario.NewLoader(client, structure, logger)
	failed := loader.LoadAll(context.Background())

	snap := &options.Snapshot{
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
		Categories: make(map[string][]model.Option),
	}
	for _, slot := range structure.Slots() {
		if slot.Status == model.StatusLoaded {
			snap.Categories[slot.Key] = slot.Options
		}
	}

	if err := options.SaveSnapshot(snap, *outputPath); err != nil {
		logger.Fatal("failed to write snapshot", "error", err)
	}

	fmt.Printf("wrote %d categories to %s\n", len(snap.Categories), *outputPath)
	if failed > 0 {
		fmt.Printf("%d categories failed to load and were left out\n", failed)
		os.Exit(1)
	}
}
