package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
)

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Floor plan file utilities",
	Long: `Work with exported floor plan JSON files: upgrade legacy records,
inspect contents, render SVG.

Examples:
  planctl info plan.json                 # Summarize a plan file
  planctl migrate old.json -o new.json   # Upgrade legacy records
  planctl export plan.json --grid        # Render plan.svg with the grid
  planctl sample -o demo.json            # Write the built-in demo plan`,
	Version: "0.3.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readPlanDTO loads a plan file and upgrades legacy records on the way in.
func readPlanDTO(path string) (api.PlanDTO, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.PlanDTO{}, err
	}

	var dto api.PlanDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return api.PlanDTO{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return api.MigratePlan(dto)
}

// readPlan loads, upgrades and decodes a plan file.
func readPlan(path string) (*floorplan.Plan, error) {
	dto, err := readPlanDTO(path)
	if err != nil {
		return nil, err
	}
	plan, err := api.DecodePlan(dto)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return plan, nil
}

func writeJSONFile(path string, dto api.PlanDTO) error {
	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
