package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
)

var sampleOutput string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the built-in demo plan to a file",
	Args:  cobra.NoArgs,
	RunE:  runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "sample.json", "output file")
}

func runSample(cmd *cobra.Command, args []string) error {
	dto, err := api.EncodePlan(floorplan.NewSamplePlan("floor_sample"))
	if err != nil {
		return err
	}

	if err := writeJSONFile(sampleOutput, dto); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d elements, %d racks)\n", sampleOutput, len(dto.Elements), len(dto.Racks))
	return nil
}
