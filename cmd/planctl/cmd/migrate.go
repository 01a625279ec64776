package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
)

var migrateOutput string

var migrateCmd = &cobra.Command{
	Use:   "migrate <plan-file>",
	Short: "Upgrade a legacy plan file to the current format",
	Long: `Upgrade first-generation records in a plan file: wall/label/rectangle
type tags, fillColor/strokeColor keys and x1/y1/x2/y2 line endpoints all
become their current equivalents. Migration is idempotent, so running it on
an already-current file changes nothing.

Examples:
  planctl migrate old.json                 # Rewrite old.json in place
  planctl migrate old.json -o new.json     # Write the result elsewhere`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVarP(&migrateOutput, "output", "o", "",
		"output file (default: rewrite the input in place)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	path := args[0]

	dto, err := readPlanDTO(path)
	if err != nil {
		return err
	}

	// Decode proves the migrated file is loadable before anything is written.
	if _, err := api.DecodePlan(dto); err != nil {
		return fmt.Errorf("migrated plan does not decode: %w", err)
	}

	out := migrateOutput
	if out == "" {
		out = path
	}
	if err := writeJSONFile(out, dto); err != nil {
		return err
	}

	fmt.Printf("Migrated %s -> %s (%d elements, %d racks)\n", path, out, len(dto.Elements), len(dto.Racks))
	return nil
}
