package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaajung-kjs/digital-sub000/internal/export"
)

var (
	exportOutput string
	exportGrid   bool
)

var exportCmd = &cobra.Command{
	Use:   "export <plan-file>",
	Short: "Render a plan file to SVG",
	Long: `Render a plan file to a standalone SVG document, the same output the
server's export endpoint produces.

Examples:
  planctl export plan.json                 # Writes plan.svg
  planctl export plan.json --grid -o out.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"output file (default: input name with .svg)")
	exportCmd.Flags().BoolVar(&exportGrid, "grid", false,
		"draw the snapping grid behind the elements")
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]

	plan, err := readPlan(path)
	if err != nil {
		return err
	}

	svg := export.Render(plan, export.Options{Grid: exportGrid})

	out := exportOutput
	if out == "" {
		out = strings.TrimSuffix(path, ".json") + ".svg"
	}
	if err := os.WriteFile(out, svg, 0644); err != nil {
		return err
	}

	fmt.Printf("Rendered %s -> %s (%d bytes)\n", path, out, len(svg))
	return nil
}
