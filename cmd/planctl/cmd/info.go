package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaajung-kjs/digital-sub000/internal/editor"
	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
)

var infoScreen string

var infoCmd = &cobra.Command{
	Use:   "info <plan-file>",
	Short: "Summarize a plan file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVar(&infoScreen, "screen", "",
		"screen size as WxH; prints the zoom that fits the whole plan")
}

func runInfo(cmd *cobra.Command, args []string) error {
	plan, err := readPlan(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Plan:    %s\n", plan.Name)
	if plan.ID != "" {
		fmt.Printf("ID:      %s\n", plan.ID)
	}
	if plan.FloorID != "" {
		fmt.Printf("Floor:   %s\n", plan.FloorID)
	}
	fmt.Printf("Canvas:  %.0f x %.0f, grid %.0f, background %s\n",
		plan.CanvasWidth, plan.CanvasHeight, plan.GridSize, plan.Background)
	fmt.Printf("Version: %d\n", plan.Version)

	if bounds, ok := editor.ContentBounds(plan.Elements, plan.Racks); ok {
		fmt.Printf("Bounds:  (%.0f, %.0f) to (%.0f, %.0f)\n",
			bounds.X, bounds.Y, bounds.X+bounds.Width, bounds.Y+bounds.Height)
	}
	if infoScreen != "" {
		var w, h float64
		if _, err := fmt.Sscanf(infoScreen, "%fx%f", &w, &h); err != nil || w <= 0 || h <= 0 {
			return fmt.Errorf("invalid --screen %q, want WxH", infoScreen)
		}
		v := editor.NewViewport(w, h)
		v.FitToContent(plan.Elements, plan.Racks)
		fmt.Printf("Fit:     %.0f%% on a %.0fx%.0f screen\n", v.Zoom, w, h)
	}
	fmt.Println()

	kinds := map[floorplan.Kind]int{}
	hidden, locked := 0, 0
	for _, e := range plan.Elements {
		kinds[e.Shape.Kind()]++
		if !e.Visible {
			hidden++
		}
		if e.Locked {
			locked++
		}
	}

	fmt.Printf("Elements: %d total\n", len(plan.Elements))
	for _, k := range []floorplan.Kind{
		floorplan.KindLine, floorplan.KindRect, floorplan.KindCircle,
		floorplan.KindDoor, floorplan.KindWindow, floorplan.KindText,
	} {
		if n := kinds[k]; n > 0 {
			fmt.Printf("  %-8s %d\n", k, n)
		}
	}
	if hidden > 0 {
		fmt.Printf("  hidden   %d\n", hidden)
	}
	if locked > 0 {
		fmt.Printf("  locked   %d\n", locked)
	}

	fmt.Printf("\nRacks: %d total\n", len(plan.Racks))
	for _, r := range plan.Racks {
		fmt.Printf("  %-10s %.0fx%.0f at (%.0f, %.0f), %dU", r.Name, r.Width, r.Height, r.X, r.Y, r.TotalU)
		if r.Code != "" {
			fmt.Printf(", code %s", r.Code)
		}
		if len(r.ImageRefs) > 0 {
			fmt.Printf(", %d photos", len(r.ImageRefs))
		}
		fmt.Println()
	}

	return nil
}
