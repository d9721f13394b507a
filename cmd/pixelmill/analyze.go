package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pixelmill/pkg/analysis"
	"pixelmill/pkg/optimizer"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <input>",
		Short: "Report approximate color metadata for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := optimizer.LoadFile(args[0])
			if err != nil {
				return err
			}

			a := analysis.Analyze(src.Image())

			swatches := make([]string, len(a.DominantColors))
			for i, c := range a.DominantColors {
				swatches[i] = pterm.NewRGB(c.R, c.G, c.B).Sprint("██") +
					fmt.Sprintf(" #%02x%02x%02x", c.R, c.G, c.B)
			}

			data := [][]string{
				{"File", src.Filename()},
				{"Dimensions", fmt.Sprintf("%dx%d", src.Width(), src.Height())},
				{"Source format", src.SourceFormat()},
				{"Source size", optimizer.FormatBytes(src.Size())},
				{"Profile", string(a.Profile)},
				{"Brightness", fmt.Sprintf("%.3f", a.Brightness)},
				{"Contrast", fmt.Sprintf("%.3f", a.Contrast)},
				{"Transparency", fmt.Sprintf("%t", a.HasTransparency)},
				{"Dominant colors", strings.Join(swatches, "  ")},
			}

			pterm.Println()
			pterm.DefaultTable.WithData(data).WithBoxed().Render()
			return nil
		},
	}
	return cmd
}
