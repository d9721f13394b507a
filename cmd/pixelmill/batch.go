package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pixelmill/pkg/logger"
	"pixelmill/pkg/optimizer"
	"pixelmill/pkg/variants"
)

func batchCmd() *cobra.Command {
	var (
		flags  pipelineFlags
		preset string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "batch <input>...",
		Short: "Optimize many files sequentially under one options set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(&flags, preset)
			if err != nil {
				return err
			}

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					return errors.Wrapf(err, "create %s", outDir)
				}
			}

			bar, _ := pterm.DefaultProgressbar.WithTotal(len(args)).WithTitle("Optimizing").Start()
			onProgress := func(percent float64, label string) {
				if percent > 0 {
					bar.Increment()
				}
				if label != "done" {
					bar.UpdateTitle(label)
				}
			}

			results, summary := variants.BatchFiles(cmd.Context(), args, opts, onProgress)
			bar.Stop()

			for _, r := range results {
				dst := batchDst(r.Path, outDir, r.Output.Format)
				if err := os.WriteFile(dst, r.Output.Data, 0644); err != nil {
					return errors.Wrapf(err, "write %s", dst)
				}
			}

			if summary.Failed > 0 {
				logger.LogWarn("%s", summary)
			} else {
				logger.LogSuccess("%s", summary)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "Preset to apply instead of flags")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: alongside each input)")
	return cmd
}

func batchDst(input, outDir string, format optimizer.Format) string {
	if outDir == "" {
		return derivedName(input, "min", format)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outDir, base+format.Ext())
}
