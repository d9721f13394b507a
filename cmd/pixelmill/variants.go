package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pixelmill/internal/config"
	"pixelmill/pkg/logger"
	"pixelmill/pkg/optimizer"
	"pixelmill/pkg/variants"
)

func variantsCmd() *cobra.Command {
	var (
		presets []string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "variants <input>",
		Short: "Produce preset variants from one image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := config.AppConfig.PresetOptions()
			if err != nil {
				return err
			}

			named := table
			if len(presets) > 0 {
				named = make(map[string]optimizer.Options, len(presets))
				for _, name := range presets {
					opts, ok := table[name]
					if !ok {
						return errors.Errorf("unknown preset %q (known: %s)",
							name, strings.Join(presetNames(table), ", "))
					}
					named[name] = opts
				}
			}

			input := args[0]
			data, err := os.ReadFile(input)
			if err != nil {
				return errors.Wrapf(err, "read %s", input)
			}

			set, err := variants.ProcessVariants(cmd.Context(), data, named, presets...)
			if err != nil && !warnPartial(err) {
				return err
			}

			return writeSet(input, outDir, set)
		},
	}

	cmd.Flags().StringSliceVarP(&presets, "preset", "p", nil, "Preset names to produce (default: all)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: alongside input)")
	return cmd
}

func responsiveCmd() *cobra.Command {
	var (
		flags  pipelineFlags
		widths []int
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "responsive <input>",
		Short: "Produce responsive breakpoint variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := flags.options()
			if err != nil {
				return err
			}

			src, err := optimizer.LoadFile(args[0])
			if err != nil {
				return err
			}

			ws := widths
			if len(ws) == 0 {
				ws = config.AppConfig.Responsive.Widths
			}

			set, err := variants.Responsive(cmd.Context(), src, ws, base)
			if err != nil && !warnPartial(err) {
				return err
			}

			return writeSet(args[0], outDir, set)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntSliceVarP(&widths, "widths", "w", nil, "Breakpoint widths (default: config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: alongside input)")
	return cmd
}

// warnPartial logs per-variant failures and reports whether err was a
// partial failure (some variants may still have succeeded).
func warnPartial(err error) bool {
	var errs variants.VariantErrors
	if !stderrors.As(err, &errs) {
		return false
	}
	for _, e := range errs {
		logger.LogWarn("%v", e)
	}
	return true
}

// writeSet writes every variant as "<base>.<name><ext>" into outDir and
// prints a summary table.
func writeSet(input, outDir string, set variants.VariantSet) error {
	if len(set) == 0 {
		return errors.New("no variants produced")
	}
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", outDir)
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	tableData := [][]string{
		{"VARIANT", "SIZE", "FORMAT", "BYTES", "FILE"},
	}
	for _, name := range names {
		out := set[name]
		dst := filepath.Join(outDir, fmt.Sprintf("%s.%s%s", base, name, out.Format.Ext()))
		if err := os.WriteFile(dst, out.Data, 0644); err != nil {
			return errors.Wrapf(err, "write %s", dst)
		}
		tableData = append(tableData, []string{
			name,
			fmt.Sprintf("%dx%d", out.Width, out.Height),
			out.Format.String(),
			optimizer.FormatBytes(out.Size),
			filepath.Base(dst),
		})
	}

	pterm.Println()
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
	return nil
}

func presetNames(table map[string]optimizer.Options) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
