package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pixelmill/pkg/optimizer"
)

func optimizeCmd() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "optimize <input>",
		Short: "Optimize a single image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			input := args[0]
			data, err := os.ReadFile(input)
			if err != nil {
				return errors.Wrapf(err, "read %s", input)
			}

			spinner, _ := pterm.DefaultSpinner.Start("Optimizing " + filepath.Base(input) + "...")

			out, err := optimizer.Optimize(cmd.Context(), data, opts)
			if err != nil {
				spinner.Fail(err.Error())
				return err
			}

			dst := output
			if dst == "" {
				// "min" keeps the default output from clobbering the input
				// when the format does not change.
				dst = derivedName(input, "min", out.Format)
			}
			if err := os.WriteFile(dst, out.Data, 0644); err != nil {
				spinner.Fail(err.Error())
				return errors.Wrapf(err, "write %s", dst)
			}

			spinner.Success(fmt.Sprintf("%s -> %s | %dx%d %s | %s -> %s",
				filepath.Base(input), filepath.Base(dst),
				out.Width, out.Height, out.Format,
				optimizer.FormatBytes(int64(len(data))), optimizer.FormatBytes(out.Size)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output path (default: <input>.min.<ext>)")
	return cmd
}
