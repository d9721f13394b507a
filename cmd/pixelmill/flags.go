package main

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pixelmill/internal/config"
	"pixelmill/pkg/optimizer"
)

// pipelineFlags are the per-run knobs shared by optimize, responsive and
// batch. Enum fields are kept as strings and validated in options().
type pipelineFlags struct {
	width      int
	height     int
	fit        string
	position   string
	format     string
	background string
	quality    float64
	blur       float64
	sharpen    float64
	gamma      float64
	lossless   bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.width, "width", "W", 0, "Max output width (0 = source width)")
	cmd.Flags().IntVarP(&f.height, "height", "H", 0, "Max output height (0 = source height)")
	cmd.Flags().StringVar(&f.fit, "fit", "cover", "Fit mode (cover|contain|fill|inside|outside)")
	cmd.Flags().StringVar(&f.position, "position", "center", "Cover crop anchor (center|top|...|smart)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "auto", "Output format (auto|jpeg|png|webp)")
	cmd.Flags().StringVar(&f.background, "background", "", "Background fill (CSS name or #hex)")
	cmd.Flags().Float64VarP(&f.quality, "quality", "q", 0, "Encode quality 0-1 (0 = default)")
	cmd.Flags().Float64Var(&f.blur, "blur", 0, "Gaussian blur sigma in pixels")
	cmd.Flags().Float64Var(&f.sharpen, "sharpen", 0, "Unsharp-mask amount")
	cmd.Flags().Float64Var(&f.gamma, "gamma", 0, "Gamma correction (1.0 = unchanged)")
	cmd.Flags().BoolVar(&f.lossless, "lossless", false, "Lossless WebP encoding")
}

func (f *pipelineFlags) options() (optimizer.Options, error) {
	fit, err := optimizer.ParseFit(f.fit)
	if err != nil {
		return optimizer.Options{}, err
	}
	pos, err := optimizer.ParseAnchor(f.position)
	if err != nil {
		return optimizer.Options{}, err
	}
	format, err := optimizer.ParseFormat(f.format)
	if err != nil {
		return optimizer.Options{}, err
	}

	return optimizer.Options{
		Quality:    f.quality,
		MaxWidth:   f.width,
		MaxHeight:  f.height,
		Format:     format,
		Fit:        fit,
		Position:   pos,
		Blur:       f.blur,
		Sharpen:    f.sharpen,
		Gamma:      f.gamma,
		Background: f.background,
		Lossless:   f.lossless,
	}, nil
}

// resolveOptions picks a named preset when one was given, the flags
// otherwise.
func resolveOptions(flags *pipelineFlags, preset string) (optimizer.Options, error) {
	if preset == "" {
		return flags.options()
	}

	p, ok := config.AppConfig.Presets[preset]
	if !ok {
		return optimizer.Options{}, errors.Errorf("unknown preset %q", preset)
	}
	return p.Options()
}

// derivedName builds "<base>[.suffix]<ext>" next to the input path.
func derivedName(input, suffix string, format optimizer.Format) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if suffix != "" {
		base += "." + suffix
	}
	return base + format.Ext()
}
