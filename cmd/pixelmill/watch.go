package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pixelmill/internal/config"
	"pixelmill/internal/watcher"
	"pixelmill/pkg/cache"
	"pixelmill/pkg/variants"
)

func watchCmd() *cobra.Command {
	var (
		dir    string
		out    string
		preset string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and optimize incoming images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig

			wcfg := cfg.Watch
			if dir != "" {
				wcfg.Dir = dir
			}
			if out != "" {
				wcfg.Out = out
			}
			if preset != "" {
				wcfg.Preset = preset
			}

			presets, err := cfg.PresetOptions()
			if err != nil {
				return err
			}

			appCache := cache.New(cache.Config{
				Enabled:       cfg.Cache.Enabled,
				MaxCapacityMB: cfg.Cache.MaxCapacity,
				TTL:           cfg.CacheTTL(),
			})
			svc := variants.NewService(presets, appCache)

			w, err := watcher.New(wcfg, svc)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Input directory (default: config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default: config)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "Preset applied to incoming files (default: config)")
	return cmd
}
