package main

import (
	"os"

	"github.com/spf13/cobra"

	"pixelmill/internal/config"
)

func main() {

	config.LoadEnv()

	startupMessageActive := os.Getenv("STARTUP_LOG_ACTIVE")

	if startupMessageActive != "false" {
		printAsciiLogo()
		printSignature()
	}

	// Load Config & Env
	config.Load()

	rootCmd := &cobra.Command{
		Use:   "pixelmill",
		Short: "Image optimization and variant generation toolkit",
		Long: "pixelmill resizes, filters, composites and re-encodes images into\n" +
			"optimized variants: single outputs, preset sets, responsive\n" +
			"breakpoints, sequential batches and a directory watch mode.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		optimizeCmd(),
		variantsCmd(),
		responsiveCmd(),
		batchCmd(),
		analyzeCmd(),
		watchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
