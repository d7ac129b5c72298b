// Package main provides the entry point for the cv_builder CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "cv_builder",
	Short: "Plain-text CV to LaTeX and PDF",
	Long: `cv_builder turns a plain-text CV into a LaTeX document and, when a LaTeX
engine is installed, a PDF that is copied to its publish locations and opened.

Configuration is read from cv_builder.yaml (or .json) in the current directory or
~/.config/cv_builder, or from --config. CV_BUILDER_* environment variables override
the file, and command-line flags override both.`,
	SilenceUsage: true,
}

var (
	rootConfigPath string
	rootVerbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config file (default: ./cv_builder.yaml or ~/.config/cv_builder/cv_builder.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed summaries")
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(rootConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if cfg.Verbose && cfg.Source != "" {
		_, _ = fmt.Fprintf(os.Stderr, "Loaded config from: %s\n", cfg.Source)
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
