package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"heartrisk/config"
	"heartrisk/logging"
	"heartrisk/ml"
	"heartrisk/risk"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "heartrisk",
	Short:        "Heart disease risk prediction form service",
	SilenceUsage: true,
	Long: `heartrisk serves a form that collects eleven vital-sign fields, runs them
through a pre-trained binary classifier and shows the predicted risk.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config. The default path may be absent; an explicit
// one must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit := cmd.Flags().Changed("config")
	return config.Load(configPath, !explicit)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
}

// loadAssessor reads the model artifact and wraps it in the shared,
// read-only assessor.
func loadAssessor(ctx context.Context, cfg *config.Config) (*risk.Assessor, ml.Model, error) {
	model, err := ml.LoadModel(ctx, cfg.Model.Type, cfg.Model.Path)
	if err != nil {
		return nil, nil, err
	}
	assessor, err := risk.NewAssessor(model, cfg.Cache.Size)
	if err != nil {
		return nil, nil, fmt.Errorf("model %s: %w", cfg.Model.Path, err)
	}
	return assessor, model, nil
}
