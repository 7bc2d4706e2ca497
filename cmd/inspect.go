package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"heartrisk/ml"
	"heartrisk/patient"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe the configured model artifact",
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	model, err := ml.LoadModel(cmd.Context(), cfg.Model.Type, cfg.Model.Path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Path:     %s\n", cfg.Model.Path)
	fmt.Fprintf(out, "Type:     %s\n", model.Type())
	fmt.Fprintf(out, "Features: %d\n", model.NumFeatures())
	if names := model.FeatureNames(); len(names) > 0 {
		fmt.Fprintf(out, "Columns:  %s\n", strings.Join(names, ", "))
	} else {
		fmt.Fprintln(out, "Columns:  (not declared)")
	}
	if err := ml.CheckFeatures(model, patient.FeatureNames()); err != nil {
		fmt.Fprintf(out, "Layout:   MISMATCH (%v)\n", err)
		return err
	}
	fmt.Fprintln(out, "Layout:   ok")
	return nil
}
