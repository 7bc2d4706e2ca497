package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"heartrisk/patient"
)

var predictValues = map[string]*string{}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run one assessment from flags and print the result",
	Example: `  heartrisk predict --age 55 --gender Male --height 165 --weight 75 \
    --ap_hi 140 --ap_lo 90 --cholesterol Normal --gluc Normal \
    --smoke No --alco No --active Yes`,
	RunE: runPredict,
}

func init() {
	defaults := patient.Default().Values()
	for _, f := range patient.Fields() {
		usage := f.Label
		if f.Kind == patient.KindNumber {
			usage += " (" + strconv.Itoa(f.Min) + "-" + strconv.Itoa(f.Max) + ")"
		} else {
			usage += fmt.Sprintf(" %q", f.Options)
		}
		predictValues[f.Name] = predictCmd.Flags().String(f.Name, defaults[f.Name], usage)
	}
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	p, err := patient.Parse(func(name string) string {
		if v, ok := predictValues[name]; ok {
			return *v
		}
		return ""
	})
	if err != nil {
		return err
	}

	assessor, _, err := loadAssessor(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	result, err := assessor.Assess(p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Features:   %v\n", result.Features.Slice())
	fmt.Fprintf(out, "Assessment: %s\n", result.Summary())
	return nil
}
