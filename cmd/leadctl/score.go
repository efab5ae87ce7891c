package main

import (
	"encoding/json"
	"fmt"

	"lead_qualification_backend/internal/leads/management"
	"lead_qualification_backend/internal/leads/qualification"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score lead signals without storing anything",
	Long:  "Runs the qualification engine on the given signals and prints the score, explanation and recommended actions as JSON.",
	RunE:  runScore,
}

var (
	scoreSource   string
	scoreDemo     bool
	scorePricing  bool
	scoreMultiple bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreSource, "source", "s", "", "Lead source (website, call, whatsapp, event, referral)")
	scoreCmd.Flags().BoolVar(&scoreDemo, "demo", false, "Lead requested a demo")
	scoreCmd.Flags().BoolVar(&scorePricing, "pricing", false, "Lead viewed the pricing comparison")
	scoreCmd.Flags().BoolVar(&scoreMultiple, "multiple", false, "Lead sent multiple enquiries")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	a := qualification.Evaluate(qualification.Signals{
		Source:            qualification.ParseSource(scoreSource),
		DemoRequested:     scoreDemo,
		PricingCompared:   scorePricing,
		MultipleEnquiries: scoreMultiple,
	})

	out, err := json.MarshalIndent(management.ToScoreResponse(a), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
