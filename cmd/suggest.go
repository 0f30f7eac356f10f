package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kennelops/kennelplan/core/planner"
)

var (
	suggestDay       string
	suggestSize      int
	suggestKm        float64
	suggestKeepPairs bool
	suggestAgeCap    bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest scored team compositions for one run",
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestDay, "day", "", "planned run date (YYYY-MM-DD, default today)")
	suggestCmd.Flags().IntVar(&suggestSize, "size", 6, "team size (5, 6, 8 or 10)")
	suggestCmd.Flags().Float64Var(&suggestKm, "planned-km", 20, "planned distance in km")
	suggestCmd.Flags().BoolVar(&suggestKeepPairs, "keep-pairs", true, "softly keep declared kennel pairs together")
	suggestCmd.Flags().BoolVar(&suggestAgeCap, "age-cap", true, "exclude dogs aged 8+ when planned km > 20")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	day, err := parseDay(suggestDay)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	suggestions, err := svc.Suggestions(planner.Request{
		Day:           day,
		Size:          suggestSize,
		PlannedKm:     suggestKm,
		KeepPairsSoft: suggestKeepPairs,
		EnforceAgeCap: suggestAgeCap,
	})
	if err != nil {
		return err
	}
	return printJSON(suggestions)
}
