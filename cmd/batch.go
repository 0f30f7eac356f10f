package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kennelops/kennelplan/core/batch"
	"github.com/kennelops/kennelplan/core/model"
)

var (
	batchDay       string
	batchSize      int
	batchTeams     int
	batchKm        float64
	batchKeepPairs bool
	batchAgeCap    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Build several non-overlapping teams from the whole kennel",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchDay, "day", "", "planned run date (YYYY-MM-DD, default today)")
	batchCmd.Flags().IntVar(&batchSize, "size", 6, "team size (5, 6, 8 or 10)")
	batchCmd.Flags().IntVar(&batchTeams, "teams", 2, "number of teams to build")
	batchCmd.Flags().Float64Var(&batchKm, "planned-km", 20, "planned distance in km")
	batchCmd.Flags().BoolVar(&batchKeepPairs, "keep-pairs", true, "softly keep declared kennel pairs together")
	batchCmd.Flags().BoolVar(&batchAgeCap, "age-cap", true, "exclude dogs aged 8+ when planned km > 20")
	rootCmd.AddCommand(batchCmd)
}

type batchOutput struct {
	model.BatchResult
	Reasons []string `json:"reasons,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	day, err := parseDay(batchDay)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	res, reasons, err := svc.Batch(batch.Request{
		Day:           day,
		Size:          batchSize,
		TeamsCount:    batchTeams,
		PlannedKm:     batchKm,
		KeepPairsSoft: batchKeepPairs,
		EnforceAgeCap: batchAgeCap,
	})
	if err != nil {
		return err
	}
	return printJSON(batchOutput{BatchResult: res, Reasons: reasons})
}
