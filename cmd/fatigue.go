package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kennelops/kennelplan/core/model"
)

var fatigueDay string

var fatigueCmd = &cobra.Command{
	Use:   "fatigue",
	Short: "Compute per-dog fatigue metrics for a planned run date",
	RunE:  runFatigue,
}

func init() {
	fatigueCmd.Flags().StringVar(&fatigueDay, "day", "", "planned run date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(fatigueCmd)
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return model.Day(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func runFatigue(cmd *cobra.Command, args []string) error {
	day, err := parseDay(fatigueDay)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	metrics, err := svc.Fatigue(day)
	if err != nil {
		return err
	}
	return printJSON(metrics)
}
