package cmd

import (
	"github.com/spf13/cobra"
)

var (
	redFlagsStart string
	redFlagsEnd   string
)

var redFlagsCmd = &cobra.Command{
	Use:   "redflags",
	Short: "Report workload alerts over a date range",
	RunE:  runRedFlags,
}

func init() {
	redFlagsCmd.Flags().StringVar(&redFlagsStart, "start", "", "range start (YYYY-MM-DD)")
	redFlagsCmd.Flags().StringVar(&redFlagsEnd, "end", "", "range end (YYYY-MM-DD, default today)")
	_ = redFlagsCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(redFlagsCmd)
}

func runRedFlags(cmd *cobra.Command, args []string) error {
	start, err := parseDay(redFlagsStart)
	if err != nil {
		return err
	}
	end, err := parseDay(redFlagsEnd)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	rep, err := svc.RedFlags(start, end)
	if err != nil {
		return err
	}
	return printJSON(rep)
}
