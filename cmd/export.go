package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kennelops/kennelplan/pkg/export"
)

var (
	exportStart string
	exportEnd   string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export workload history as a wide CSV (one column per day)",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportStart, "start", "", "range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportEnd, "end", "", "range end (YYYY-MM-DD, default today)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	_ = exportCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	start, err := parseDay(exportStart)
	if err != nil {
		return err
	}
	end, err := parseDay(exportEnd)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end %s is before start %s", exportEnd, exportStart)
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	records, err := svc.Store().Workload(start, end)
	if err != nil {
		return err
	}

	w := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return export.WriteWideCSV(w, records, start, end)
}
