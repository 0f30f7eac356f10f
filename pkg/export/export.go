package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/kennelops/kennelplan/core/model"
)

const dayLayout = "2006-01-02"

// WriteWideCSV writes workload history to w as one row per dog with one
// column per day between start and end inclusive. Multiple records for the
// same dog and day are summed, days without a record are written as 0.
func WriteWideCSV(w io.Writer, records []model.WorkloadRecord, start, end time.Time) error {
	start = model.Day(start)
	end = model.Day(end)

	totals := make(map[string]map[string]float64)
	for _, rec := range records {
		day := model.Day(rec.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		key := day.Format(dayLayout)
		if totals[rec.Dog] == nil {
			totals[rec.Dog] = make(map[string]float64)
		}
		totals[rec.Dog][key] += rec.DistanceKm
	}

	dogs := make([]string, 0, len(totals))
	for name := range totals {
		dogs = append(dogs, name)
	}
	sort.Strings(dogs)

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dayLayout))
	}

	cw := csv.NewWriter(w)
	header := append([]string{"dog_name"}, days...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, dog := range dogs {
		row := make([]string, 0, len(header))
		row = append(row, dog)
		for _, day := range days {
			row = append(row, strconv.FormatFloat(totals[dog][day], 'f', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBatchJSON writes a batch allocation result to w in JSON format.
func WriteBatchJSON(w io.Writer, res model.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteBatchCSV writes a batch allocation result to w as one row per
// assigned dog with its team index and position.
func WriteBatchCSV(w io.Writer, res model.BatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "team", "position", "dog"}); err != nil {
		return err
	}
	write := func(team int, position string, dogs []string) error {
		for _, dog := range dogs {
			if dog == "" {
				continue
			}
			rec := []string{res.RunID, strconv.Itoa(team), position, dog}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}
	for i, team := range res.Teams {
		if err := write(i+1, "lead", team.Assignment.Lead); err != nil {
			return err
		}
		if err := write(i+1, "team", team.Assignment.Team); err != nil {
			return err
		}
		if err := write(i+1, "wheel", team.Assignment.Wheel); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
