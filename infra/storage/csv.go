package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kennelops/kennelplan/core/model"
)

// ImportResult summarises one CSV import.
type ImportResult struct {
	DogsSeen     int
	RowsInserted int
	RowsSkipped  int
}

// ImportWideCSV ingests a wide month sheet exported from the kennel
// spreadsheet:
//
//	dog_name,2026-01-01,2026-01-02,...
//	Balto,12.5,,18
//
// Date columns are headers in YYYY-MM-DD form and cell values are daily
// kilometres. Empty cells are skipped; duplicate (dog, day, source) entries
// already in the store are counted as skipped.
func (s *Store) ImportWideCSV(path, source string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return ImportResult{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return ImportResult{}, nil
	}

	header := rows[0]
	if len(header) == 0 || strings.TrimSpace(header[0]) != "dog_name" {
		return ImportResult{}, fmt.Errorf("first column header must be dog_name")
	}
	dates := make([]time.Time, len(header))
	for i := 1; i < len(header); i++ {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(header[i]))
		if err != nil {
			return ImportResult{}, fmt.Errorf("column %d: bad date header %q: %w", i, header[i], err)
		}
		dates[i] = d
	}

	var res ImportResult
	for line, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		dog := strings.TrimSpace(row[0])
		if dog == "" {
			continue
		}
		res.DogsSeen++
		for i := 1; i < len(row) && i < len(header); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			km, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return res, fmt.Errorf("row %d column %d: bad distance %q: %w", line+2, i+1, cell, err)
			}
			inserted, err := s.AddWorkload(model.WorkloadRecord{Dog: dog, Date: dates[i], DistanceKm: km}, source)
			if err != nil {
				return res, fmt.Errorf("row %d: %w", line+2, err)
			}
			if inserted {
				res.RowsInserted++
			} else {
				res.RowsSkipped++
			}
		}
	}
	return res, nil
}
