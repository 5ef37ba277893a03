// Package exporters renders query results from the destination database
// into downstream formats.
package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Dianaaleja/poke-pipeline/internal/database"
)

// CSVExporter writes per-type pokemon counts as CSV
type CSVExporter struct {
	db *database.Database
}

func NewCSVExporter(db *database.Database) *CSVExporter {
	return &CSVExporter{db: db}
}

// ExportTypeCounts queries the per-type counts and writes them to w with a
// header row, most populous type first.
func (e *CSVExporter) ExportTypeCounts(w io.Writer) error {
	counts, err := e.db.TypeCounts()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Type", "Count"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, c := range counts {
		if err := cw.Write([]string{c.Type, strconv.Itoa(c.Count)}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
