package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"wikihistories/internal/domain"
	"wikihistories/internal/ports"
)

// CSVExporter writes the fixed-column table as CSV with a header row.
type CSVExporter struct{}

var _ ports.Exporter = (*CSVExporter)(nil)

// NewCSVExporter builds the CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Name identifies the format inside the registry.
func (e *CSVExporter) Name() string {
	return "csv"
}

// Export writes the header and one row per record, in record order.
func (e *CSVExporter) Export(w io.Writer, revisions []domain.Revision) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range Rows(revisions) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
