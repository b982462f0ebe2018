package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"wikihistories/internal/domain"
	"wikihistories/internal/ports"
)

// Columns is the fixed column set of every tabular output, one column per
// Revision attribute, in record-field order.
var Columns = []string{
	"index", "title", "timestamp", "revid", "minor", "user", "comment", "stage", "text",
}

// Rows flattens assembled records into string cells, one row per record,
// preserving record order. Hidden users and absent text render as empty
// cells.
func Rows(revisions []domain.Revision) [][]string {
	rows := make([][]string, len(revisions))
	for i, rev := range revisions {
		user := ""
		if rev.User != nil {
			user = *rev.User
		}
		text := ""
		if rev.Text != nil {
			text = *rev.Text
		}
		rows[i] = []string{
			strconv.Itoa(rev.Index),
			rev.Title,
			rev.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatInt(rev.RevID, 10),
			strconv.FormatBool(rev.Minor),
			user,
			rev.Comment,
			rev.Stage,
			text,
		}
	}
	return rows
}

// TableExporter renders an aligned plain-text table. Column widths are
// display widths, so wide characters in titles and comments keep the
// columns straight.
type TableExporter struct{}

var _ ports.Exporter = (*TableExporter)(nil)

// NewTableExporter builds the text-table exporter.
func NewTableExporter() *TableExporter {
	return &TableExporter{}
}

// Name identifies the format inside the registry.
func (e *TableExporter) Name() string {
	return "table"
}

// Export writes the header and one aligned row per record.
func (e *TableExporter) Export(w io.Writer, revisions []domain.Revision) error {
	rows := append([][]string{Columns}, Rows(revisions)...)

	widths := make([]int, len(Columns))
	for _, row := range rows {
		for col, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[col] {
				widths[col] = width
			}
		}
	}

	for _, row := range rows {
		var sb strings.Builder
		for col, cell := range row {
			if col > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(runewidth.FillRight(cell, widths[col]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return nil
}
