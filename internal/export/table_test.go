package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"wikihistories/internal/domain"
)

func sample() []domain.Revision {
	alice := "Alice"
	text := "text"
	return []domain.Revision{
		{
			Index:     0,
			Title:     "Test",
			Timestamp: time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
			RevID:     123,
			Minor:     false,
			User:      &alice,
			Comment:   "comment",
			Stage:     domain.StageNA,
			Text:      &text,
		},
		{
			Index:     1,
			Title:     "Test",
			Timestamp: time.Date(2021, time.January, 2, 0, 0, 0, 0, time.UTC),
			RevID:     124,
			Minor:     true,
			Stage:     "Stub",
		},
	}
}

func TestRows(t *testing.T) {
	t.Parallel()

	rows := Rows(sample())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(Columns) {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), len(Columns))
		}
	}

	if rows[0][1] != "Test" || rows[0][5] != "Alice" || rows[0][8] != "text" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	// Hidden user and absent text become empty cells.
	if rows[1][5] != "" || rows[1][8] != "" {
		t.Fatalf("unexpected second row: %v", rows[1])
	}
	if rows[1][4] != "true" {
		t.Fatalf("unexpected minor cell: %q", rows[1][4])
	}
}

func TestCSVExporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewCSVExporter().Export(&buf, sample()); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv back: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(Columns, ",") {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][3] != "123" || records[2][3] != "124" {
		t.Fatalf("row order not preserved: %v, %v", records[1], records[2])
	}
}

func TestTableExporterAlignsColumns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewTableExporter().Export(&buf, sample()); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "index") {
		t.Fatalf("unexpected header line: %q", lines[0])
	}

	// Every line starts its title cell at the same offset.
	if strings.Index(lines[1], "Test") != strings.Index(lines[2], "Test") {
		t.Fatalf("title column not aligned:\n%s\n%s", lines[1], lines[2])
	}
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	for _, name := range []string{"csv", "table"} {
		exporter, err := reg.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", name, err)
		}
		if exporter.Name() != name {
			t.Fatalf("Resolve(%q) returned %q", name, exporter.Name())
		}
	}

	if _, err := reg.Resolve("parquet"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
