package ports

import (
	"context"
	"io"

	"wikihistories/internal/domain"
)

// RevisionSource enumerates the revision history of a wiki page. Records
// come back in the order the site returns them (newest first with the
// client in this repository) and keep their raw, loosely-shaped form; the
// assembler normalizes them exactly once.
type RevisionSource interface {
	Revisions(ctx context.Context, title string, withContent bool) ([]domain.Metadata, error)
}

// TextRenderer fetches the rendered plain text of a single revision.
// A nil result with a nil error means the revision is deleted or otherwise
// inaccessible, which is not a failure.
type TextRenderer interface {
	RenderedText(ctx context.Context, revID int64) (*string, error)
}

// Exporter writes an assembled history in one concrete output format.
type Exporter interface {
	Name() string
	Export(w io.Writer, revisions []domain.Revision) error
}
