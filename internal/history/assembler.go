package history

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"wikihistories/internal/domain"
	"wikihistories/internal/ports"
	"wikihistories/internal/wiki"
)

const defaultConcurrency = 4

// Options selects what each assembled record carries beyond metadata.
type Options struct {
	// IncludeText fetches the rendered plain text of every revision
	// through the renderer, one network call per revision.
	IncludeText bool
	// IncludeTalkContent embeds the raw wikitext delivered alongside the
	// revision metadata instead of a live text fetch.
	IncludeTalkContent bool
	// Concurrency bounds the simultaneous text fetches when IncludeText
	// is set. Zero means the default.
	Concurrency int
}

// AssemblerDeps wires the driven adapters into the assembler.
type AssemblerDeps struct {
	Source   ports.RevisionSource
	Renderer ports.TextRenderer
	Logger   *slog.Logger
}

// Assembler composes the revision history of one article and its talk
// page into ordered Revision records.
type Assembler struct {
	source   ports.RevisionSource
	renderer ports.TextRenderer
	logger   *slog.Logger
}

// NewAssembler constructs the orchestration component.
func NewAssembler(deps AssemblerDeps) *Assembler {
	return &Assembler{
		source:   deps.Source,
		renderer: deps.Renderer,
		logger:   deps.Logger,
	}
}

// History fetches all revisions of the article and of "Talk:<title>",
// normalizes each metadata record, classifies its talk-page stage, and
// returns one record per article revision in the order the site returned
// them (index equals position). Connection-level faults surface as errors
// matching wiki.ErrConnection and are terminal; no partial history is
// returned.
func (a *Assembler) History(ctx context.Context, title string, opts Options) ([]domain.Revision, error) {
	if a.source == nil {
		return nil, fmt.Errorf("revision source is not configured")
	}

	records, err := a.source.Revisions(ctx, title, opts.IncludeTalkContent)
	if err != nil {
		return nil, fmt.Errorf("fetch %q revisions: %w", title, err)
	}

	// Talk content is always requested: stage labels live in the talk
	// page's banner template.
	talkRecords, err := a.source.Revisions(ctx, "Talk:"+title, true)
	if err != nil {
		return nil, fmt.Errorf("fetch %q talk revisions: %w", title, err)
	}

	talk, err := talkTimeline(talkRecords)
	if err != nil {
		return nil, err
	}

	a.debug("history fetched", "title", title,
		"revisions", len(records), "talk_revisions", len(talkRecords))

	users := wiki.Users(records)
	minors := wiki.MinorFlags(records)
	comments := wiki.Comments(records)

	texts := make([]*string, len(records))
	switch {
	case opts.IncludeText && a.renderer != nil:
		if err := a.fetchTexts(ctx, records, texts, opts.Concurrency); err != nil {
			return nil, err
		}
	case opts.IncludeTalkContent:
		for i, rec := range records {
			texts[i] = wiki.Content(rec)
		}
	}

	revisions := make([]domain.Revision, len(records))
	for i, rec := range records {
		ts, err := wiki.Timestamp(rec)
		if err != nil {
			return nil, err
		}
		revisions[i] = domain.Revision{
			Index:     i,
			Title:     title,
			Timestamp: ts,
			RevID:     wiki.RevID(rec),
			Minor:     minors[i],
			User:      users[i],
			Comment:   comments[i],
			Stage:     StageAt(talk, ts),
			Text:      texts[i],
		}
	}

	return revisions, nil
}

// fetchTexts renders every revision's text with bounded concurrency.
// Results are written back by index, so record order never depends on
// fetch completion order. The first transport fault cancels the rest.
func (a *Assembler) fetchTexts(ctx context.Context, records []domain.Metadata, texts []*string, concurrency int) error {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	grp, grpctx := errgroup.WithContext(ctx)
	grp.SetLimit(concurrency)

	for i, rec := range records {
		i, rec := i, rec
		grp.Go(func() error {
			text, err := a.renderer.RenderedText(grpctx, wiki.RevID(rec))
			if err != nil {
				return fmt.Errorf("render revision %d: %w", wiki.RevID(rec), err)
			}
			texts[i] = text
			return nil
		})
	}

	return grp.Wait()
}

// talkTimeline reduces raw talk records to a chronological stage timeline.
func talkTimeline(records []domain.Metadata) ([]TalkRevision, error) {
	talk := make([]TalkRevision, 0, len(records))
	for _, rec := range records {
		ts, err := wiki.Timestamp(rec)
		if err != nil {
			return nil, fmt.Errorf("talk %w", err)
		}
		stage := domain.StageNA
		if content := wiki.Content(rec); content != nil {
			stage = StageFromContent(*content)
		}
		talk = append(talk, TalkRevision{Timestamp: ts, Stage: stage})
	}
	sortChronological(talk)
	return talk, nil
}

func (a *Assembler) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
