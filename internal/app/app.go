package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"wikihistories/internal/config"
	"wikihistories/internal/domain"
	"wikihistories/internal/export"
	"wikihistories/internal/history"
	"wikihistories/internal/logging"
	"wikihistories/internal/wiki"
)

// Application wires configs to the assembler and export adapters.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	assembler *history.Assembler
	registry  *export.Registry
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	httpClient := &http.Client{Timeout: cfg.Wiki.Timeout()}

	client, err := wiki.NewClient(cfg.Wiki.Domain, httpClient, baseLogger.With("component", "wiki"))
	if err != nil {
		return nil, fmt.Errorf("build wiki client: %w", err)
	}
	client.SetUserAgent(cfg.Wiki.UserAgent)

	renderer, err := wiki.NewRenderer(cfg.Wiki.Domain, httpClient)
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}
	renderer.SetUserAgent(cfg.Wiki.UserAgent)

	assembler := history.NewAssembler(history.AssemblerDeps{
		Source:   client,
		Renderer: renderer,
		Logger:   baseLogger.With("component", "assembler"),
	})

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		assembler: assembler,
		registry:  export.NewRegistry(),
	}, nil
}

// Run fetches and exports the history of every configured title.
func (a *Application) Run(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if lang := domain.LangCode(a.cfg.Wiki.Domain); lang != "" {
		a.logger.Info("target wiki", "domain", a.cfg.Wiki.Domain, "lang", lang)
	} else {
		a.logger.Warn("domain is not a recognized wikipedia host", "domain", a.cfg.Wiki.Domain)
	}

	exporter, err := a.registry.Resolve(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	out, closeOut, err := a.openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	opts := history.Options{
		IncludeText:        a.cfg.Fetch.IncludeText,
		IncludeTalkContent: a.cfg.Fetch.IncludeTalkContent,
		Concurrency:        a.cfg.Fetch.Concurrency,
	}

	for _, title := range a.cfg.Titles {
		revisions, err := a.assembler.History(ctx, title, opts)
		if err != nil {
			return fmt.Errorf("history of %q: %w", title, err)
		}
		a.logger.Info("history assembled", "title", title, "revisions", len(revisions))

		if err := exporter.Export(out, revisions); err != nil {
			return fmt.Errorf("export %q: %w", title, err)
		}
	}

	return nil
}

func (a *Application) openOutput() (io.Writer, func(), error) {
	if a.cfg.Output.Path == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(a.cfg.Output.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", a.cfg.Output.Path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
