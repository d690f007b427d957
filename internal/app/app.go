package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jgivc/challtable/internal/adapter/fsadapter"
	"github.com/jgivc/challtable/internal/adapter/mdadapter"
	"github.com/jgivc/challtable/internal/config"
	"github.com/jgivc/challtable/internal/service/report"
	"github.com/jgivc/challtable/internal/storage/walk"
	"github.com/spf13/afero"
)

type App struct {
	cfg  *config.Config
	fs   afero.Fs
	logW io.Writer
	log  *slog.Logger
}

func New(cfg *config.Config, fs afero.Fs, logW io.Writer) *App {
	return &App{
		cfg:  cfg,
		fs:   fs,
		logW: logW,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log = newLogger(a.cfg.LogLevel, a.logW).With(slog.String("run_id", uuid.NewString()))

	schema, err := mdadapter.SchemaByName(a.cfg.ReportConfig.Schema)
	if err != nil {
		return fmt.Errorf("cannot get schema: %w", err)
	}

	style, err := mdadapter.ParseStyle(a.cfg.ReportConfig.TestedStyle)
	if err != nil {
		return fmt.Errorf("cannot get tested style: %w", err)
	}

	opts := report.Options{
		Schema:   schema,
		Style:    style,
		FileName: a.cfg.ReportConfig.OutputFileName,
	}
	if a.cfg.ReportConfig.HTML {
		opts.HTML = mdadapter.NewHTMLRenderer()
	}

	store := walk.NewWalkStorage(a.fs, a.log)
	fsa := fsadapter.NewFSAdapterWithFS(a.fs, a.cfg.FSAdapterConfig(), a.log)
	srv := report.NewReportService(a.fs, store, fsa, opts, a.log)

	a.log.Debug("Start scan",
		slog.String("dir", a.cfg.ReportConfig.DirPath),
		slog.String("schema", schema.Name),
		slog.String("style", style.String()),
	)

	stats, err := srv.Generate(ctx, a.cfg.ReportConfig.DirPath, a.cfg.ReportConfig.OutputPath)
	if err != nil {
		return err
	}

	a.log.Info("Report written",
		slog.String("file", stats.Output),
		slog.Int("rows", stats.Rows),
		slog.Int("scanned", stats.Scanned),
		slog.Int("skipped", stats.Skipped),
	)

	if stats.HTML != "" {
		a.log.Info("HTML preview written", slog.String("file", stats.HTML))
	}

	return nil
}

// ReportFile is the path of the report Run writes.
func (a *App) ReportFile() string {
	name := a.cfg.ReportConfig.OutputFileName
	if name == "" {
		if schema, err := mdadapter.SchemaByName(a.cfg.ReportConfig.Schema); err == nil {
			name = schema.FileName
		}
	}

	return filepath.Join(a.cfg.ReportConfig.OutputPath, name)
}

func newLogger(level string, w io.Writer) *slog.Logger {
	lo := &slog.HandlerOptions{}
	switch level {
	case config.LogLevelDebug:
		lo.Level = slog.LevelDebug
	case config.LogLevelWarn:
		lo.Level = slog.LevelWarn
	case config.LogLevelError:
		lo.Level = slog.LevelError
	default:
		lo.Level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, lo))
}
