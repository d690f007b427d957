package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jgivc/challtable/internal/adapter/mdadapter"
	"github.com/jgivc/challtable/internal/common"
	"github.com/jgivc/challtable/internal/entity"
	"github.com/spf13/afero"
)

const (
	serviceName = "report"
	htmlExt     = ".html"
)

type ChallengeStorage interface {
	Scan(root string) iter.Seq[string]
}

type RecordAdapter interface {
	ToRecord(folderPath string) (entity.Record, error)
}

type HTMLRenderer interface {
	Convert(title string, src []byte, w io.Writer) error
}

type Options struct {
	Schema   *mdadapter.Schema
	Style    mdadapter.Style
	FileName string       // Empty means Schema.FileName
	HTML     HTMLRenderer // Nil disables the HTML preview
}

// Stats describes one Generate run.
type Stats struct {
	Scanned int
	Rows    int
	Skipped int
	Output  string
	HTML    string
}

type ReportService struct {
	fs      afero.Fs
	store   ChallengeStorage
	adapter RecordAdapter
	opts    Options
	log     *slog.Logger
}

func NewReportService(fs afero.Fs, store ChallengeStorage, adapter RecordAdapter, opts Options, log *slog.Logger) *ReportService {
	if opts.FileName == "" {
		opts.FileName = opts.Schema.FileName
	}

	return &ReportService{
		fs:      fs,
		store:   store,
		adapter: adapter,
		opts:    opts,
		log:     log.With(slog.String("service", serviceName)),
	}
}

// FileName is the name of the report file written into the output directory.
func (s *ReportService) FileName() string {
	return s.opts.FileName
}

// Generate writes the report for every challenge under root into outDir.
// The file is truncated first; a failed write leaves a partial file behind.
func (s *ReportService) Generate(ctx context.Context, root, outDir string) (*Stats, error) {
	fileName := filepath.Join(outDir, s.opts.FileName)

	f, err := s.fs.Create(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot create %s: %w", common.ErrIO, fileName, err)
	}

	stats, err := s.write(ctx, f, root)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: cannot close %s: %w", common.ErrIO, fileName, cerr)
	}

	if err != nil {
		s.log.Debug("Cannot write report", slog.String("file", fileName), slog.Any("error", err))

		return nil, err
	}

	stats.Output = fileName

	if s.opts.HTML != nil {
		htmlFileName, err := s.writeHTML(fileName)
		if err != nil {
			s.log.Debug("Cannot write html preview", slog.String("file", fileName), slog.Any("error", err))

			return nil, err
		}

		stats.HTML = htmlFileName
	}

	return stats, nil
}

func (s *ReportService) write(ctx context.Context, w io.Writer, root string) (*Stats, error) {
	bw := bufio.NewWriter(w)
	stats := &Stats{}

	if _, err := bw.WriteString(mdadapter.Header(s.opts.Schema)); err != nil {
		return nil, fmt.Errorf("%w: cannot write header: %w", common.ErrIO, err)
	}

	for path := range s.store.Scan(root) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stats.Scanned++

		record, err := s.adapter.ToRecord(path)
		if err != nil {
			s.log.Debug("Skip entry", slog.String("path", path), slog.Any("error", err))
			stats.Skipped++

			continue
		}

		if _, err := bw.WriteString(mdadapter.Row(s.opts.Schema, &record, s.opts.Style)); err != nil {
			return nil, fmt.Errorf("%w: cannot write row for %s: %w", common.ErrIO, path, err)
		}

		stats.Rows++
	}

	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("%w: cannot flush report: %w", common.ErrIO, err)
	}

	return stats, nil
}

func (s *ReportService) writeHTML(mdFileName string) (string, error) {
	src, err := afero.ReadFile(s.fs, mdFileName)
	if err != nil {
		return "", fmt.Errorf("%w: cannot read %s: %w", common.ErrIO, mdFileName, err)
	}

	htmlFileName := strings.TrimSuffix(mdFileName, filepath.Ext(mdFileName)) + htmlExt

	f, err := s.fs.Create(htmlFileName)
	if err != nil {
		return "", fmt.Errorf("%w: cannot create %s: %w", common.ErrIO, htmlFileName, err)
	}

	bw := bufio.NewWriter(f)
	err = s.opts.HTML.Convert(s.opts.FileName, src, bw)
	if err == nil {
		err = bw.Flush()
	}

	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}

	if err != nil {
		return "", fmt.Errorf("%w: cannot write %s: %w", common.ErrIO, htmlFileName, err)
	}

	return htmlFileName, nil
}
