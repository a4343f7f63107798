package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
)

var ErrNoDocumentsLoaded = errors.New("no documents loaded")

// ImageDescriber turns raw image bytes into a free-text description.
// The multimodal client binds its model settings at construction.
type ImageDescriber interface {
	DescribeImage(ctx context.Context, name string, data []byte) (string, error)
}

type loadFunc func(ctx context.Context, path string) ([]Document, error)

// Loader dispatches file paths to format-specific extractors and normalizes
// their output into Document units.
type Loader struct {
	logger    arbor.ILogger
	describer ImageDescriber
	table     map[Format]loadFunc
}

func New(logger arbor.ILogger, describer ImageDescriber) *Loader {
	l := &Loader{
		logger:    logger,
		describer: describer,
	}
	l.table = map[Format]loadFunc{
		FormatPDF:         l.loadPDF,
		FormatWord:        l.loadWord,
		FormatText:        l.loadText,
		FormatSlides:      l.loadSlides,
		FormatMarkdown:    l.loadMarkdown,
		FormatSpreadsheet: l.loadSpreadsheet,
		FormatCSV:         l.loadCSV,
		FormatImage:       l.loadImage,
		FormatHTML:        l.loadHTML,
		FormatDatabase:    l.loadDatabase,
	}
	return l
}

// LoadAll loads every path in order. Unsupported extensions are skipped with a
// warning. A failing loader skips that file rather than aborting the batch;
// the batch errors only when nothing loaded and at least one loader failed.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]Document, error) {
	var (
		docs     []Document
		failures int
		lastErr  error
	)
	for _, path := range paths {
		format := FormatFromPath(path)
		if format == FormatUnknown {
			l.logger.Warn().Str("path", path).Msg("Unsupported extension skipped")
			continue
		}
		loaded, err := l.table[format](ctx, path)
		if err != nil {
			l.logger.Error().Err(err).Str("path", path).Str("format", format.String()).Msg("Loading file failed")
			failures++
			lastErr = err
			continue
		}
		docs = append(docs, loaded...)
	}
	if len(docs) == 0 && failures > 0 {
		return nil, fmt.Errorf("%w: %d file(s) failed, last error: %v", ErrNoDocumentsLoaded, failures, lastErr)
	}
	l.logger.Info().Int("count", len(docs)).Msg("Documents loaded")
	return docs, nil
}

// LoadFile loads a single path; an unsupported extension is an error here
// since the caller asked for this exact file.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]Document, error) {
	format := FormatFromPath(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unsupported file format: %s", path)
	}
	return l.table[format](ctx, path)
}
