package loader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// loadHTML returns the visible text of the page, script and style elements
// removed, lines joined by newlines and trimmed.
func (l *Loader) loadHTML(ctx context.Context, path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open html file failed: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse html failed: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	content := strings.Join(lines, "\n")
	if content == "" {
		return nil, fmt.Errorf("html has no visible text: %s", path)
	}
	return []Document{{Content: content, Source: path}}, nil
}
