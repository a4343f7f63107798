package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

func (l *Loader) loadPDF(ctx context.Context, path string) ([]Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf file failed: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open pdf failed: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text failed: %w", err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return nil, fmt.Errorf("read pdf text failed: %w", err)
	}

	content := strings.TrimSpace(string(text))
	if content == "" {
		return nil, fmt.Errorf("pdf has no extractable text: %s", path)
	}

	return []Document{{
		Content:  content,
		Source:   path,
		Metadata: map[string]string{"pages": fmt.Sprintf("%d", reader.NumPage())},
	}}, nil
}
