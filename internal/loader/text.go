package loader

import (
	"context"
	"fmt"
	"os"
	"strings"
)

func (l *Loader) loadText(ctx context.Context, path string) ([]Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file failed: %w", err)
	}
	content := strings.TrimSpace(string(raw))
	if content == "" {
		return nil, fmt.Errorf("text file is empty: %s", path)
	}
	return []Document{{Content: content, Source: path}}, nil
}
