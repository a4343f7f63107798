package loader

import (
	"context"
	"fmt"
	"os"
	"strings"
)

func (l *Loader) loadImage(ctx context.Context, path string) ([]Document, error) {
	if l.describer == nil {
		return nil, fmt.Errorf("image describer not configured")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file failed: %w", err)
	}

	description, err := l.describer.DescribeImage(ctx, path, raw)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("empty image description for %s", path)
	}

	return []Document{{Content: description, Source: path}}, nil
}
