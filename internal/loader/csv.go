package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// loadCSV yields one Document per data row, the header row naming each field.
func (l *Loader) loadCSV(ctx context.Context, path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file failed: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv failed: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty: %s", path)
	}

	header := records[0]
	docs := make([]Document, 0, len(records)-1)
	for rowIdx, record := range records[1:] {
		var sb strings.Builder
		for i, value := range record {
			name := fmt.Sprintf("column_%d", i)
			if i < len(header) {
				name = header[i]
			}
			sb.WriteString(name)
			sb.WriteString(": ")
			sb.WriteString(value)
			sb.WriteString("\n")
		}
		docs = append(docs, Document{
			Content:  strings.TrimSpace(sb.String()),
			Source:   path,
			Metadata: map[string]string{"row": fmt.Sprintf("%d", rowIdx+1)},
		})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("csv has no data rows: %s", path)
	}
	return docs, nil
}
