package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// loadSpreadsheet yields one Document per sheet, rows rendered as
// comma-separated cell values.
func (l *Loader) loadSpreadsheet(ctx context.Context, path string) ([]Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet failed: %w", err)
	}
	defer f.Close()

	var docs []Document
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q failed: %w", sheet, err)
		}

		var sb strings.Builder
		sb.WriteString("Sheet: ")
		sb.WriteString(sheet)
		sb.WriteString("\n")
		for _, row := range rows {
			sb.WriteString(strings.Join(row, ", "))
			sb.WriteString("\n")
		}

		docs = append(docs, Document{
			Content:  strings.TrimSpace(sb.String()),
			Source:   path + "#" + sheet,
			Metadata: map[string]string{"sheet": sheet},
		})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets: %s", path)
	}
	return docs, nil
}
