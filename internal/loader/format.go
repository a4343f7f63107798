package loader

import (
	"path/filepath"
	"strings"
)

// Format is the closed set of input formats the dispatcher routes on.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatWord
	FormatText
	FormatSlides
	FormatMarkdown
	FormatSpreadsheet
	FormatCSV
	FormatImage
	FormatHTML
	FormatDatabase
)

var formatNames = map[Format]string{
	FormatUnknown:     "unknown",
	FormatPDF:         "pdf",
	FormatWord:        "word",
	FormatText:        "text",
	FormatSlides:      "slides",
	FormatMarkdown:    "markdown",
	FormatSpreadsheet: "spreadsheet",
	FormatCSV:         "csv",
	FormatImage:       "image",
	FormatHTML:        "html",
	FormatDatabase:    "database",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// FormatFromPath resolves the format from the file extension, case-insensitive.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatWord
	case ".txt":
		return FormatText
	case ".ppt", ".pptx":
		return FormatSlides
	case ".md", ".markdown":
		return FormatMarkdown
	case ".xlsx":
		return FormatSpreadsheet
	case ".csv":
		return FormatCSV
	case ".png", ".jpg", ".jpeg":
		return FormatImage
	case ".html", ".htm":
		return FormatHTML
	case ".db", ".sqlite":
		return FormatDatabase
	default:
		return FormatUnknown
	}
}
