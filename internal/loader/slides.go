package loader

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// loadSlides extracts visible text from a pptx archive: each ppt/slides/*.xml
// is scanned for DrawingML <a:t> runs, paragraphs separated by newlines.
// Legacy binary .ppt files are not a zip archive and fail here.
func (l *Loader) loadSlides(ctx context.Context, path string) ([]Document, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open slides archive failed: %w", err)
	}
	defer archive.Close()

	var slideFiles []*zip.File
	for _, f := range archive.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slideFiles = append(slideFiles, f)
		}
	}
	// Names are slide1.xml, slide2.xml, ...; lexicographic order would put
	// slide10 before slide2, so sort on the numeric suffix.
	sort.Slice(slideFiles, func(i, j int) bool {
		return slideNumber(slideFiles[i].Name) < slideNumber(slideFiles[j].Name)
	})
	if len(slideFiles) == 0 {
		return nil, fmt.Errorf("no slides found in %s", path)
	}

	var slides []string
	for _, f := range slideFiles {
		text, err := extractSlideText(f)
		if err != nil {
			return nil, fmt.Errorf("extract slide %q failed: %w", f.Name, err)
		}
		if text != "" {
			slides = append(slides, text)
		}
	}

	content := strings.TrimSpace(strings.Join(slides, "\n\n"))
	if content == "" {
		return nil, fmt.Errorf("slides have no text: %s", path)
	}

	return []Document{{
		Content:  content,
		Source:   path,
		Metadata: map[string]string{"slides": fmt.Sprintf("%d", len(slideFiles))},
	}}, nil
}

func slideNumber(name string) int {
	base := strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml")
	n, err := strconv.Atoi(base)
	if err != nil {
		return 0
	}
	return n
}

func extractSlideText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
