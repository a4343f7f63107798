package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func createTestLoader() *Loader {
	return New(arbor.NewLogger(), nil)
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"report.pdf":    FormatPDF,
		"REPORT.PDF":    FormatPDF,
		"notes.docx":    FormatWord,
		"plain.txt":     FormatText,
		"deck.pptx":     FormatSlides,
		"deck.ppt":      FormatSlides,
		"readme.md":     FormatMarkdown,
		"readme.MD":     FormatMarkdown,
		"data.xlsx":     FormatSpreadsheet,
		"data.csv":      FormatCSV,
		"photo.png":     FormatImage,
		"photo.JPG":     FormatImage,
		"page.html":     FormatHTML,
		"page.htm":      FormatHTML,
		"store.db":      FormatDatabase,
		"store.sqlite":  FormatDatabase,
		"archive.zip":   FormatUnknown,
		"noextension":   FormatUnknown,
		"weird.docx.gz": FormatUnknown,
	}
	for path, want := range cases {
		assert.Equal(t, want, FormatFromPath(path), "path %s", path)
	}
}

func TestLoadAll_TextFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "hello.txt", "Hello World\n")

	docs, err := createTestLoader().LoadAll(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Hello World", docs[0].Content)
	assert.Equal(t, path, docs[0].Source)
}

func TestLoadAll_SkipsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	txtPath := writeTestFile(t, dir, "ok.txt", "content")
	zipPath := writeTestFile(t, dir, "skip.zip", "binary junk")

	docs, err := createTestLoader().LoadAll(context.Background(), []string{zipPath, txtPath})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "content", docs[0].Content)
}

func TestLoadAll_AllFilesFailing(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist.txt")

	docs, err := createTestLoader().LoadAll(context.Background(), []string{missing})
	assert.Nil(t, docs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoDocumentsLoaded)
}

func TestLoadAll_PartialFailureStillLoads(t *testing.T) {
	dir := t.TempDir()
	good := writeTestFile(t, dir, "good.txt", "still here")
	bad := filepath.Join(dir, "missing.txt")

	docs, err := createTestLoader().LoadAll(context.Background(), []string{bad, good})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "still here", docs[0].Content)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := createTestLoader().LoadFile(context.Background(), "data.xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "people.csv", "name,age\nalice,30\nbob,41\n")

	docs, err := createTestLoader().LoadAll(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "name: alice\nage: 30", docs[0].Content)
	assert.Equal(t, "1", docs[0].Metadata["row"])
	assert.Equal(t, "name: bob\nage: 41", docs[1].Content)
}

func TestLoadHTML_StripsScriptAndStyle(t *testing.T) {
	dir := t.TempDir()
	page := `<html><head><style>body { color: red; }</style></head>` +
		`<body><script>alert("x")</script><h1>Title</h1><p>Body text</p></body></html>`
	path := writeTestFile(t, dir, "page.html", page)

	docs, err := createTestLoader().LoadAll(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "Title")
	assert.Contains(t, docs[0].Content, "Body text")
	assert.NotContains(t, docs[0].Content, "alert")
	assert.NotContains(t, docs[0].Content, "color: red")
}

func TestLoadMarkdown(t *testing.T) {
	dir := t.TempDir()
	md := "# Heading\n\nSome paragraph text.\n\n```\ncode line\n```\n"
	path := writeTestFile(t, dir, "readme.md", md)

	docs, err := createTestLoader().LoadAll(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "Heading")
	assert.Contains(t, docs[0].Content, "Some paragraph text.")
	assert.Contains(t, docs[0].Content, "code line")
	assert.NotContains(t, docs[0].Content, "#")
	assert.NotContains(t, docs[0].Content, "```")
}

func TestLoadText_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "empty.txt", "   \n  \n")

	_, err := createTestLoader().LoadFile(context.Background(), path)
	require.Error(t, err)
}

func TestLoadImage_WithoutDescriber(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "pic.png", "not really a png")

	_, err := createTestLoader().LoadFile(context.Background(), path)
	require.Error(t, err)
}

type stubDescriber struct {
	description string
}

func (s *stubDescriber) DescribeImage(ctx context.Context, name string, data []byte) (string, error) {
	return s.description, nil
}

func TestLoadImage_WithDescriber(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "pic.png", "fake image bytes")

	l := New(arbor.NewLogger(), &stubDescriber{description: "a cat on a sofa"})
	docs, err := l.LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a cat on a sofa", docs[0].Content)
	assert.Equal(t, path, docs[0].Source)
}

func TestSourceLabel_Fallback(t *testing.T) {
	assert.Equal(t, "unknown", Document{Content: "x"}.SourceLabel())
	assert.Equal(t, "a.txt", Document{Content: "x", Source: "a.txt"}.SourceLabel())
}
