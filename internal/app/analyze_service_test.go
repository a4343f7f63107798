package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"docportal/internal/loader"
)

func newTestAnalyzeService(completer Completer) *AnalyzeService {
	logger := arbor.NewLogger()
	return NewAnalyzeService(loader.New(logger, nil), completer, logger)
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("Quarterly revenue grew 12 percent."), 0o644))

	completer := &fakeCompleter{answer: "  Revenue grew by 12%.  "}
	result, err := newTestAnalyzeService(completer).Analyze(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Revenue grew by 12%.", result.Summary)

	require.Len(t, completer.received, 2)
	assert.Equal(t, "system", completer.received[0].Role)
	assert.Contains(t, completer.received[1].Content, "--- SOURCE: ")
	assert.Contains(t, completer.received[1].Content, "Quarterly revenue grew 12 percent.")
}

func TestAnalyze_MissingFile(t *testing.T) {
	_, err := newTestAnalyzeService(&fakeCompleter{answer: "x"}).
		Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestCompare_PromptLayout(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref.txt")
	actPath := filepath.Join(dir, "act.txt")
	require.NoError(t, os.WriteFile(refPath, []byte("original clause"), 0o644))
	require.NoError(t, os.WriteFile(actPath, []byte("amended clause"), 0o644))

	completer := &fakeCompleter{answer: `[{"page":"1","change":"clause amended"}]`}
	result, err := newTestAnalyzeService(completer).
		Compare(context.Background(), []string{refPath}, []string{actPath})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "1", result.Rows[0].Page)
	assert.Equal(t, "clause amended", result.Rows[0].Change)

	require.Len(t, completer.received, 2)
	prompt := completer.received[1].Content
	assert.Contains(t, prompt, "<<REFERENCE_DOCUMENTS>>")
	assert.Contains(t, prompt, "<<ACTUAL_DOCUMENTS>>")
	assert.Contains(t, prompt, "original clause")
	assert.Contains(t, prompt, "amended clause")
}

func TestParseCompareRows(t *testing.T) {
	rows := parseCompareRows(`[{"page":"2","change":"title updated"}]`)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].Page)

	rows = parseCompareRows("```json\n[{\"page\":\"3\",\"change\":\"row added\"}]\n```")
	require.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0].Page)
	assert.Equal(t, "row added", rows[0].Change)
}

func TestParseCompareRows_Fallback(t *testing.T) {
	rows := parseCompareRows("The documents differ in tone.")
	require.Len(t, rows, 1)
	assert.Equal(t, "all", rows[0].Page)
	assert.Equal(t, "The documents differ in tone.", rows[0].Change)

	rows = parseCompareRows("[]")
	require.Len(t, rows, 1)
	assert.Equal(t, "all", rows[0].Page)
}
