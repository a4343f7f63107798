package loader

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestDeck(t *testing.T, slideCount int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	// write in reverse so archive order never masks a sorting bug
	for n := slideCount; n >= 1; n-- {
		entry, err := w.Create(fmt.Sprintf("ppt/slides/slide%d.xml", n))
		require.NoError(t, err)
		_, err = entry.Write([]byte(fmt.Sprintf("<sld><p><t>Slide %d text</t></p></sld>", n)))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestLoadSlides(t *testing.T) {
	path := writeTestDeck(t, 3)

	docs, err := createTestLoader().LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "3", docs[0].Metadata["slides"])
	assert.Contains(t, docs[0].Content, "Slide 1 text")
	assert.Contains(t, docs[0].Content, "Slide 3 text")
}

func TestLoadSlides_NumericOrder(t *testing.T) {
	path := writeTestDeck(t, 12)

	docs, err := createTestLoader().LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	content := docs[0].Content
	for n := 1; n < 12; n++ {
		cur := strings.Index(content, fmt.Sprintf("Slide %d text", n))
		next := strings.Index(content, fmt.Sprintf("Slide %d text", n+1))
		require.NotEqual(t, -1, cur)
		require.NotEqual(t, -1, next)
		assert.Less(t, cur, next, "slide %d should precede slide %d", n, n+1)
	}
}

func TestLoadSlides_NotAnArchive(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "legacy.ppt", "not a zip")

	_, err := createTestLoader().LoadFile(context.Background(), path)
	require.Error(t, err)
}
