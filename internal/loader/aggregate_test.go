package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcatForAnalysis_Empty(t *testing.T) {
	assert.Equal(t, "", ConcatForAnalysis(nil))
	assert.Equal(t, "", ConcatForAnalysis([]Document{}))
}

func TestConcatForAnalysis_OrderAndHeaders(t *testing.T) {
	docs := []Document{
		{Content: "first body", Source: "a.txt"},
		{Content: "second body", Source: "b.pdf"},
	}

	out := ConcatForAnalysis(docs)
	assert.Equal(t, 2, strings.Count(out, "--- SOURCE: "))
	assert.Contains(t, out, "--- SOURCE: a.txt ---\nfirst body")
	assert.Contains(t, out, "--- SOURCE: b.pdf ---\nsecond body")
	assert.Less(t, strings.Index(out, "a.txt"), strings.Index(out, "b.pdf"))
}

func TestConcatForAnalysis_UnknownSource(t *testing.T) {
	out := ConcatForAnalysis([]Document{{Content: "orphan"}})
	assert.Contains(t, out, "--- SOURCE: unknown ---\norphan")
}

func TestConcatForComparison(t *testing.T) {
	ref := []Document{{Content: "baseline", Source: "old.txt"}}
	act := []Document{{Content: "revised", Source: "draft.txt"}}

	out := ConcatForComparison(ref, act)
	assert.Equal(t, 1, strings.Count(out, "<<REFERENCE_DOCUMENTS>>"))
	assert.Equal(t, 1, strings.Count(out, "<<ACTUAL_DOCUMENTS>>"))
	refIdx := strings.Index(out, "<<REFERENCE_DOCUMENTS>>")
	actIdx := strings.Index(out, "<<ACTUAL_DOCUMENTS>>")
	assert.Less(t, refIdx, actIdx)
	assert.Less(t, strings.Index(out, "baseline"), actIdx)
	assert.Greater(t, strings.Index(out, "revised"), actIdx)
}
