package loader

import "strings"

// ConcatForAnalysis joins all document contents, each prefixed with a SOURCE
// header, preserving input order. Empty input yields an empty string.
func ConcatForAnalysis(docs []Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, "\n--- SOURCE: "+d.SourceLabel()+" ---\n"+d.Content)
	}
	return strings.Join(parts, "\n")
}

// ConcatForComparison builds the two-part prompt block the comparator
// consumes: reference documents first, then actual documents.
func ConcatForComparison(refDocs, actDocs []Document) string {
	left := ConcatForAnalysis(refDocs)
	right := ConcatForAnalysis(actDocs)
	return "<<REFERENCE_DOCUMENTS>>\n" + left + "\n\n<<ACTUAL_DOCUMENTS>>\n" + right
}
