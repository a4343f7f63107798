package app

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ternarybob/arbor"

	"docportal/internal/ai"
	"docportal/internal/loader"
)

const analyzeSystemPrompt = "You are a document analyst. Summarize the provided document: " +
	"its purpose, key points, and notable details. Be factual and concise."

const compareSystemPrompt = "You compare a reference document set against an actual document set. " +
	"Report every meaningful difference as a JSON array of objects with keys " +
	`"page" (string locator) and "change" (description). Respond with the JSON array only.`

// AnalyzeService runs single-document analysis and pairwise comparison.
type AnalyzeService struct {
	docLoader *loader.Loader
	completer Completer
	logger    arbor.ILogger
}

func NewAnalyzeService(docLoader *loader.Loader, completer Completer, logger arbor.ILogger) *AnalyzeService {
	return &AnalyzeService{
		docLoader: docLoader,
		completer: completer,
		logger:    logger,
	}
}

type AnalyzeResult struct {
	Summary string `json:"summary"`
}

// Analyze loads one file and asks the chat model for a summary.
func (s *AnalyzeService) Analyze(ctx context.Context, path string) (*AnalyzeResult, error) {
	docs, err := s.docLoader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, loader.ErrNoDocumentsLoaded
	}

	combined := loader.ConcatForAnalysis(docs)
	answer, err := s.completer.Complete(ctx, []ai.ChatMessage{
		{Role: "system", Content: analyzeSystemPrompt},
		{Role: "user", Content: combined},
	})
	if err != nil {
		return nil, err
	}
	return &AnalyzeResult{Summary: strings.TrimSpace(answer)}, nil
}

type CompareRow struct {
	Page   string `json:"page"`
	Change string `json:"change"`
}

type CompareResult struct {
	Rows []CompareRow `json:"rows"`
}

// Compare loads both file sets and asks the model for row-wise differences.
func (s *AnalyzeService) Compare(ctx context.Context, refPaths, actPaths []string) (*CompareResult, error) {
	refDocs, err := s.docLoader.LoadAll(ctx, refPaths)
	if err != nil {
		return nil, err
	}
	actDocs, err := s.docLoader.LoadAll(ctx, actPaths)
	if err != nil {
		return nil, err
	}
	if len(refDocs) == 0 || len(actDocs) == 0 {
		return nil, loader.ErrNoDocumentsLoaded
	}

	combined := loader.ConcatForComparison(refDocs, actDocs)
	answer, err := s.completer.Complete(ctx, []ai.ChatMessage{
		{Role: "system", Content: compareSystemPrompt},
		{Role: "user", Content: combined},
	})
	if err != nil {
		return nil, err
	}

	rows := parseCompareRows(answer)
	return &CompareResult{Rows: rows}, nil
}

// parseCompareRows extracts the JSON row array from the model output.
// Unparsable output degrades to a single row carrying the raw text.
func parseCompareRows(answer string) []CompareRow {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var rows []CompareRow
	if err := json.Unmarshal([]byte(cleaned), &rows); err == nil && len(rows) > 0 {
		return rows
	}
	return []CompareRow{{Page: "all", Change: strings.TrimSpace(answer)}}
}
