package app

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"docportal/internal/ai"
	"docportal/internal/loader"
	"docportal/internal/model"
	"docportal/internal/repository"
)

const (
	defaultChunkSize    = 512
	defaultChunkOverlap = 64
	defaultTopK         = 5
	embeddingBatchSize  = 10 // many embedding APIs cap array input size
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrSessionRequired    = errors.New("session id is required")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNoIndexedDocuments = errors.New("no documents indexed for session")
	ErrNoChunks           = errors.New("no chunks found for retrieval")
)

// Embedder turns text into vectors; the model is bound at construction.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer answers a chat prompt; the model is bound at construction.
type Completer interface {
	Complete(ctx context.Context, messages []ai.ChatMessage) (string, error)
}

type AsyncMessagePublisher interface {
	Publish(ctx context.Context, msg model.Message) error
}

type HistoryCache interface {
	GetHistory(ctx context.Context, sessionID string) ([]model.Message, bool, error)
	SetHistory(ctx context.Context, sessionID string, messages []model.Message) error
	DeleteHistory(ctx context.Context, sessionID string) error
}

// IndexOptions tunes chunking and retrieval.
type IndexOptions struct {
	TopK         int
	ChunkSize    int
	ChunkOverlap int
	MaxContext   int
}

// IndexService manages per-session retrieval indexes: ingest builds them,
// query answers against them.
//
// Re-ingesting under an existing session id merges: new chunks are appended
// and the id is returned unchanged. No locking is done between ingest and
// query on the same session; a query concurrent with an ingest may or may not
// see the newly added chunks.
type IndexService struct {
	sessionRepo  *repository.SessionRepository
	docRepo      *repository.DocumentRepository
	chunkRepo    *repository.ChunkRepository
	messageRepo  *repository.MessageRepository
	docLoader    *loader.Loader
	embedder     Embedder
	completer    Completer
	publisher    AsyncMessagePublisher
	historyCache HistoryCache
	logger       arbor.ILogger
	opts         IndexOptions
}

func NewIndexService(
	sessionRepo *repository.SessionRepository,
	docRepo *repository.DocumentRepository,
	chunkRepo *repository.ChunkRepository,
	messageRepo *repository.MessageRepository,
	docLoader *loader.Loader,
	embedder Embedder,
	completer Completer,
	publisher AsyncMessagePublisher,
	historyCache HistoryCache,
	logger arbor.ILogger,
	opts IndexOptions,
) *IndexService {
	if opts.TopK <= 0 {
		opts.TopK = defaultTopK
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}
	if opts.ChunkOverlap <= 0 {
		opts.ChunkOverlap = defaultChunkOverlap
	}
	if opts.MaxContext <= 0 {
		opts.MaxContext = 10
	}
	return &IndexService{
		sessionRepo:  sessionRepo,
		docRepo:      docRepo,
		chunkRepo:    chunkRepo,
		messageRepo:  messageRepo,
		docLoader:    docLoader,
		embedder:     embedder,
		completer:    completer,
		publisher:    publisher,
		historyCache: historyCache,
		logger:       logger,
		opts:         opts,
	}
}

// TopK exposes the retrieval depth for the index response payload.
func (s *IndexService) TopK() int {
	return s.opts.TopK
}

type IngestResult struct {
	SessionID     string `json:"session_id"`
	DocumentCount int    `json:"document_count"`
	ChunkCount    int    `json:"chunk_count"`
}

// Ingest loads the files, chunks and embeds their text, and persists the
// chunks under the session. A blank session id gets a generated one.
func (s *IndexService) Ingest(ctx context.Context, sessionID string, paths []string) (*IngestResult, error) {
	if len(paths) == 0 {
		return nil, ErrInvalidInput
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	docs, err := s.docLoader.LoadAll(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, loader.ErrNoDocumentsLoaded
	}

	existing, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		session := &model.Session{
			SessionID: sessionID,
			Title:     filepath.Base(docs[0].SourceLabel()),
		}
		if err := s.sessionRepo.Create(session); err != nil {
			return nil, err
		}
	} else if err := s.sessionRepo.Touch(sessionID); err != nil {
		return nil, err
	}

	chunkTotal := 0
	for _, doc := range docs {
		count, err := s.indexDocument(ctx, sessionID, doc)
		if err != nil {
			return nil, err
		}
		chunkTotal += count
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Int("documents", len(docs)).
		Int("chunks", chunkTotal).
		Msg("Session index updated")

	return &IngestResult{
		SessionID:     sessionID,
		DocumentCount: len(docs),
		ChunkCount:    chunkTotal,
	}, nil
}

func (s *IndexService) indexDocument(ctx context.Context, sessionID string, doc loader.Document) (int, error) {
	chunks := chunkText(doc.Content, s.opts.ChunkSize, s.opts.ChunkOverlap)
	// Whitespace-only chunks carry nothing to retrieve and the embedding
	// endpoint rejects blank input, so drop them before batching.
	kept := chunks[:0]
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			kept = append(kept, c)
		}
	}
	chunks = kept
	if len(chunks) == 0 {
		return 0, nil
	}

	record := &model.Document{
		SessionID: sessionID,
		Name:      filepath.Base(doc.SourceLabel()),
		Source:    doc.SourceLabel(),
	}
	if err := s.docRepo.Create(record); err != nil {
		return 0, err
	}

	var embeddings [][]float32
	for i := 0; i < len(chunks); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch, err := s.embedder.EmbedBatch(ctx, chunks[i:end])
		if err != nil {
			return 0, err
		}
		embeddings = append(embeddings, batch...)
	}
	if len(embeddings) != len(chunks) {
		return 0, errors.New("embedding count mismatch")
	}

	rows := make([]model.Chunk, len(chunks))
	for i := range chunks {
		rows[i] = model.Chunk{
			DocumentID: record.ID,
			Content:    chunks[i],
		}
		rows[i].SetEmbedding(embeddings[i])
	}
	if err := s.chunkRepo.CreateBatch(rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Query retrieves the session's most relevant chunks, asks the chat model,
// and enqueues both transcript turns for async persistence.
func (s *IndexService) Query(ctx context.Context, sessionID, question string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", ErrSessionRequired
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrInvalidInput
	}

	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", ErrSessionNotFound
	}

	docs, err := s.docRepo.ListBySessionID(sessionID)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", ErrNoIndexedDocuments
	}
	docIDs := make([]uint, len(docs))
	for i, d := range docs {
		docIDs[i] = d.ID
	}

	chunks, err := s.chunkRepo.ListByDocumentIDs(docIDs)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", ErrNoChunks
	}

	queryEmb, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", err
	}

	selected := topKByCosine(chunks, queryEmb, s.opts.TopK)

	turns := s.buildPrompt(ctx, sessionID, selected, question)

	answer, err := s.completer.Complete(ctx, turns)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = "The model returned an empty response."
	}

	s.recordTranscript(ctx, sessionID, question, answer)
	return answer, nil
}

func (s *IndexService) buildPrompt(ctx context.Context, sessionID string, selected []model.Chunk, question string) []ai.ChatMessage {
	var contextBlock strings.Builder
	for _, c := range selected {
		contextBlock.WriteString("\n---\n")
		contextBlock.WriteString(c.Content)
	}
	contextBlock.WriteString("\n---")

	turns := []ai.ChatMessage{{
		Role: "system",
		Content: "You are a helpful assistant. Answer the user's question based only on the provided context. " +
			"If the context does not contain enough information, say so. Do not make up facts.",
	}}
	for _, m := range s.recentHistory(ctx, sessionID) {
		role := m.Role
		if role == "" {
			role = "user"
		}
		turns = append(turns, ai.ChatMessage{Role: role, Content: m.Content})
	}
	turns = append(turns, ai.ChatMessage{
		Role:    "user",
		Content: "Context:" + contextBlock.String() + "\n\nQuestion: " + question + "\n\nAnswer:",
	})
	return turns
}

func (s *IndexService) recentHistory(ctx context.Context, sessionID string) []model.Message {
	if s.historyCache != nil {
		cached, hit, err := s.historyCache.GetHistory(ctx, sessionID)
		if err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("History cache read failed")
		} else if hit {
			return trimMessages(cached, s.opts.MaxContext)
		}
	}
	recent, err := s.messageRepo.ListRecentBySessionID(sessionID, s.opts.MaxContext)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Transcript read failed")
		return nil
	}
	return recent
}

func (s *IndexService) recordTranscript(ctx context.Context, sessionID, question, answer string) {
	now := time.Now()
	userMsg := model.Message{SessionID: sessionID, Role: "user", Content: question, CreatedAt: now}
	assistantMsg := model.Message{SessionID: sessionID, Role: "assistant", Content: answer, CreatedAt: now}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, userMsg); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Enqueue user turn failed")
		}
		if err := s.publisher.Publish(ctx, assistantMsg); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Enqueue assistant turn failed")
		}
	}
	if s.historyCache != nil {
		history := append(s.recentHistory(ctx, sessionID), userMsg, assistantMsg)
		history = trimMessages(history, s.opts.MaxContext)
		if err := s.historyCache.SetHistory(ctx, sessionID, history); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("History cache write failed")
		}
	}
}

// ListSessions and DeleteSession back the management API.
func (s *IndexService) ListSessions() ([]model.Session, error) {
	return s.sessionRepo.List()
}

func (s *IndexService) ListDocuments(sessionID string) ([]model.Document, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	return s.docRepo.ListBySessionID(sessionID)
}

func (s *IndexService) DeleteSession(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionRequired
	}
	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	docs, err := s.docRepo.ListBySessionID(sessionID)
	if err != nil {
		return err
	}
	docIDs := make([]uint, len(docs))
	for i, d := range docs {
		docIDs[i] = d.ID
	}
	if err := s.chunkRepo.DeleteByDocumentIDs(docIDs); err != nil {
		return err
	}
	if err := s.docRepo.DeleteBySessionID(sessionID); err != nil {
		return err
	}
	if err := s.messageRepo.DeleteBySessionID(sessionID); err != nil {
		return err
	}
	if s.historyCache != nil {
		if err := s.historyCache.DeleteHistory(ctx, sessionID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("History cache delete failed")
		}
	}
	return s.sessionRepo.DeleteBySessionID(sessionID)
}

// chunkText splits text into overlapping chunks by rune count.
func chunkText(text string, size, overlap int) []string {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap >= size {
		overlap = size / 2
	}
	var chunks []string
	runes := []rune(text)
	for i := 0; i < len(runes); {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
		i += size - overlap
	}
	return chunks
}

func topKByCosine(chunks []model.Chunk, query []float32, k int) []model.Chunk {
	if k <= 0 || len(chunks) == 0 {
		return nil
	}
	type scored struct {
		chunk model.Chunk
		score float32
	}
	items := make([]scored, len(chunks))
	for i := range chunks {
		items[i] = scored{chunk: chunks[i], score: cosineSimilarity(query, chunks[i].EmbeddingVector())}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })
	if k > len(items) {
		k = len(items)
	}
	selected := make([]model.Chunk, k)
	for i := 0; i < k; i++ {
		selected[i] = items[i].chunk
	}
	return selected
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

func trimMessages(messages []model.Message, limit int) []model.Message {
	if limit <= 0 || limit >= len(messages) {
		return messages
	}
	return messages[len(messages)-limit:]
}
