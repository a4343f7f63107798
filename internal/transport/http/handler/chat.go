package handler

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"docportal/internal/app"
	"docportal/internal/loader"
)

// ChatHandler serves the session index contract endpoints.
type ChatHandler struct {
	indexService *app.IndexService
	baseDir      string
	maxBytes     int64
}

func NewChatHandler(indexService *app.IndexService, baseDir string, maxBytes int64) *ChatHandler {
	return &ChatHandler{
		indexService: indexService,
		baseDir:      baseDir,
		maxBytes:     maxBytes,
	}
}

// Index accepts multipart "files" plus form "session_id" and builds or
// extends the session's index. Responds {"session_id": ..., "k": ...}.
func (h *ChatHandler) Index(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
		return
	}

	dir, paths, err := saveUploads(c, h.baseDir, h.maxBytes, files)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer os.RemoveAll(dir)

	sessionID := strings.TrimSpace(c.PostForm("session_id"))
	result, err := h.indexService.Ingest(c.Request.Context(), sessionID, paths)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, loader.ErrNoDocumentsLoaded) || errors.Is(err, app.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": result.SessionID,
		"k":          h.indexService.TopK(),
	})
}

// Query accepts form "question" and "session_id" and responds
// {"answer": ..., "session_id": ...}.
func (h *ChatHandler) Query(c *gin.Context) {
	sessionID := strings.TrimSpace(c.PostForm("session_id"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	question := strings.TrimSpace(c.PostForm("question"))
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, err := h.indexService.Query(c.Request.Context(), sessionID, question)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, app.ErrSessionNotFound),
			errors.Is(err, app.ErrNoIndexedDocuments),
			errors.Is(err, app.ErrNoChunks),
			errors.Is(err, app.ErrInvalidInput):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":     answer,
		"session_id": sessionID,
	})
}
