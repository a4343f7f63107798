package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docportal/internal/app"
	"docportal/internal/transport/http/response"
)

// SessionHandler exposes session administration on the management API.
type SessionHandler struct {
	indexService *app.IndexService
}

func NewSessionHandler(indexService *app.IndexService) *SessionHandler {
	return &SessionHandler{indexService: indexService}
}

func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.indexService.ListSessions()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list sessions failed")
		return
	}

	items := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, gin.H{
			"session_id": s.SessionID,
			"title":      s.Title,
			"created_at": s.CreatedAt,
			"updated_at": s.UpdatedAt,
		})
	}
	response.OK(c, gin.H{"sessions": items})
}

func (h *SessionHandler) Documents(c *gin.Context) {
	sessionID := c.Param("session_id")
	docs, err := h.indexService.ListDocuments(sessionID)
	if err != nil {
		if errors.Is(err, app.ErrSessionRequired) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}

	items := make([]gin.H, 0, len(docs))
	for _, d := range docs {
		items = append(items, gin.H{
			"id":         d.ID,
			"name":       d.Name,
			"source":     d.Source,
			"created_at": d.CreatedAt,
		})
	}
	response.OK(c, gin.H{"session_id": sessionID, "documents": items})
}

func (h *SessionHandler) Delete(c *gin.Context) {
	sessionID := c.Param("session_id")
	if err := h.indexService.DeleteSession(c.Request.Context(), sessionID); err != nil {
		if errors.Is(err, app.ErrSessionRequired) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, app.ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete session failed")
		return
	}
	response.OK(c, gin.H{"session_id": sessionID, "deleted": true})
}
