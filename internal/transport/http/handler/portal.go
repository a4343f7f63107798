package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"docportal/internal/app"
	"docportal/internal/loader"
)

// PortalHandler serves the public analyze/compare contract endpoints.
// These return plain JSON bodies, not the management API envelope.
type PortalHandler struct {
	analyzeService *app.AnalyzeService
	baseDir        string
	maxBytes       int64
}

func NewPortalHandler(analyzeService *app.AnalyzeService, baseDir string, maxBytes int64) *PortalHandler {
	return &PortalHandler{
		analyzeService: analyzeService,
		baseDir:        baseDir,
		maxBytes:       maxBytes,
	}
}

// Analyze accepts a multipart "file" and returns {"summary": ...}.
func (h *PortalHandler) Analyze(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	dir, paths, err := saveUploads(c, h.baseDir, h.maxBytes, []*multipart.FileHeader{file})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer os.RemoveAll(dir)

	result, err := h.analyzeService.Analyze(c.Request.Context(), paths[0])
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, loader.ErrNoDocumentsLoaded) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Compare accepts multipart "reference" and "actual" file sets and returns
// {"rows": [...]}.
func (h *PortalHandler) Compare(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	refFiles := form.File["reference"]
	actFiles := form.File["actual"]
	if len(refFiles) == 0 || len(actFiles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both reference and actual files are required"})
		return
	}

	refDir, refPaths, err := saveUploads(c, h.baseDir, h.maxBytes, refFiles)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer os.RemoveAll(refDir)

	actDir, actPaths, err := saveUploads(c, h.baseDir, h.maxBytes, actFiles)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer os.RemoveAll(actDir)

	result, err := h.analyzeService.Compare(c.Request.Context(), refPaths, actPaths)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, loader.ErrNoDocumentsLoaded) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
