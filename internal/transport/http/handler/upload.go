package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveUploads writes the uploaded files into a fresh scratch directory under
// baseDir and returns the directory plus the saved paths, in upload order.
// Callers remove the directory once extraction is done.
func saveUploads(c *gin.Context, baseDir string, maxBytes int64, files []*multipart.FileHeader) (string, []string, error) {
	dir := filepath.Join(baseDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create upload dir failed: %w", err)
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		if maxBytes > 0 && file.Size > maxBytes {
			_ = os.RemoveAll(dir)
			return "", nil, fmt.Errorf("file %q exceeds upload limit", file.Filename)
		}
		dst := filepath.Join(dir, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, dst); err != nil {
			_ = os.RemoveAll(dir)
			return "", nil, fmt.Errorf("save upload %q failed: %w", file.Filename, err)
		}
		paths = append(paths, dst)
	}
	return dir, paths, nil
}
