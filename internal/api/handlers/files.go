package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// UploadFile stores an uploaded document or audio file and returns its
// public URL.
func UploadFile(c *gin.Context) {
	userID := currentUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size > cfg.Storage.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File exceeds maximum size of %d bytes", cfg.Storage.MaxUploadSize)})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer f.Close()

	key := fmt.Sprintf("uploads/%d/%s", userID, filepath.Base(file.Filename))
	path, err := fileStorage.Upload(f, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to store file: %v", err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"file_id":      path,
		"filename":     file.Filename,
		"file_size":    file.Size,
		"content_type": file.Header.Get("Content-Type"),
		"upload_url":   fileStorage.GetPublicURL(path),
	})
}

// ServeFile streams a stored file (podcast audio, source documents) through
// the API. Files live under the requesting user's prefix; requests outside it
// are rejected.
func ServeFile(c *gin.Context) {
	userID := currentUserID(c)
	key := strings.TrimPrefix(filepath.Clean(c.Param("filepath")), "/")

	if !strings.HasPrefix(key, fmt.Sprintf("uploads/%d/", userID)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	filename := filepath.Base(key)
	reader, err := fileStorage.Download(key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.DataFromReader(http.StatusOK, -1, contentTypeFor(filename), reader, nil)
}

func contentTypeFor(filename string) string {
	switch filepath.Ext(filename) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
