package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"stargrid/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadFile accepts a multipart image or video and stores it under the
// upload directory, split by media kind. The response carries the public URL
// the admin form pastes into image/video content payloads.
func UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file was uploaded"})
		return
	}

	maxBytes := int64(config.Settings.MaxUploadMB) << 20
	if maxBytes > 0 && file.Size > maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("File too large. Maximum size is %d MB.", config.Settings.MaxUploadMB),
		})
		return
	}

	contentType := file.Header.Get("Content-Type")
	var kind string
	switch {
	case strings.HasPrefix(contentType, "image/"):
		kind = "images"
	case strings.HasPrefix(contentType, "video/"):
		kind = "videos"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unsupported file type. Only images and videos are allowed."})
		return
	}

	dir := filepath.Join(config.Settings.UploadDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to prepare upload directory"})
		return
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save uploaded file"})
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	fileURL := fmt.Sprintf("%s://%s/uploads/%s/%s", scheme, c.Request.Host, kind, name)

	fileType := "image"
	if kind == "videos" {
		fileType = "video"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"fileUrl":      fileURL,
		"fileType":     fileType,
		"originalName": file.Filename,
		"size":         file.Size,
	})
}
