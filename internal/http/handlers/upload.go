package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"shop-backend/internal/http/middleware"
	"shop-backend/internal/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	minUploadBytes = 2 * 1024
	maxUploadBytes = 9 * 1024 * 1024
)

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

// POST /api/upload
// Accepts a single multipart image. The stored name is random and the
// extension comes from content sniffing, never from the client.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "A file field is required", err)
		return
	}
	if fileHeader.Size < minUploadBytes {
		RespondError(c, http.StatusBadRequest, "File is too small", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		RespondError(c, http.StatusBadRequest, "File is too large", nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to read upload", err)
		return
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to detect file type", err)
		return
	}
	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		RespondError(c, http.StatusBadRequest, "Only PNG, JPEG and GIF images are accepted", nil)
		return
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to read upload", err)
		return
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to prepare upload directory", err)
		return
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(uploadDir, name))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to store upload", err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to store upload", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "upload", "store", name)
	c.JSON(http.StatusCreated, gin.H{
		"fileName": "/" + uploadPath + "/" + name,
		"metadata": gin.H{
			"size":        fileHeader.Size,
			"contentType": mtype.String(),
		},
	})
}
