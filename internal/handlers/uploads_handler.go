package handlers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
)

// UploadsHandler streams stored attachments back by key, from whichever
// store is configured.
type UploadsHandler struct {
	files storage.Store
	log   *slog.Logger
}

func NewUploadsHandler(files storage.Store, log *slog.Logger) *UploadsHandler {
	return &UploadsHandler{files: files, log: log}
}

func (h *UploadsHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if !storage.ValidKey(key) {
		httperr.NotFound(c, "file_not_found", "File not found")
		return
	}

	rc, err := h.files.Open(c.Request.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		httperr.NotFound(c, "file_not_found", "File not found")
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}
