package documents

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docrepo-backend/internal/shared/server/respond"
	"docrepo-backend/internal/shared/storage/object"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.search)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/download", h.download)
	rg.DELETE("/documents/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form", nil)
		return
	}
	headers := form.File["files[]"]
	if len(headers) == 0 {
		headers = form.File["files"]
	}
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no files provided", nil)
		return
	}

	var files []IncomingFile
	var closers []interface{ Close() error }
	defer func() {
		for _, closer := range closers {
			_ = closer.Close()
		}
	}()

	result := BatchResult{Uploaded: []UploadedFile{}, Skipped: []SkippedFile{}, Errors: []FailedFile{}}
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			result.Errors = append(result.Errors, FailedFile{
				OriginalName: header.Filename,
				Reason:       "unable to read file",
			})
			continue
		}
		closers = append(closers, f)
		files = append(files, IncomingFile{Name: header.Filename, Body: f})
	}

	batch := h.Svc.UploadBatch(c.Request.Context(), files)
	result.Uploaded = append(result.Uploaded, batch.Uploaded...)
	result.Skipped = append(result.Skipped, batch.Skipped...)
	result.Errors = append(result.Errors, batch.Errors...)

	// Per-file outcomes; the request itself succeeds even when files fail.
	respond.OK(c, result)
}

func (h *Handler) search(c *gin.Context) {
	results, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search documents", nil)
		return
	}
	respond.OK(c, gin.H{"results": results})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}
	respond.OK(c, toResponse(doc))
}

func (h *Handler) download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, rc, err := h.Svc.OpenDownload(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, object.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open file", nil)
		}
		return
	}
	defer rc.Close()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.OriginalName),
	}
	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", rc, headers)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		}
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid document id", nil)
		return 0, false
	}
	return id, true
}
