package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/middleware"
	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/response"
	"github.com/campusgrid/timetable-backend/internal/service"
)

// DocumentHandler handles reference PDF upload and retrieval.
type DocumentHandler struct {
	documentService *service.DocumentService
	maxBytes        int64
	log             zerolog.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *service.DocumentService, maxBytes int64, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxBytes:        maxBytes,
		log:             log.With().Str("component", "document_handler").Logger(),
	}
}

// Upload godoc
// POST /api/v1/documents/upload
// Multipart form with a "file" part and an optional "note".
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrFileRequired, map[string]string{"file": "file is required"})
		return
	}
	defer file.Close()

	// One byte past the limit is enough for the service to reject it.
	body, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to read upload")
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	up := &model.DocumentUpload{
		Filename: header.Filename,
		Body:     body,
	}
	if note := strings.TrimSpace(c.PostForm("note")); note != "" {
		up.Note = &note
	}

	doc, err := h.documentService.Upload(c.Request.Context(), middleware.GetScope(c), up)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":       doc.ID,
		"url":      doc.URL,
		"filename": doc.Filename,
	})
}

// List godoc
// GET /api/v1/documents/list
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.List(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

// Download godoc
// GET /api/v1/documents/download/:id
// Streams the stored PDF back with an inline disposition.
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	doc, body, err := h.documentService.Download(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, dispositionName(doc.Filename)))
	c.Data(http.StatusOK, "application/pdf", body)
}

// Delete godoc
// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.documentService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Document deleted"})
}

// dispositionName strips characters that would break out of the quoted filename.
func dispositionName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '\r', '\n':
			return -1
		}
		return r
	}, name)
}
