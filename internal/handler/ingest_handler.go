package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"kosh/internal/domain"
	"kosh/internal/ingest"
	"kosh/internal/service"
)

// maxUploadBytes caps receipt images and voice clips at 15 MiB.
const maxUploadBytes = 15 << 20

// IngestHandler handles transaction ingestion endpoints.
type IngestHandler struct {
	ingestion service.IngestionService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestion service.IngestionService) *IngestHandler {
	return &IngestHandler{ingestion: ingestion}
}

// Receipt handles POST /api/v1/ingest/receipt. Expects a multipart form with
// an "image" file and an optional "categories" JSON array field.
func (h *IngestHandler) Receipt(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "image field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, contentType, ok := readUpload(c, file, header)
	if !ok {
		return
	}

	categories, ok := parseCategories(c, c.PostForm("categories"))
	if !ok {
		return
	}

	result, err := h.ingestion.IngestReceipt(c.Request.Context(), data, contentType, categories)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Voice handles POST /api/v1/ingest/voice. Expects a multipart form with an
// "audio" file, an optional "mime_type" field overriding the part's content
// type, and an optional "categories" JSON array field.
func (h *IngestHandler) Voice(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "audio field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, contentType, ok := readUpload(c, file, header)
	if !ok {
		return
	}
	// Browser recorders often send the part as application/octet-stream and
	// carry the real type in a separate field.
	if mt := c.PostForm("mime_type"); mt != "" {
		contentType = mt
	}

	categories, ok := parseCategories(c, c.PostForm("categories"))
	if !ok {
		return
	}

	result, err := h.ingestion.IngestVoice(c.Request.Context(), data, contentType, categories)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// qrRequest is the JSON body for QR ingestion.
type qrRequest struct {
	Bill       *ingest.QRBill `json:"bill" binding:"required"`
	Categories []string       `json:"categories"`
}

// QR handles POST /api/v1/ingest/qr.
func (h *IngestHandler) QR(c *gin.Context) {
	var req qrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "bill field is required")
		return
	}

	result, err := h.ingestion.IngestQR(c.Request.Context(), req.Bill, domain.NewCategorySet(req.Categories))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// readUpload reads a multipart file into memory and returns its declared
// content type. Writes the error response itself on failure.
func readUpload(c *gin.Context, file multipart.File, header *multipart.FileHeader) ([]byte, string, bool) {
	if header.Size > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return nil, "", false
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return nil, "", false
	}
	if len(data) > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return nil, "", false
	}
	return data, header.Header.Get("Content-Type"), true
}

// parseCategories decodes the optional categories form field, a JSON array of
// strings. An absent field selects the default category set.
func parseCategories(c *gin.Context, raw string) (domain.CategorySet, bool) {
	if raw == "" {
		return domain.NewCategorySet(nil), true
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_CATEGORIES", "categories must be a JSON array of strings")
		return nil, false
	}
	return domain.NewCategorySet(names), true
}
