package handler

import (
	"io"

	crmapp "github.com/OpianKyle/opianrer-sub001/internal/application/crm"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles client document endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *crmapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *crmapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/clients/:id/documents", h.Upload)
	rg.GET("/clients/:id/documents", h.List)

	documents := rg.Group("/documents")
	{
		documents.GET("/:id/download-url", h.DownloadURL)
		documents.DELETE("/:id", h.Delete)
	}
}

// Upload stores a document against a client. The file arrives as
// multipart form data under the "file" field.
func (h *DocumentHandler) Upload(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file is required under the 'file' form field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	doc, err := h.documentService.Upload(c.Request.Context(), clientID, userID, fileHeader.Filename, mimeType, content)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, doc)
}

// List returns a client's document metadata, newest first
func (h *DocumentHandler) List(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	documents, err := h.documentService.List(c.Request.Context(), clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, documents)
}

// DownloadURL returns a short-lived presigned URL for the document
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	url, expiresAt, err := h.documentService.DownloadURL(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{
		"url":        url,
		"expires_at": expiresAt,
	})
}

// Delete removes a document and its stored object
func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), documentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
