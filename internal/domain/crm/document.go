package crm

import (
	"strings"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Maximum accepted upload size, enforced again at the HTTP layer
const MaxDocumentSize = 25 << 20 // 25MB

// Document holds metadata for a file attached to a client.
// Binary content lives in object storage under StorageKey.
type Document struct {
	shared.BaseEntity
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Size       int64     `gorm:"not null"`
	MimeType   string    `gorm:"type:varchar(100);not null"`
	StorageKey string    `gorm:"type:varchar(500);not null;uniqueIndex"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates document metadata for an uploaded file
func NewDocument(clientID, uploadedBy uuid.UUID, name, mimeType string, size int64) (*Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Document name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewDomainError("INVALID_NAME", "Document name cannot exceed 255 characters")
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Document size must be positive")
	}
	if size > MaxDocumentSize {
		return nil, shared.NewDomainError("DOCUMENT_TOO_LARGE", "Document exceeds the maximum upload size")
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	doc := &Document{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		Name:       name,
		Size:       size,
		MimeType:   mimeType,
		UploadedBy: uploadedBy,
	}
	doc.StorageKey = "clients/" + clientID.String() + "/" + doc.ID.String() + "/" + name
	return doc, nil
}
