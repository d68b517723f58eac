package crm

import (
	"context"
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/crm"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorageService defines the interface for object storage operations.
// Implemented by the infrastructure layer (S3-compatible storage).
type ObjectStorageService interface {
	// Upload writes file content under the given storage key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL returns a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// DocumentServiceConfig holds configuration for the document service
type DocumentServiceConfig struct {
	DownloadURLExpiry     time.Duration
	MaxDocumentsPerClient int
}

// DefaultDocumentServiceConfig returns the default configuration
func DefaultDocumentServiceConfig() DocumentServiceConfig {
	return DocumentServiceConfig{
		DownloadURLExpiry:     1 * time.Hour,
		MaxDocumentsPerClient: 100,
	}
}

// DocumentService manages client document attachments: metadata in the
// database, content in object storage.
type DocumentService struct {
	documentRepo crm.DocumentRepository
	clientRepo   crm.ClientRepository
	storage      ObjectStorageService
	config       DocumentServiceConfig
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo crm.DocumentRepository,
	clientRepo crm.ClientRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		clientRepo:   clientRepo,
		storage:      storage,
		config:       DefaultDocumentServiceConfig(),
		logger:       logger,
	}
}

// SetConfig sets the service configuration
func (s *DocumentService) SetConfig(config DocumentServiceConfig) {
	s.config = config
}

// Upload stores a document for a client. Metadata is only persisted after
// the content write succeeds, so a failed upload leaves no orphan record.
func (s *DocumentService) Upload(ctx context.Context, clientID, uploadedBy uuid.UUID, name, mimeType string, content []byte) (*DocumentResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.IsArchived() {
		return nil, shared.NewDomainError("CLIENT_ARCHIVED", "Documents cannot be added to an archived client")
	}

	existing, err := s.documentRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= s.config.MaxDocumentsPerClient {
		return nil, shared.NewDomainError("DOCUMENT_LIMIT", "Client has reached the document limit")
	}

	doc, err := crm.NewDocument(clientID, uploadedBy, name, mimeType, int64(len(content)))
	if err != nil {
		return nil, err
	}

	if err := s.storage.Upload(ctx, doc.StorageKey, content, mimeType); err != nil {
		s.logger.Error("Document upload failed",
			zap.String("client_id", clientID.String()),
			zap.String("storage_key", doc.StorageKey),
			zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to store document content")
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		// Best effort cleanup of the orphaned object
		if delErr := s.storage.DeleteObject(ctx, doc.StorageKey); delErr != nil {
			s.logger.Error("Failed to clean up orphaned object", zap.String("storage_key", doc.StorageKey), zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("Document uploaded",
		zap.String("client_id", clientID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.Int64("size", doc.Size))

	response := ToDocumentResponse(doc)
	return &response, nil
}

// List returns document metadata for a client
func (s *DocumentService) List(ctx context.Context, clientID uuid.UUID) ([]DocumentResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses, nil
}

// DownloadURL returns a presigned URL for a document's content
func (s *DocumentService) DownloadURL(ctx context.Context, documentID uuid.UUID) (string, time.Time, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return "", time.Time{}, err
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, doc.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to presign download URL",
			zap.String("document_id", documentID.String()),
			zap.Error(err))
		return "", time.Time{}, shared.NewDomainError("STORAGE_ERROR", "Failed to generate download URL")
	}
	return url, expiresAt, nil
}

// Delete removes a document's metadata and content
func (s *DocumentService) Delete(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, doc.StorageKey); err != nil {
		// Metadata is gone; log the stale object and move on
		s.logger.Error("Failed to delete object content",
			zap.String("storage_key", doc.StorageKey),
			zap.Error(err))
	}
	return nil
}
