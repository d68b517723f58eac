package crm

import (
	"context"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	shared.Repository[Client]
	FindByCreator(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Client, error)
	FindByIDNumber(ctx context.Context, idNumber string) (*Client, error)
	ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error)
}

// DocumentRepository defines persistence operations for document metadata
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Document, error)
	Save(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByClient(ctx context.Context, clientID uuid.UUID) error
}
