package finance

import (
	"context"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// QuotationRepository defines persistence operations for quotations
type QuotationRepository interface {
	shared.Repository[CdnQuotation]
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]CdnQuotation, error)
}

// InterestRateRepository defines persistence operations for the rate table
type InterestRateRepository interface {
	FindAll(ctx context.Context) ([]InterestRate, error)
	FindByTerm(ctx context.Context, termMonths int) (*InterestRate, error)
	Save(ctx context.Context, rate *InterestRate) error
}
