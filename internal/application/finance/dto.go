package finance

import (
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateQuotationRequest represents a request to create a quotation.
// The rate is looked up from the pricing table by term.
type CreateQuotationRequest struct {
	ClientID   uuid.UUID       `json:"client_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	TermMonths int             `json:"term_months" binding:"required,min=1"`
}

// QuoteRequest previews a maturity value without persisting anything
type QuoteRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	TermMonths int             `json:"term_months" binding:"required,min=1"`
}

// QuoteResponse is a maturity preview for the given amount and term
type QuoteResponse struct {
	Amount        decimal.Decimal `json:"amount"`
	TermMonths    int             `json:"term_months"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	MaturityValue decimal.Decimal `json:"maturity_value"`
}

// QuotationResponse represents a quotation in API responses
type QuotationResponse struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"client_id"`
	Amount        decimal.Decimal `json:"amount"`
	TermMonths    int             `json:"term_months"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	MaturityValue decimal.Decimal `json:"maturity_value"`
	Status        string          `json:"status"`
	CreatedBy     uuid.UUID       `json:"created_by"`
	SentAt        *time.Time      `json:"sent_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SetRateRequest creates or updates the rate offered for a term
type SetRateRequest struct {
	TermMonths int             `json:"term_months" binding:"required,min=1"`
	AnnualRate decimal.Decimal `json:"annual_rate" binding:"required"`
}

// InterestRateResponse is one row of the pricing table
type InterestRateResponse struct {
	ID         uuid.UUID       `json:"id"`
	TermMonths int             `json:"term_months"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
}

// ToQuotationResponse converts a domain quotation to a response DTO
func ToQuotationResponse(q *finance.CdnQuotation) QuotationResponse {
	return QuotationResponse{
		ID:            q.ID,
		ClientID:      q.ClientID,
		Amount:        q.Amount,
		TermMonths:    q.TermMonths,
		AnnualRate:    q.AnnualRate,
		MaturityValue: q.MaturityValue,
		Status:        string(q.Status),
		CreatedBy:     q.CreatedBy,
		SentAt:        q.SentAt,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

// ToInterestRateResponse converts a rate table row to a response DTO
func ToInterestRateResponse(r *finance.InterestRate) InterestRateResponse {
	return InterestRateResponse{
		ID:         r.ID,
		TermMonths: r.TermMonths,
		AnnualRate: r.AnnualRate,
	}
}
