package finance

import (
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus represents the lifecycle of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// CdnQuotation is a financial proposal for a client: an investment amount
// over a term at a fixed annual rate, with a derived maturity value.
type CdnQuotation struct {
	shared.BaseAggregateRoot
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TermMonths    int             `gorm:"not null"`
	AnnualRate    decimal.Decimal `gorm:"type:decimal(8,4);not null"` // percent per annum
	MaturityValue decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status        QuotationStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SentAt        *time.Time
}

// TableName returns the table name for GORM
func (CdnQuotation) TableName() string {
	return "cdn_quotations"
}

// NewQuotation creates a quotation and computes its maturity value
func NewQuotation(createdBy, clientID uuid.UUID, amount decimal.Decimal, termMonths int, annualRate decimal.Decimal) (*CdnQuotation, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Investment amount must be positive")
	}
	if termMonths <= 0 {
		return nil, shared.NewDomainError("INVALID_TERM", "Term must be at least one month")
	}
	if annualRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Interest rate cannot be negative")
	}

	return &CdnQuotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Amount:            amount,
		TermMonths:        termMonths,
		AnnualRate:        annualRate,
		MaturityValue:     MaturityValue(amount, termMonths, annualRate),
		Status:            QuotationStatusDraft,
		CreatedBy:         createdBy,
	}, nil
}

// MaturityValue computes the payout of amount invested for termMonths at
// the given annual percentage rate, compounded monthly and rounded to
// cents: amount * (1 + rate/100/12)^termMonths.
func MaturityValue(amount decimal.Decimal, termMonths int, annualRate decimal.Decimal) decimal.Decimal {
	monthlyRate := annualRate.Div(hundred).Div(twelve)
	factor := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(termMonths)))
	return amount.Mul(factor).Round(2)
}

// MarkSent records that the quotation was emailed to the client
func (q *CdnQuotation) MarkSent() error {
	if q.Status == QuotationStatusAccepted {
		return shared.ErrInvalidState
	}
	now := time.Now()
	q.Status = QuotationStatusSent
	q.SentAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()
	return nil
}

// Accept marks the quotation as accepted by the client
func (q *CdnQuotation) Accept() error {
	if q.Status != QuotationStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Only a sent quotation can be accepted")
	}
	q.Status = QuotationStatusAccepted
	q.UpdatedAt = time.Now()
	q.IncrementVersion()
	return nil
}
