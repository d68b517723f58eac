package finance

import (
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InterestRate is a row of the pricing table: the annual percentage rate
// offered for a given term in months.
type InterestRate struct {
	shared.BaseEntity
	TermMonths int             `gorm:"not null;uniqueIndex"`
	AnnualRate decimal.Decimal `gorm:"type:decimal(8,4);not null"`
}

// TableName returns the table name for GORM
func (InterestRate) TableName() string {
	return "interest_rates"
}

// NewInterestRate creates a rate table entry
func NewInterestRate(termMonths int, annualRate decimal.Decimal) (*InterestRate, error) {
	if termMonths <= 0 {
		return nil, shared.NewDomainError("INVALID_TERM", "Term must be at least one month")
	}
	if annualRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Interest rate cannot be negative")
	}
	return &InterestRate{
		BaseEntity: shared.NewBaseEntity(),
		TermMonths: termMonths,
		AnnualRate: annualRate,
	}, nil
}

// UpdateRate changes the offered rate
func (r *InterestRate) UpdateRate(annualRate decimal.Decimal) error {
	if annualRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Interest rate cannot be negative")
	}
	r.AnnualRate = annualRate
	r.UpdatedAt = time.Now()
	return nil
}
