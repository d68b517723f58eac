package persistence

import (
	"context"
	"errors"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/finance"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInterestRateRepository implements InterestRateRepository using GORM
type GormInterestRateRepository struct {
	db *gorm.DB
}

// NewGormInterestRateRepository creates a new GormInterestRateRepository
func NewGormInterestRateRepository(db *gorm.DB) *GormInterestRateRepository {
	return &GormInterestRateRepository{db: db}
}

// FindAll returns the pricing table ordered by term
func (r *GormInterestRateRepository) FindAll(ctx context.Context) ([]finance.InterestRate, error) {
	var rates []finance.InterestRate
	if err := r.db.WithContext(ctx).
		Order("term_months ASC").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// FindByTerm finds the rate offered for a term
func (r *GormInterestRateRepository) FindByTerm(ctx context.Context, termMonths int) (*finance.InterestRate, error) {
	var rate finance.InterestRate
	if err := r.db.WithContext(ctx).
		Where("term_months = ?", termMonths).
		First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// Save creates or updates a rate table entry
func (r *GormInterestRateRepository) Save(ctx context.Context, rate *finance.InterestRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

// Ensure GormInterestRateRepository implements InterestRateRepository
var _ finance.InterestRateRepository = (*GormInterestRateRepository)(nil)
