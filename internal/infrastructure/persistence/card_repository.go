package persistence

import (
	"context"
	"errors"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/kanban"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCardRepository implements CardRepository using GORM
type GormCardRepository struct {
	db *gorm.DB
}

// NewGormCardRepository creates a new GormCardRepository
func NewGormCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// FindByID finds a card by its ID
func (r *GormCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*kanban.Card, error) {
	var card kanban.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindByColumns loads every card of the given columns ordered by position
func (r *GormCardRepository) FindByColumns(ctx context.Context, columnIDs []uuid.UUID) ([]kanban.Card, error) {
	if len(columnIDs) == 0 {
		return []kanban.Card{}, nil
	}
	var cards []kanban.Card
	if err := r.db.WithContext(ctx).
		Where("column_id IN ?", columnIDs).
		Order("column_id, position ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// Save creates or updates a card
func (r *GormCardRepository) Save(ctx context.Context, card *kanban.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// SavePlacements writes a batch of column/position changes in one
// transaction so a board never persists a half-applied move.
func (r *GormCardRepository) SavePlacements(ctx context.Context, placements []kanban.Placement) error {
	if len(placements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range placements {
			result := tx.Model(&kanban.Card{}).
				Where("id = ?", p.CardID).
				Updates(map[string]interface{}{
					"column_id": p.ColumnID,
					"position":  p.Position,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
		}
		return nil
	})
}

// Delete deletes a card
func (r *GormCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&kanban.Card{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCardRepository implements CardRepository
var _ kanban.CardRepository = (*GormCardRepository)(nil)
