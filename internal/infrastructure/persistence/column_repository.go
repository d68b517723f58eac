package persistence

import (
	"context"
	"errors"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/kanban"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormColumnRepository implements ColumnRepository using GORM
type GormColumnRepository struct {
	db *gorm.DB
}

// NewGormColumnRepository creates a new GormColumnRepository
func NewGormColumnRepository(db *gorm.DB) *GormColumnRepository {
	return &GormColumnRepository{db: db}
}

// FindByID finds a column by its ID
func (r *GormColumnRepository) FindByID(ctx context.Context, id uuid.UUID) (*kanban.Column, error) {
	var column kanban.Column
	if err := r.db.WithContext(ctx).First(&column, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &column, nil
}

// FindByBoard finds a board's columns in display order
func (r *GormColumnRepository) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]kanban.Column, error) {
	var columns []kanban.Column
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Save creates or updates a column
func (r *GormColumnRepository) Save(ctx context.Context, column *kanban.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

// Delete deletes a column
func (r *GormColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&kanban.Column{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormColumnRepository implements ColumnRepository
var _ kanban.ColumnRepository = (*GormColumnRepository)(nil)
