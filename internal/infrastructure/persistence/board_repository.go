package persistence

import (
	"context"
	"errors"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/kanban"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBoardRepository implements BoardRepository using GORM
type GormBoardRepository struct {
	db *gorm.DB
}

// NewGormBoardRepository creates a new GormBoardRepository
func NewGormBoardRepository(db *gorm.DB) *GormBoardRepository {
	return &GormBoardRepository{db: db}
}

// FindByID finds a board by its ID
func (r *GormBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*kanban.Board, error) {
	var board kanban.Board
	if err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &board, nil
}

// FindAll finds every board, newest first
func (r *GormBoardRepository) FindAll(ctx context.Context) ([]kanban.Board, error) {
	var boards []kanban.Board
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Save creates or updates a board
func (r *GormBoardRepository) Save(ctx context.Context, board *kanban.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// DeleteCascade removes the board, its columns, their cards and the cards'
// tasks in a single transaction.
func (r *GormBoardRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var columnIDs []uuid.UUID
		if err := tx.Model(&kanban.Column{}).
			Where("board_id = ?", id).
			Pluck("id", &columnIDs).Error; err != nil {
			return err
		}

		if len(columnIDs) > 0 {
			var cardIDs []uuid.UUID
			if err := tx.Model(&kanban.Card{}).
				Where("column_id IN ?", columnIDs).
				Pluck("id", &cardIDs).Error; err != nil {
				return err
			}
			if len(cardIDs) > 0 {
				if err := tx.Delete(&kanban.Task{}, "card_id IN ?", cardIDs).Error; err != nil {
					return err
				}
				if err := tx.Delete(&kanban.Card{}, "id IN ?", cardIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&kanban.Column{}, "id IN ?", columnIDs).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&kanban.Board{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormBoardRepository implements BoardRepository
var _ kanban.BoardRepository = (*GormBoardRepository)(nil)
