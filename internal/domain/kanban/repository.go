package kanban

import (
	"context"

	"github.com/google/uuid"
)

// BoardRepository defines persistence operations for boards.
// DeleteCascade removes the board together with its columns, cards and
// tasks in one transaction.
type BoardRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Board, error)
	FindAll(ctx context.Context) ([]Board, error)
	Save(ctx context.Context, board *Board) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// ColumnRepository defines persistence operations for columns
type ColumnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Column, error)
	FindByBoard(ctx context.Context, boardID uuid.UUID) ([]Column, error)
	Save(ctx context.Context, column *Column) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CardRepository defines persistence operations for cards.
// FindByColumns loads every card of the given columns ordered by position;
// SavePlacements writes a batch of column/position changes atomically.
type CardRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Card, error)
	FindByColumns(ctx context.Context, columnIDs []uuid.UUID) ([]Card, error)
	Save(ctx context.Context, card *Card) error
	SavePlacements(ctx context.Context, placements []Placement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskRepository defines persistence operations for card tasks
type TaskRepository interface {
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	Save(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
