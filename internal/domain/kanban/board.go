package kanban

import (
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Board is the aggregate root of the kanban hierarchy.
// Deleting a board cascades to its columns, cards and tasks.
type Board struct {
	shared.BaseAggregateRoot
	Name      string    `gorm:"type:varchar(200);not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Board) TableName() string {
	return "kanban_boards"
}

// NewBoard creates a new kanban board
func NewBoard(createdBy uuid.UUID, name string) (*Board, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Board name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Board name cannot exceed 200 characters")
	}
	return &Board{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CreatedBy:         createdBy,
	}, nil
}

// Rename changes the board name
func (b *Board) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Board name cannot be empty")
	}
	b.Name = name
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Column is an ordered lane within a board
type Column struct {
	shared.BaseEntity
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(200);not null"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Column) TableName() string {
	return "kanban_columns"
}

// NewColumn creates a column at the given position
func NewColumn(boardID uuid.UUID, name string, position int) (*Column, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Column name cannot be empty")
	}
	if position < 0 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position cannot be negative")
	}
	return &Column{
		BaseEntity: shared.NewBaseEntity(),
		BoardID:    boardID,
		Name:       name,
		Position:   position,
	}, nil
}
