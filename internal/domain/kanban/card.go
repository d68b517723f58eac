package kanban

import (
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Card is an ordered work item within a column
type Card struct {
	shared.BaseEntity
	ColumnID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	Position    int        `gorm:"not null;default:0"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Card) TableName() string {
	return "kanban_cards"
}

// NewCard creates a card at the given position
func NewCard(columnID uuid.UUID, title string, position int) (*Card, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Card title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Card title cannot exceed 200 characters")
	}
	if position < 0 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position cannot be negative")
	}
	return &Card{
		BaseEntity: shared.NewBaseEntity(),
		ColumnID:   columnID,
		Title:      title,
		Position:   position,
	}, nil
}

// Update sets title and description
func (c *Card) Update(title, description string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Card title cannot be empty")
	}
	c.Title = title
	c.Description = description
	c.Touch()
	return nil
}

// Assign assigns the card to a user
func (c *Card) Assign(userID uuid.UUID) {
	c.AssigneeID = &userID
	c.Touch()
}

// Task is a checklist entry on a card
type Task struct {
	shared.BaseEntity
	CardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title    string    `gorm:"type:varchar(200);not null"`
	Done     bool      `gorm:"not null;default:false"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "kanban_tasks"
}

// NewTask creates a checklist task on a card
func NewTask(cardID uuid.UUID, title string, position int) (*Task, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Task title cannot be empty")
	}
	return &Task{
		BaseEntity: shared.NewBaseEntity(),
		CardID:     cardID,
		Title:      title,
		Position:   position,
	}, nil
}

// Toggle flips the done flag
func (t *Task) Toggle() {
	t.Done = !t.Done
	t.UpdatedAt = time.Now()
}
