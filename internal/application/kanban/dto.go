package kanban

import (
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/kanban"
	"github.com/google/uuid"
)

// CreateBoardRequest represents a request to create a board
type CreateBoardRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// RenameBoardRequest represents a request to rename a board
type RenameBoardRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// CreateColumnRequest represents a request to add a column to a board
type CreateColumnRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// CreateCardRequest represents a request to add a card to a column
type CreateCardRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description"`
}

// UpdateCardRequest represents a request to update a card
type UpdateCardRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description"`
}

// AssignCardRequest represents a request to assign a card to a user
type AssignCardRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id" binding:"required"`
}

// MoveCardRequest represents a request to move a card
type MoveCardRequest struct {
	ToColumnID uuid.UUID `json:"to_column_id" binding:"required"`
	ToPosition int       `json:"to_position" binding:"min=0"`
}

// CreateTaskRequest represents a request to add a checklist task to a card
type CreateTaskRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
}

// BoardResponse represents a board in API responses
type BoardResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardDetailResponse is a board with its full column/card/task tree
type BoardDetailResponse struct {
	BoardResponse
	Columns []ColumnResponse `json:"columns"`
}

// ColumnResponse represents a column and its ordered cards
type ColumnResponse struct {
	ID       uuid.UUID      `json:"id"`
	BoardID  uuid.UUID      `json:"board_id"`
	Name     string         `json:"name"`
	Position int            `json:"position"`
	Cards    []CardResponse `json:"cards"`
}

// CardResponse represents a card in API responses
type CardResponse struct {
	ID          uuid.UUID      `json:"id"`
	ColumnID    uuid.UUID      `json:"column_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Position    int            `json:"position"`
	AssigneeID  *uuid.UUID     `json:"assignee_id"`
	Tasks       []TaskResponse `json:"tasks,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TaskResponse represents a checklist task in API responses
type TaskResponse struct {
	ID       uuid.UUID `json:"id"`
	CardID   uuid.UUID `json:"card_id"`
	Title    string    `json:"title"`
	Done     bool      `json:"done"`
	Position int       `json:"position"`
}

// PlacementResponse is one card's column/position after a move
type PlacementResponse struct {
	CardID   uuid.UUID `json:"card_id"`
	ColumnID uuid.UUID `json:"column_id"`
	Position int       `json:"position"`
}

// MoveResponse reports the placements a move changed together with the
// placements that revert it, so an optimistic client can roll back.
type MoveResponse struct {
	Changed []PlacementResponse `json:"changed"`
	Undo    []PlacementResponse `json:"undo"`
}

// ToBoardResponse converts a domain board to a response DTO
func ToBoardResponse(b *kanban.Board) BoardResponse {
	return BoardResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToColumnResponse converts a domain column to a response DTO
func ToColumnResponse(c *kanban.Column) ColumnResponse {
	return ColumnResponse{
		ID:       c.ID,
		BoardID:  c.BoardID,
		Name:     c.Name,
		Position: c.Position,
		Cards:    []CardResponse{},
	}
}

// ToCardResponse converts a domain card to a response DTO
func ToCardResponse(c *kanban.Card) CardResponse {
	return CardResponse{
		ID:          c.ID,
		ColumnID:    c.ColumnID,
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		AssigneeID:  c.AssigneeID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToTaskResponse converts a domain task to a response DTO
func ToTaskResponse(t *kanban.Task) TaskResponse {
	return TaskResponse{
		ID:       t.ID,
		CardID:   t.CardID,
		Title:    t.Title,
		Done:     t.Done,
		Position: t.Position,
	}
}

func toPlacementResponses(placements []kanban.Placement) []PlacementResponse {
	responses := make([]PlacementResponse, len(placements))
	for i, p := range placements {
		responses[i] = PlacementResponse{CardID: p.CardID, ColumnID: p.ColumnID, Position: p.Position}
	}
	return responses
}
