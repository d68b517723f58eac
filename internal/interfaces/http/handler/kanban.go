package handler

import (
	kanbanapp "github.com/OpianKyle/opianrer-sub001/internal/application/kanban"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KanbanHandler handles board, column, card and task endpoints
type KanbanHandler struct {
	BaseHandler
	boardService *kanbanapp.BoardService
}

// NewKanbanHandler creates a new KanbanHandler
func NewKanbanHandler(boardService *kanbanapp.BoardService) *KanbanHandler {
	return &KanbanHandler{boardService: boardService}
}

// RegisterRoutes registers kanban routes
func (h *KanbanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	boards := rg.Group("/boards")
	{
		boards.POST("", h.CreateBoard)
		boards.GET("", h.ListBoards)
		boards.GET("/:id", h.GetBoard)
		boards.PUT("/:id", h.RenameBoard)
		boards.DELETE("/:id", h.DeleteBoard)
		boards.POST("/:id/columns", h.AddColumn)
	}

	columns := rg.Group("/columns")
	{
		columns.DELETE("/:id", h.DeleteColumn)
		columns.POST("/:id/cards", h.AddCard)
	}

	cards := rg.Group("/cards")
	{
		cards.PUT("/:id", h.UpdateCard)
		cards.PUT("/:id/assignee", h.AssignCard)
		cards.POST("/:id/move", h.MoveCard)
		cards.DELETE("/:id", h.DeleteCard)
		cards.POST("/:id/tasks", h.AddTask)
	}

	tasks := rg.Group("/tasks")
	{
		tasks.POST("/:id/toggle", h.ToggleTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}

// CreateBoard creates a board seeded with the default columns
func (h *KanbanHandler) CreateBoard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req kanbanapp.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, board)
}

// ListBoards returns all boards
func (h *KanbanHandler) ListBoards(c *gin.Context) {
	boards, err := h.boardService.ListBoards(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, boards)
}

// GetBoard returns a board with its full column/card/task tree
func (h *KanbanHandler) GetBoard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid board ID format")
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, board)
}

// RenameBoard renames a board
func (h *KanbanHandler) RenameBoard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid board ID format")
		return
	}

	var req kanbanapp.RenameBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	board, err := h.boardService.RenameBoard(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, board)
}

// DeleteBoard deletes a board and everything on it
func (h *KanbanHandler) DeleteBoard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid board ID format")
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddColumn appends a column to a board
func (h *KanbanHandler) AddColumn(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid board ID format")
		return
	}

	var req kanbanapp.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	column, err := h.boardService.AddColumn(c.Request.Context(), boardID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, column)
}

// DeleteColumn removes an empty column
func (h *KanbanHandler) DeleteColumn(c *gin.Context) {
	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid column ID format")
		return
	}

	if err := h.boardService.DeleteColumn(c.Request.Context(), columnID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddCard appends a card to a column
func (h *KanbanHandler) AddCard(c *gin.Context) {
	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid column ID format")
		return
	}

	var req kanbanapp.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	card, err := h.boardService.AddCard(c.Request.Context(), columnID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, card)
}

// UpdateCard changes a card's title and description
func (h *KanbanHandler) UpdateCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID format")
		return
	}

	var req kanbanapp.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	card, err := h.boardService.UpdateCard(c.Request.Context(), cardID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, card)
}

// AssignCard assigns a card to a user and notifies them
func (h *KanbanHandler) AssignCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID format")
		return
	}

	var req kanbanapp.AssignCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	card, err := h.boardService.AssignCard(c.Request.Context(), cardID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, card)
}

// MoveCard moves a card within or across columns. The response carries
// both the changed placements and the placements that revert them.
func (h *KanbanHandler) MoveCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID format")
		return
	}

	var req kanbanapp.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.boardService.MoveCard(c.Request.Context(), cardID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteCard removes a card and renumbers its column
func (h *KanbanHandler) DeleteCard(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID format")
		return
	}

	if err := h.boardService.DeleteCard(c.Request.Context(), cardID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddTask appends a checklist task to a card
func (h *KanbanHandler) AddTask(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID format")
		return
	}

	var req kanbanapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.boardService.AddTask(c.Request.Context(), cardID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, task)
}

// ToggleTask flips a task between done and not done
func (h *KanbanHandler) ToggleTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := h.boardService.ToggleTask(c.Request.Context(), taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// DeleteTask removes a checklist task
func (h *KanbanHandler) DeleteTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	if err := h.boardService.DeleteTask(c.Request.Context(), taskID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
