package kanban

import (
	"context"
	"fmt"

	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/kanban"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BoardService handles kanban board operations
type BoardService struct {
	boardRepo  kanban.BoardRepository
	columnRepo kanban.ColumnRepository
	cardRepo   kanban.CardRepository
	taskRepo   kanban.TaskRepository
	notifier   *notification.Service
	logger     *zap.Logger
}

// NewBoardService creates a new BoardService
func NewBoardService(
	boardRepo kanban.BoardRepository,
	columnRepo kanban.ColumnRepository,
	cardRepo kanban.CardRepository,
	taskRepo kanban.TaskRepository,
	notifier *notification.Service,
	logger *zap.Logger,
) *BoardService {
	return &BoardService{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		cardRepo:   cardRepo,
		taskRepo:   taskRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// CreateBoard creates a board with the default three columns
func (s *BoardService) CreateBoard(ctx context.Context, createdBy uuid.UUID, req CreateBoardRequest) (*BoardResponse, error) {
	board, err := kanban.NewBoard(createdBy, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return nil, err
	}

	for i, name := range []string{"To Do", "In Progress", "Done"} {
		column, err := kanban.NewColumn(board.ID, name, i)
		if err != nil {
			return nil, err
		}
		if err := s.columnRepo.Save(ctx, column); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("name", board.Name))

	response := ToBoardResponse(board)
	return &response, nil
}

// ListBoards returns every board
func (s *BoardService) ListBoards(ctx context.Context) ([]BoardResponse, error) {
	boards, err := s.boardRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]BoardResponse, len(boards))
	for i := range boards {
		responses[i] = ToBoardResponse(&boards[i])
	}
	return responses, nil
}

// GetBoard returns a board with its columns, cards and checklist tasks
func (s *BoardService) GetBoard(ctx context.Context, id uuid.UUID) (*BoardDetailResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	columns, err := s.columnRepo.FindByBoard(ctx, id)
	if err != nil {
		return nil, err
	}

	columnIDs := make([]uuid.UUID, len(columns))
	for i := range columns {
		columnIDs[i] = columns[i].ID
	}
	cards := []kanban.Card{}
	if len(columnIDs) > 0 {
		cards, err = s.cardRepo.FindByColumns(ctx, columnIDs)
		if err != nil {
			return nil, err
		}
	}

	detail := &BoardDetailResponse{
		BoardResponse: ToBoardResponse(board),
		Columns:       make([]ColumnResponse, len(columns)),
	}
	byColumn := make(map[uuid.UUID][]CardResponse)
	for i := range cards {
		card := ToCardResponse(&cards[i])
		tasks, err := s.taskRepo.FindByCard(ctx, cards[i].ID)
		if err != nil {
			return nil, err
		}
		for j := range tasks {
			card.Tasks = append(card.Tasks, ToTaskResponse(&tasks[j]))
		}
		byColumn[cards[i].ColumnID] = append(byColumn[cards[i].ColumnID], card)
	}
	for i := range columns {
		column := ToColumnResponse(&columns[i])
		if cards, ok := byColumn[columns[i].ID]; ok {
			column.Cards = cards
		}
		detail.Columns[i] = column
	}
	return detail, nil
}

// RenameBoard changes a board name
func (s *BoardService) RenameBoard(ctx context.Context, id uuid.UUID, req RenameBoardRequest) (*BoardResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := board.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.boardRepo.Save(ctx, board); err != nil {
		return nil, err
	}
	response := ToBoardResponse(board)
	return &response, nil
}

// DeleteBoard removes a board together with its columns, cards and tasks
func (s *BoardService) DeleteBoard(ctx context.Context, id uuid.UUID) error {
	if _, err := s.boardRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.boardRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Board deleted", zap.String("board_id", id.String()))
	return nil
}

// AddColumn appends a column at the end of the board
func (s *BoardService) AddColumn(ctx context.Context, boardID uuid.UUID, req CreateColumnRequest) (*ColumnResponse, error) {
	if _, err := s.boardRepo.FindByID(ctx, boardID); err != nil {
		return nil, err
	}
	existing, err := s.columnRepo.FindByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	column, err := kanban.NewColumn(boardID, req.Name, len(existing))
	if err != nil {
		return nil, err
	}
	if err := s.columnRepo.Save(ctx, column); err != nil {
		return nil, err
	}
	response := ToColumnResponse(column)
	return &response, nil
}

// DeleteColumn removes an empty column
func (s *BoardService) DeleteColumn(ctx context.Context, columnID uuid.UUID) error {
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return err
	}
	cards, err := s.cardRepo.FindByColumns(ctx, []uuid.UUID{column.ID})
	if err != nil {
		return err
	}
	if len(cards) > 0 {
		return shared.NewDomainError("COLUMN_NOT_EMPTY", "Move or delete the column's cards first")
	}
	return s.columnRepo.Delete(ctx, columnID)
}

// AddCard appends a card at the end of the column
func (s *BoardService) AddCard(ctx context.Context, columnID uuid.UUID, req CreateCardRequest) (*CardResponse, error) {
	column, err := s.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	existing, err := s.cardRepo.FindByColumns(ctx, []uuid.UUID{column.ID})
	if err != nil {
		return nil, err
	}
	card, err := kanban.NewCard(column.ID, req.Title, len(existing))
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := card.Update(req.Title, req.Description); err != nil {
			return nil, err
		}
	}
	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}
	response := ToCardResponse(card)
	return &response, nil
}

// UpdateCard sets a card's title and description
func (s *BoardService) UpdateCard(ctx context.Context, cardID uuid.UUID, req UpdateCardRequest) (*CardResponse, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := card.Update(req.Title, req.Description); err != nil {
		return nil, err
	}
	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}
	response := ToCardResponse(card)
	return &response, nil
}

// AssignCard assigns a card to a user and notifies them
func (s *BoardService) AssignCard(ctx context.Context, cardID uuid.UUID, req AssignCardRequest) (*CardResponse, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	card.Assign(req.AssigneeID)
	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, req.AssigneeID, notification.KindCardAssigned,
		"Card assigned to you",
		fmt.Sprintf("You were assigned %q", card.Title),
		map[string]interface{}{"card_id": card.ID.String()})

	response := ToCardResponse(card)
	return &response, nil
}

// DeleteCard removes a card and renumbers the column it leaves
func (s *BoardService) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return err
	}
	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		return err
	}

	remaining, err := s.cardRepo.FindByColumns(ctx, []uuid.UUID{card.ColumnID})
	if err != nil {
		return err
	}
	var placements []kanban.Placement
	for i := range remaining {
		if remaining[i].Position != i {
			placements = append(placements, kanban.Placement{
				CardID:   remaining[i].ID,
				ColumnID: remaining[i].ColumnID,
				Position: i,
			})
		}
	}
	if len(placements) > 0 {
		return s.cardRepo.SavePlacements(ctx, placements)
	}
	return nil
}

// MoveCard re-homes a card to a column and position. The affected columns
// are renumbered so positions stay contiguous; on a failed write the prior
// layout is restored best-effort and the undo set is still handed back so
// an optimistic client can revert its rendering.
func (s *BoardService) MoveCard(ctx context.Context, cardID uuid.UUID, req MoveCardRequest) (*MoveResponse, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.columnRepo.FindByID(ctx, req.ToColumnID); err != nil {
		return nil, err
	}

	columnIDs := []uuid.UUID{card.ColumnID}
	if req.ToColumnID != card.ColumnID {
		columnIDs = append(columnIDs, req.ToColumnID)
	}
	cards, err := s.cardRepo.FindByColumns(ctx, columnIDs)
	if err != nil {
		return nil, err
	}

	command, err := kanban.NewMoveCommand(cardID, req.ToColumnID, req.ToPosition)
	if err != nil {
		return nil, err
	}
	changed, err := command.Apply(cards)
	if err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		return &MoveResponse{Changed: []PlacementResponse{}, Undo: []PlacementResponse{}}, nil
	}

	if err := s.cardRepo.SavePlacements(ctx, changed); err != nil {
		s.logger.Error("Failed to persist card move, restoring layout",
			zap.String("card_id", cardID.String()),
			zap.Error(err))
		if undoErr := s.cardRepo.SavePlacements(ctx, command.Undo()); undoErr != nil {
			s.logger.Error("Failed to restore layout after move", zap.Error(undoErr))
		}
		return nil, err
	}

	s.logger.Info("Card moved",
		zap.String("card_id", cardID.String()),
		zap.String("to_column_id", req.ToColumnID.String()),
		zap.Int("to_position", req.ToPosition))

	return &MoveResponse{
		Changed: toPlacementResponses(changed),
		Undo:    toPlacementResponses(command.Undo()),
	}, nil
}

// AddTask appends a checklist task to a card
func (s *BoardService) AddTask(ctx context.Context, cardID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	if _, err := s.cardRepo.FindByID(ctx, cardID); err != nil {
		return nil, err
	}
	existing, err := s.taskRepo.FindByCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	task, err := kanban.NewTask(cardID, req.Title, len(existing))
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	response := ToTaskResponse(task)
	return &response, nil
}

// ToggleTask flips a checklist task's done flag
func (s *BoardService) ToggleTask(ctx context.Context, taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task.Toggle()
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	response := ToTaskResponse(task)
	return &response, nil
}

// DeleteTask removes a checklist task
func (s *BoardService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, taskID)
}
