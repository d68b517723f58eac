package kanban

import (
	"context"
	"errors"
	"testing"

	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/kanban"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*kanban.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kanban.Board), args.Error(1)
}

func (m *MockBoardRepository) FindAll(ctx context.Context) ([]kanban.Board, error) {
	args := m.Called(ctx)
	return args.Get(0).([]kanban.Board), args.Error(1)
}

func (m *MockBoardRepository) Save(ctx context.Context, board *kanban.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockColumnRepository is a mock implementation of ColumnRepository
type MockColumnRepository struct {
	mock.Mock
}

func (m *MockColumnRepository) FindByID(ctx context.Context, id uuid.UUID) (*kanban.Column, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kanban.Column), args.Error(1)
}

func (m *MockColumnRepository) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]kanban.Column, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).([]kanban.Column), args.Error(1)
}

func (m *MockColumnRepository) Save(ctx context.Context, column *kanban.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*kanban.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kanban.Card), args.Error(1)
}

func (m *MockCardRepository) FindByColumns(ctx context.Context, columnIDs []uuid.UUID) ([]kanban.Card, error) {
	args := m.Called(ctx, columnIDs)
	return args.Get(0).([]kanban.Card), args.Error(1)
}

func (m *MockCardRepository) Save(ctx context.Context, card *kanban.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) SavePlacements(ctx context.Context, placements []kanban.Placement) error {
	args := m.Called(ctx, placements)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]kanban.Task, error) {
	args := m.Called(ctx, cardID)
	return args.Get(0).([]kanban.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*kanban.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kanban.Task), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *kanban.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type serviceMocks struct {
	boards   *MockBoardRepository
	columns  *MockColumnRepository
	cards    *MockCardRepository
	tasks    *MockTaskRepository
	notifier *notification.Service
}

func newBoardService() (*BoardService, *serviceMocks) {
	mocks := &serviceMocks{
		boards:   new(MockBoardRepository),
		columns:  new(MockColumnRepository),
		cards:    new(MockCardRepository),
		tasks:    new(MockTaskRepository),
		notifier: notification.NewService(nil, zap.NewNop()),
	}
	svc := NewBoardService(mocks.boards, mocks.columns, mocks.cards, mocks.tasks, mocks.notifier, zap.NewNop())
	return svc, mocks
}

func makeCard(t *testing.T, columnID uuid.UUID, title string, position int) kanban.Card {
	t.Helper()
	card, err := kanban.NewCard(columnID, title, position)
	require.NoError(t, err)
	return *card
}

func TestCreateBoardSeedsDefaultColumns(t *testing.T) {
	svc, mocks := newBoardService()
	owner := uuid.New()

	mocks.boards.On("Save", mock.Anything, mock.AnythingOfType("*kanban.Board")).Return(nil)
	mocks.columns.On("Save", mock.Anything, mock.AnythingOfType("*kanban.Column")).Return(nil)

	resp, err := svc.CreateBoard(context.Background(), owner, CreateBoardRequest{Name: "Renewals"})
	require.NoError(t, err)
	assert.Equal(t, "Renewals", resp.Name)
	assert.Equal(t, owner, resp.CreatedBy)

	mocks.columns.AssertNumberOfCalls(t, "Save", 3)
}

func TestGetBoardAssemblesTree(t *testing.T) {
	svc, mocks := newBoardService()
	owner := uuid.New()

	board, err := kanban.NewBoard(owner, "Renewals")
	require.NoError(t, err)
	todo, err := kanban.NewColumn(board.ID, "To Do", 0)
	require.NoError(t, err)
	done, err := kanban.NewColumn(board.ID, "Done", 1)
	require.NoError(t, err)

	cardA := makeCard(t, todo.ID, "Call the Smiths", 0)
	cardB := makeCard(t, done.ID, "File renewal", 0)
	task, err := kanban.NewTask(cardA.ID, "Find the number", 0)
	require.NoError(t, err)

	mocks.boards.On("FindByID", mock.Anything, board.ID).Return(board, nil)
	mocks.columns.On("FindByBoard", mock.Anything, board.ID).Return([]kanban.Column{*todo, *done}, nil)
	mocks.cards.On("FindByColumns", mock.Anything, []uuid.UUID{todo.ID, done.ID}).Return([]kanban.Card{cardA, cardB}, nil)
	mocks.tasks.On("FindByCard", mock.Anything, cardA.ID).Return([]kanban.Task{*task}, nil)
	mocks.tasks.On("FindByCard", mock.Anything, cardB.ID).Return([]kanban.Task{}, nil)

	detail, err := svc.GetBoard(context.Background(), board.ID)
	require.NoError(t, err)
	require.Len(t, detail.Columns, 2)
	require.Len(t, detail.Columns[0].Cards, 1)
	assert.Equal(t, "Call the Smiths", detail.Columns[0].Cards[0].Title)
	require.Len(t, detail.Columns[0].Cards[0].Tasks, 1)
	assert.Equal(t, "Find the number", detail.Columns[0].Cards[0].Tasks[0].Title)
	require.Len(t, detail.Columns[1].Cards, 1)
	assert.Empty(t, detail.Columns[1].Cards[0].Tasks)
}

func TestMoveCardAcrossColumns(t *testing.T) {
	svc, mocks := newBoardService()
	boardID := uuid.New()

	source, err := kanban.NewColumn(boardID, "To Do", 0)
	require.NoError(t, err)
	target, err := kanban.NewColumn(boardID, "In Progress", 1)
	require.NoError(t, err)

	moving := makeCard(t, source.ID, "Moving", 0)
	behind := makeCard(t, source.ID, "Behind", 1)
	resident := makeCard(t, target.ID, "Resident", 0)

	mocks.cards.On("FindByID", mock.Anything, moving.ID).Return(&moving, nil)
	mocks.columns.On("FindByID", mock.Anything, target.ID).Return(target, nil)
	mocks.cards.On("FindByColumns", mock.Anything, []uuid.UUID{source.ID, target.ID}).
		Return([]kanban.Card{moving, behind, resident}, nil)
	mocks.cards.On("SavePlacements", mock.Anything, mock.AnythingOfType("[]kanban.Placement")).Return(nil)

	resp, err := svc.MoveCard(context.Background(), moving.ID, MoveCardRequest{ToColumnID: target.ID, ToPosition: 0})
	require.NoError(t, err)

	byCard := make(map[uuid.UUID]PlacementResponse)
	for _, p := range resp.Changed {
		byCard[p.CardID] = p
	}
	// The moved card lands at the front of the target column
	assert.Equal(t, target.ID, byCard[moving.ID].ColumnID)
	assert.Equal(t, 0, byCard[moving.ID].Position)
	// The card behind it closes the gap
	assert.Equal(t, 0, byCard[behind.ID].Position)
	// The resident card shifts down
	assert.Equal(t, 1, byCard[resident.ID].Position)

	// The undo set restores the prior layout
	undoByCard := make(map[uuid.UUID]PlacementResponse)
	for _, p := range resp.Undo {
		undoByCard[p.CardID] = p
	}
	assert.Equal(t, source.ID, undoByCard[moving.ID].ColumnID)
	assert.Equal(t, 0, undoByCard[moving.ID].Position)
}

func TestMoveCardRestoresLayoutOnFailedWrite(t *testing.T) {
	svc, mocks := newBoardService()
	boardID := uuid.New()

	column, err := kanban.NewColumn(boardID, "To Do", 0)
	require.NoError(t, err)
	first := makeCard(t, column.ID, "First", 0)
	second := makeCard(t, column.ID, "Second", 1)

	mocks.cards.On("FindByID", mock.Anything, second.ID).Return(&second, nil)
	mocks.columns.On("FindByID", mock.Anything, column.ID).Return(column, nil)
	mocks.cards.On("FindByColumns", mock.Anything, []uuid.UUID{column.ID}).
		Return([]kanban.Card{first, second}, nil)
	mocks.cards.On("SavePlacements", mock.Anything, mock.AnythingOfType("[]kanban.Placement")).
		Return(errors.New("deadlock")).Once()
	mocks.cards.On("SavePlacements", mock.Anything, mock.AnythingOfType("[]kanban.Placement")).
		Return(nil).Once()

	_, err = svc.MoveCard(context.Background(), second.ID, MoveCardRequest{ToColumnID: column.ID, ToPosition: 0})
	require.Error(t, err)

	// First write failed, second is the restore
	mocks.cards.AssertNumberOfCalls(t, "SavePlacements", 2)
}

func TestMoveCardToSamePositionIsNoOp(t *testing.T) {
	svc, mocks := newBoardService()
	boardID := uuid.New()

	column, err := kanban.NewColumn(boardID, "To Do", 0)
	require.NoError(t, err)
	card := makeCard(t, column.ID, "Only", 0)

	mocks.cards.On("FindByID", mock.Anything, card.ID).Return(&card, nil)
	mocks.columns.On("FindByID", mock.Anything, column.ID).Return(column, nil)
	mocks.cards.On("FindByColumns", mock.Anything, []uuid.UUID{column.ID}).
		Return([]kanban.Card{card}, nil)

	resp, err := svc.MoveCard(context.Background(), card.ID, MoveCardRequest{ToColumnID: column.ID, ToPosition: 0})
	require.NoError(t, err)
	assert.Empty(t, resp.Changed)
	mocks.cards.AssertNotCalled(t, "SavePlacements")
}

func TestAssignCardNotifiesAssignee(t *testing.T) {
	svc, mocks := newBoardService()
	assignee := uuid.New()

	card := makeCard(t, uuid.New(), "Quarterly review", 0)
	mocks.cards.On("FindByID", mock.Anything, card.ID).Return(&card, nil)
	mocks.cards.On("Save", mock.Anything, mock.AnythingOfType("*kanban.Card")).Return(nil)

	resp, err := svc.AssignCard(context.Background(), card.ID, AssignCardRequest{AssigneeID: assignee})
	require.NoError(t, err)
	require.NotNil(t, resp.AssigneeID)
	assert.Equal(t, assignee, *resp.AssigneeID)

	feed := mocks.notifier.List(assignee)
	require.Len(t, feed, 1)
	assert.Equal(t, notification.KindCardAssigned, feed[0].Kind)
}

func TestDeleteColumnRejectsNonEmpty(t *testing.T) {
	svc, mocks := newBoardService()
	boardID := uuid.New()

	column, err := kanban.NewColumn(boardID, "To Do", 0)
	require.NoError(t, err)
	card := makeCard(t, column.ID, "Still here", 0)

	mocks.columns.On("FindByID", mock.Anything, column.ID).Return(column, nil)
	mocks.cards.On("FindByColumns", mock.Anything, []uuid.UUID{column.ID}).Return([]kanban.Card{card}, nil)

	err = svc.DeleteColumn(context.Background(), column.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "COLUMN_NOT_EMPTY", domainErr.Code)
	mocks.columns.AssertNotCalled(t, "Delete")
}

func TestDeleteCardClosesTheGap(t *testing.T) {
	svc, mocks := newBoardService()
	boardID := uuid.New()

	column, err := kanban.NewColumn(boardID, "To Do", 0)
	require.NoError(t, err)
	first := makeCard(t, column.ID, "First", 0)
	third := makeCard(t, column.ID, "Third", 2)

	deleted := makeCard(t, column.ID, "Second", 1)
	mocks.cards.On("FindByID", mock.Anything, deleted.ID).Return(&deleted, nil)
	mocks.cards.On("Delete", mock.Anything, deleted.ID).Return(nil)
	mocks.cards.On("FindByColumns", mock.Anything, []uuid.UUID{column.ID}).
		Return([]kanban.Card{first, third}, nil)
	mocks.cards.On("SavePlacements", mock.Anything, mock.MatchedBy(func(placements []kanban.Placement) bool {
		return len(placements) == 1 && placements[0].CardID == third.ID && placements[0].Position == 1
	})).Return(nil)

	err = svc.DeleteCard(context.Background(), deleted.ID)
	require.NoError(t, err)
	mocks.cards.AssertExpectations(t)
}

func TestToggleTask(t *testing.T) {
	svc, mocks := newBoardService()

	task, err := kanban.NewTask(uuid.New(), "Send the paperwork", 0)
	require.NoError(t, err)

	mocks.tasks.On("FindByID", mock.Anything, task.ID).Return(task, nil)
	mocks.tasks.On("Save", mock.Anything, mock.AnythingOfType("*kanban.Task")).Return(nil)

	resp, err := svc.ToggleTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.True(t, resp.Done)

	resp, err = svc.ToggleTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.False(t, resp.Done)
}
