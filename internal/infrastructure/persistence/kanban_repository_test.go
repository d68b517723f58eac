package persistence

import (
	"context"
	"testing"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/kanban"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedBoard(t *testing.T, db *gorm.DB) (*kanban.Board, *kanban.Column, *kanban.Column) {
	t.Helper()
	ctx := context.Background()

	boards := NewGormBoardRepository(db)
	columns := NewGormColumnRepository(db)

	board, err := kanban.NewBoard(uuid.New(), "Pipeline")
	require.NoError(t, err)
	require.NoError(t, boards.Save(ctx, board))

	todo, err := kanban.NewColumn(board.ID, "To Do", 0)
	require.NoError(t, err)
	require.NoError(t, columns.Save(ctx, todo))

	doing, err := kanban.NewColumn(board.ID, "In Progress", 1)
	require.NoError(t, err)
	require.NoError(t, columns.Save(ctx, doing))

	return board, todo, doing
}

func seedCard(t *testing.T, db *gorm.DB, columnID uuid.UUID, title string, position int) *kanban.Card {
	t.Helper()
	card, err := kanban.NewCard(columnID, title, position)
	require.NoError(t, err)
	require.NoError(t, NewGormCardRepository(db).Save(context.Background(), card))
	return card
}

func TestGormBoardRepository_DeleteCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	boards := NewGormBoardRepository(db)
	columns := NewGormColumnRepository(db)
	cards := NewGormCardRepository(db)
	tasks := NewGormTaskRepository(db)

	board, todo, doing := seedBoard(t, db)
	card := seedCard(t, db, todo.ID, "Call back", 0)
	seedCard(t, db, doing.ID, "Renewal", 0)

	task, err := kanban.NewTask(card.ID, "Find the file", 0)
	require.NoError(t, err)
	require.NoError(t, tasks.Save(ctx, task))

	require.NoError(t, boards.DeleteCascade(ctx, board.ID))

	_, err = boards.FindByID(ctx, board.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	remaining, err := columns.FindByBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	orphans, err := cards.FindByColumns(ctx, []uuid.UUID{todo.ID, doing.ID})
	require.NoError(t, err)
	assert.Empty(t, orphans)

	_, err = tasks.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormBoardRepository_DeleteCascadeUnknownBoard(t *testing.T) {
	db := newTestDB(t)

	err := NewGormBoardRepository(db).DeleteCascade(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCardRepository_SavePlacements(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cards := NewGormCardRepository(db)

	_, todo, doing := seedBoard(t, db)
	first := seedCard(t, db, todo.ID, "First", 0)
	second := seedCard(t, db, todo.ID, "Second", 1)

	err := cards.SavePlacements(ctx, []kanban.Placement{
		{CardID: first.ID, ColumnID: doing.ID, Position: 0},
		{CardID: second.ID, ColumnID: todo.ID, Position: 0},
	})
	require.NoError(t, err)

	moved, err := cards.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, doing.ID, moved.ColumnID)
	assert.Equal(t, 0, moved.Position)

	stayed, err := cards.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, stayed.ColumnID)
	assert.Equal(t, 0, stayed.Position)
}

func TestGormCardRepository_SavePlacementsUnknownCardRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cards := NewGormCardRepository(db)

	_, todo, doing := seedBoard(t, db)
	card := seedCard(t, db, todo.ID, "Only", 0)

	err := cards.SavePlacements(ctx, []kanban.Placement{
		{CardID: card.ID, ColumnID: doing.ID, Position: 0},
		{CardID: uuid.New(), ColumnID: doing.ID, Position: 1},
	})
	require.Error(t, err)

	// The first update rolled back with the failed batch
	unchanged, err := cards.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, unchanged.ColumnID)
}

func TestGormCardRepository_FindByColumnsOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cards := NewGormCardRepository(db)

	_, todo, _ := seedBoard(t, db)
	seedCard(t, db, todo.ID, "Third", 2)
	seedCard(t, db, todo.ID, "First", 0)
	seedCard(t, db, todo.ID, "Second", 1)

	loaded, err := cards.FindByColumns(ctx, []uuid.UUID{todo.ID})
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "First", loaded[0].Title)
	assert.Equal(t, "Second", loaded[1].Title)
	assert.Equal(t, "Third", loaded[2].Title)
}
