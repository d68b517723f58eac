package kanban

import (
	"sort"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Placement is a card's location snapshot used for undo
type Placement struct {
	CardID   uuid.UUID
	ColumnID uuid.UUID
	Position int
}

// MoveCommand re-homes a card to a column/index and renumbers the affected
// columns so positions stay unique and contiguous. It carries an undo
// snapshot so a failed persistence write can restore the previous layout.
type MoveCommand struct {
	CardID       uuid.UUID
	ToColumnID   uuid.UUID
	ToPosition   int
	undoSnapshot []Placement
	applied      []Placement
}

// NewMoveCommand creates a move command for a card
func NewMoveCommand(cardID, toColumnID uuid.UUID, toPosition int) (*MoveCommand, error) {
	if toPosition < 0 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position cannot be negative")
	}
	return &MoveCommand{
		CardID:     cardID,
		ToColumnID: toColumnID,
		ToPosition: toPosition,
	}, nil
}

// Apply computes the new placements given every card of the source and
// target columns (the same slice when moving within one column). The input
// cards are not mutated; the result lists every card whose column or
// position changed.
func (m *MoveCommand) Apply(cards []Card) ([]Placement, error) {
	var moving *Card
	for i := range cards {
		if cards[i].ID == m.CardID {
			moving = &cards[i]
			break
		}
	}
	if moving == nil {
		return nil, shared.ErrNotFound
	}

	m.undoSnapshot = snapshot(cards)

	sameColumn := moving.ColumnID == m.ToColumnID
	source := collectColumn(cards, moving.ColumnID, m.CardID)
	target := source
	if !sameColumn {
		target = collectColumn(cards, m.ToColumnID, m.CardID)
	}

	index := m.ToPosition
	if index > len(target) {
		index = len(target)
	}
	entry := Placement{CardID: m.CardID, ColumnID: m.ToColumnID}
	inserted := make([]Placement, 0, len(target)+1)
	inserted = append(inserted, target[:index]...)
	inserted = append(inserted, entry)
	inserted = append(inserted, target[index:]...)
	renumber(inserted)

	resulting := inserted
	if !sameColumn {
		renumber(source)
		resulting = append(source, inserted...)
	}

	changed := diff(m.undoSnapshot, resulting)
	m.applied = changed
	return changed, nil
}

// Undo returns the prior placements for every card Apply moved
func (m *MoveCommand) Undo() []Placement {
	if len(m.applied) == 0 {
		return nil
	}
	previous := make(map[uuid.UUID]Placement, len(m.undoSnapshot))
	for _, p := range m.undoSnapshot {
		previous[p.CardID] = p
	}
	restored := make([]Placement, 0, len(m.applied))
	for _, p := range m.applied {
		restored = append(restored, previous[p.CardID])
	}
	return restored
}

func snapshot(cards []Card) []Placement {
	placements := make([]Placement, len(cards))
	for i, c := range cards {
		placements[i] = Placement{CardID: c.ID, ColumnID: c.ColumnID, Position: c.Position}
	}
	return placements
}

// collectColumn returns the column's cards as placements ordered by
// position, excluding the moving card.
func collectColumn(cards []Card, columnID, excludeID uuid.UUID) []Placement {
	var placements []Placement
	for _, c := range cards {
		if c.ColumnID == columnID && c.ID != excludeID {
			placements = append(placements, Placement{CardID: c.ID, ColumnID: c.ColumnID, Position: c.Position})
		}
	}
	sort.Slice(placements, func(i, j int) bool {
		return placements[i].Position < placements[j].Position
	})
	return placements
}

func renumber(placements []Placement) {
	for i := range placements {
		placements[i].Position = i
	}
}

func diff(before []Placement, after []Placement) []Placement {
	prior := make(map[uuid.UUID]Placement, len(before))
	for _, p := range before {
		prior[p.CardID] = p
	}
	var changed []Placement
	for _, p := range after {
		if old, ok := prior[p.CardID]; !ok || old != p {
			changed = append(changed, p)
		}
	}
	return changed
}
