package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunchline/internal/domain"
)

func orderWithStatus(status domain.OrderStatus, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:        uuid.New(),
		Status:    status,
		CreatedAt: createdAt,
		Items:     []domain.OrderItem{},
	}
}

func TestActiveList(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newest := orderWithStatus(domain.StatusConfirmed, base.Add(2*time.Hour))
	oldest := orderWithStatus(domain.StatusInProgress, base)
	middle := orderWithStatus(domain.StatusConfirmed, base.Add(time.Hour))

	input := []domain.Order{
		newest,
		orderWithStatus(domain.StatusPending, base),
		oldest,
		orderWithStatus(domain.StatusReady, base),
		middle,
		orderWithStatus(domain.StatusDelivered, base),
		orderWithStatus(domain.StatusCancelled, base),
	}

	got := ActiveList(input)

	require.Len(t, got, 3)
	assert.Equal(t, oldest.ID, got[0].ID, "oldest active order comes first")
	assert.Equal(t, middle.ID, got[1].ID)
	assert.Equal(t, newest.ID, got[2].ID)
}

func TestKanbanBoardColumns(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	confirmed := orderWithStatus(domain.StatusConfirmed, base)
	inProgress := orderWithStatus(domain.StatusInProgress, base)
	ready := orderWithStatus(domain.StatusReady, base)
	delivered := orderWithStatus(domain.StatusDelivered, base)
	cancelled := orderWithStatus(domain.StatusCancelled, base)

	cols := KanbanBoard([]domain.Order{delivered, cancelled, ready, inProgress, confirmed})

	require.Len(t, cols, 4)
	assert.Equal(t, "Pending / Confirmed", cols[0].Title)
	require.Len(t, cols[0].Orders, 1)
	assert.Equal(t, confirmed.ID, cols[0].Orders[0].ID)

	require.Len(t, cols[1].Orders, 1)
	assert.Equal(t, inProgress.ID, cols[1].Orders[0].ID)

	require.Len(t, cols[2].Orders, 1)
	assert.Equal(t, ready.ID, cols[2].Orders[0].ID)

	require.Len(t, cols[3].Orders, 1)
	assert.Equal(t, delivered.ID, cols[3].Orders[0].ID, "delivered keeps its own column")

	for _, col := range cols {
		for _, o := range col.Orders {
			assert.NotEqual(t, cancelled.ID, o.ID, "cancelled orders are dropped from the board")
		}
	}
}

func TestKanbanBoardGroupsPendingWithConfirmed(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pending := orderWithStatus(domain.StatusPending, base)
	confirmed := orderWithStatus(domain.StatusConfirmed, base.Add(time.Minute))

	cols := KanbanBoard([]domain.Order{confirmed, pending})

	require.Len(t, cols[0].Orders, 2)
	assert.Equal(t, pending.ID, cols[0].Orders[0].ID)
	assert.Equal(t, confirmed.ID, cols[0].Orders[1].ID)
}

func TestKanbanBoardEmptyColumnsPresent(t *testing.T) {
	cols := KanbanBoard(nil)
	require.Len(t, cols, 4)
	for _, col := range cols {
		assert.NotNil(t, col.Orders)
		assert.Empty(t, col.Orders)
	}
}
