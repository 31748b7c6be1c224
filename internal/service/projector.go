package service

import (
	"sort"

	"lunchline/internal/domain"
)

// ActiveStatuses is what the kitchen list works from; leaving this set
// (Delivered, Cancelled, Refunded) removes an order from the list, not
// from the store.
var ActiveStatuses = []domain.OrderStatus{domain.StatusConfirmed, domain.StatusInProgress}

// BoardStatuses is what the kanban board fetches. Pending is not
// fetched even though the first column is labelled for it.
var BoardStatuses = []domain.OrderStatus{
	domain.StatusConfirmed,
	domain.StatusInProgress,
	domain.StatusReady,
	domain.StatusDelivered,
}

type BoardColumn struct {
	Key    string         `json:"key"`
	Title  string         `json:"title"`
	Orders []domain.Order `json:"orders"`
}

type columnSpec struct {
	key      string
	title    string
	statuses []domain.OrderStatus
}

var boardColumns = []columnSpec{
	{"pending", "Pending / Confirmed", []domain.OrderStatus{domain.StatusPending, domain.StatusConfirmed}},
	{"inProgress", "In Progress", []domain.OrderStatus{domain.StatusInProgress}},
	{"ready", "Ready", []domain.OrderStatus{domain.StatusReady}},
	{"delivered", "Delivered", []domain.OrderStatus{domain.StatusDelivered}},
}

// ActiveList keeps only Confirmed/InProgress orders, oldest first.
func ActiveList(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		for _, s := range ActiveStatuses {
			if o.Status == s {
				out = append(out, o)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// KanbanBoard partitions orders into the fixed column set. An order
// whose status matches no column is dropped from the board.
func KanbanBoard(orders []domain.Order) []BoardColumn {
	cols := make([]BoardColumn, len(boardColumns))
	for i, spec := range boardColumns {
		cols[i] = BoardColumn{Key: spec.key, Title: spec.title, Orders: []domain.Order{}}
	}

	for _, o := range orders {
	columns:
		for i, spec := range boardColumns {
			for _, s := range spec.statuses {
				if o.Status == s {
					cols[i].Orders = append(cols[i].Orders, o)
					break columns
				}
			}
		}
	}

	for i := range cols {
		sort.SliceStable(cols[i].Orders, func(a, b int) bool {
			return cols[i].Orders[a].CreatedAt.Before(cols[i].Orders[b].CreatedAt)
		})
	}
	return cols
}
