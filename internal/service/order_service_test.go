package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunchline/internal/domain"
	"lunchline/internal/logger"
	"lunchline/internal/repository"
)

type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(q repository.Querier) error) error {
	f.calls++
	return fn(nil)
}

type stockEntry struct {
	name      string
	remaining int
}

type decrementCall struct {
	id  uuid.UUID
	qty int
}

type fakeLedger struct {
	stock map[uuid.UUID]*stockEntry
	calls []decrementCall
	err   error
}

func (f *fakeLedger) DecrementStock(ctx context.Context, q repository.Querier, id uuid.UUID, qty int) (domain.StockDecrement, error) {
	f.calls = append(f.calls, decrementCall{id: id, qty: qty})
	if f.err != nil {
		return domain.StockDecrement{}, f.err
	}
	entry, ok := f.stock[id]
	if !ok {
		return domain.StockDecrement{MenuItemID: id}, nil
	}
	if entry.remaining < qty {
		return domain.StockDecrement{
			MenuItemID: id,
			Name:       entry.name,
			Remaining:  entry.remaining,
		}, nil
	}
	entry.remaining -= qty
	return domain.StockDecrement{
		MenuItemID: id,
		Applied:    true,
		Name:       entry.name,
		Remaining:  entry.remaining,
	}, nil
}

type fakeOrderStore struct {
	inserted  []*domain.Order
	insertErr error

	byID      map[uuid.UUID]*domain.Order
	lastPatch *domain.OrderPatch
	listed    []domain.Order
}

func (f *fakeOrderStore) Insert(ctx context.Context, q repository.Querier, order *domain.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	order.ID = uuid.New()
	f.inserted = append(f.inserted, order)
	return nil
}

func (f *fakeOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if o, ok := f.byID[id]; ok {
		return o, nil
	}
	return nil, domain.NotFoundf("order not found")
}

func (f *fakeOrderStore) Update(ctx context.Context, id uuid.UUID, patch domain.OrderPatch) (*domain.Order, error) {
	f.lastPatch = &patch
	o, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFoundf("order not found")
	}
	updated := *o
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.AssignedTo.Set {
		updated.AssignedTo = patch.AssignedTo.Value
	}
	return &updated, nil
}

func (f *fakeOrderStore) ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	for _, o := range f.listed {
		for _, s := range statuses {
			if o.Status == s {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

type fakeEvents struct {
	created []*domain.Order
	updated []*domain.Order
}

func (f *fakeEvents) OrderCreated(ctx context.Context, o *domain.Order) {
	f.created = append(f.created, o)
}

func (f *fakeEvents) OrderUpdated(ctx context.Context, o *domain.Order) {
	f.updated = append(f.updated, o)
}

type fixture struct {
	tx     *fakeTx
	ledger *fakeLedger
	orders *fakeOrderStore
	events *fakeEvents
	svc    OrderServiceInterface
}

func newFixture() *fixture {
	f := &fixture{
		tx:     &fakeTx{},
		ledger: &fakeLedger{stock: map[uuid.UUID]*stockEntry{}},
		orders: &fakeOrderStore{byID: map[uuid.UUID]*domain.Order{}},
		events: &fakeEvents{},
	}
	f.svc = NewOrderService(f.tx, f.ledger, f.orders, f.events, logger.New("test"))
	return f
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
func ptrStr(v string) *string     { return &v }

func cartItem(id uuid.UUID, name string, qty int, price float64) domain.CartItem {
	return domain.CartItem{
		MenuItemID: id.String(),
		Name:       name,
		Quantity:   ptrInt(qty),
		Price:      ptrFloat(price),
	}
}

func TestPlaceOrderRejectsInvalidInput(t *testing.T) {
	itemID := uuid.New()

	tests := []struct {
		name string
		req  domain.PlaceOrderRequest
	}{
		{"empty items", domain.PlaceOrderRequest{TotalAmount: ptrFloat(10)}},
		{"missing total", domain.PlaceOrderRequest{
			Items: []domain.CartItem{cartItem(itemID, "Soup", 1, 5)},
		}},
		{"negative total", domain.PlaceOrderRequest{
			Items:       []domain.CartItem{cartItem(itemID, "Soup", 1, 5)},
			TotalAmount: ptrFloat(-1),
		}},
		{"malformed item id", domain.PlaceOrderRequest{
			Items:       []domain.CartItem{{MenuItemID: "not-a-uuid", Name: "Soup", Quantity: ptrInt(1), Price: ptrFloat(5)}},
			TotalAmount: ptrFloat(5),
		}},
		{"zero quantity", domain.PlaceOrderRequest{
			Items:       []domain.CartItem{cartItem(itemID, "Soup", 0, 5)},
			TotalAmount: ptrFloat(5),
		}},
		{"missing price", domain.PlaceOrderRequest{
			Items:       []domain.CartItem{{MenuItemID: itemID.String(), Name: "Soup", Quantity: ptrInt(1)}},
			TotalAmount: ptrFloat(5),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.PlaceOrder(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
			assert.Zero(t, f.tx.calls, "validation failures must not open a transaction")
			assert.Empty(t, f.orders.inserted)
		})
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	f := newFixture()
	okID, shortID := uuid.New(), uuid.New()
	f.ledger.stock[okID] = &stockEntry{name: "Lemonade", remaining: 10}
	f.ledger.stock[shortID] = &stockEntry{name: "Tiramisu", remaining: 1}

	_, err := f.svc.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Items: []domain.CartItem{
			cartItem(okID, "Lemonade", 1, 3.5),
			cartItem(shortID, "Tiramisu", 2, 6),
		},
		TotalAmount: ptrFloat(15.5),
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Tiramisu")
	assert.Contains(t, err.Error(), "Available: 1")
	assert.Empty(t, f.orders.inserted, "no order may be persisted when any decrement fails")
	assert.Empty(t, f.events.created)
}

func TestPlaceOrderUnknownItemReportedByCartLabel(t *testing.T) {
	f := newFixture()
	ghostID := uuid.New()

	_, err := f.svc.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Items:       []domain.CartItem{cartItem(ghostID, "Phantom Pie", 1, 4)},
		TotalAmount: ptrFloat(4),
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Phantom Pie")
	assert.Contains(t, err.Error(), "Available: 0")
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newFixture()
	idA, idB := uuid.New(), uuid.New()
	f.ledger.stock[idA] = &stockEntry{name: "Margherita Pizza", remaining: 5}
	f.ledger.stock[idB] = &stockEntry{name: "Iced Coffee", remaining: 8}

	order, err := f.svc.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Items: []domain.CartItem{
			cartItem(idA, "Margherita Pizza", 2, 11.5),
			cartItem(idB, "Iced Coffee", 1, 4),
		},
		CustomerName: "Dana",
		TotalAmount:  ptrFloat(27),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, order.Status)
	assert.True(t, order.PaymentReceived)
	assert.Nil(t, order.AssignedTo)
	assert.Equal(t, 27.0, order.TotalAmount, "caller-supplied total is stored verbatim")
	require.NotNil(t, order.CustomerName)
	assert.Equal(t, "Dana", *order.CustomerName)
	assert.Nil(t, order.CustomerPhone)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Margherita Pizza", order.Items[0].Name)
	assert.Equal(t, 11.5, order.Items[0].PricePerItem)

	require.Len(t, f.ledger.calls, 2)
	assert.Equal(t, decrementCall{id: idA, qty: 2}, f.ledger.calls[0])
	assert.Equal(t, decrementCall{id: idB, qty: 1}, f.ledger.calls[1])
	assert.Equal(t, 3, f.ledger.stock[idA].remaining)
	assert.Equal(t, 7, f.ledger.stock[idB].remaining)

	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.orders.inserted, 1)
	require.Len(t, f.events.created, 1)
	assert.Equal(t, order.ID, f.events.created[0].ID)
}

func TestPlaceOrderInsertFailurePropagates(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.ledger.stock[id] = &stockEntry{name: "Soup", remaining: 5}
	f.orders.insertErr = errors.New("boom")

	_, err := f.svc.PlaceOrder(context.Background(), domain.PlaceOrderRequest{
		Items:       []domain.CartItem{cartItem(id, "Soup", 1, 7)},
		TotalAmount: ptrFloat(7),
	})

	require.Error(t, err)
	assert.Empty(t, f.events.created)
}

func TestUpdateOrderRejectsInvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateOrder(context.Background(), "nope", domain.UpdateOrderRequest{
		Status: ptrStr("Ready"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = f.svc.UpdateOrder(context.Background(), uuid.New().String(), domain.UpdateOrderRequest{})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = f.svc.UpdateOrder(context.Background(), uuid.New().String(), domain.UpdateOrderRequest{
		Status: ptrStr("Banana"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Allowed statuses are")
	assert.Nil(t, f.orders.lastPatch, "invalid requests must not reach the store")
}

func TestUpdateOrderNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateOrder(context.Background(), uuid.New().String(), domain.UpdateOrderRequest{
		Status: ptrStr("Ready"),
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUpdateOrderPartialFields(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	assignee := "Robin"
	f.orders.byID[id] = &domain.Order{ID: id, Status: domain.StatusConfirmed, AssignedTo: &assignee}

	// Status-only update leaves the assignment untouched.
	order, err := f.svc.UpdateOrder(context.Background(), id.String(), domain.UpdateOrderRequest{
		Status: ptrStr("InProgress"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, order.Status)
	require.NotNil(t, order.AssignedTo)
	assert.Equal(t, "Robin", *order.AssignedTo)
	assert.False(t, f.orders.lastPatch.AssignedTo.Set)

	// Assignment-only update leaves the status untouched.
	order, err = f.svc.UpdateOrder(context.Background(), id.String(), domain.UpdateOrderRequest{
		AssignedTo: domain.OptionalString{Set: true, Value: ptrStr("Sam")},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, order.Status)
	require.NotNil(t, order.AssignedTo)
	assert.Equal(t, "Sam", *order.AssignedTo)
	assert.Nil(t, f.orders.lastPatch.Status)

	require.Len(t, f.events.updated, 2)
}

func TestUpdateOrderEmptyAssigneeUnassigns(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	assignee := "Robin"
	f.orders.byID[id] = &domain.Order{ID: id, Status: domain.StatusReady, AssignedTo: &assignee}

	order, err := f.svc.UpdateOrder(context.Background(), id.String(), domain.UpdateOrderRequest{
		AssignedTo: domain.OptionalString{Set: true, Value: ptrStr("")},
	})

	require.NoError(t, err)
	assert.Nil(t, order.AssignedTo)
	require.NotNil(t, f.orders.lastPatch)
	assert.True(t, f.orders.lastPatch.AssignedTo.Set)
	assert.Nil(t, f.orders.lastPatch.AssignedTo.Value)
}

func TestActiveOrdersAndBoard(t *testing.T) {
	f := newFixture()
	f.orders.listed = []domain.Order{
		{ID: uuid.New(), Status: domain.StatusConfirmed},
		{ID: uuid.New(), Status: domain.StatusReady},
		{ID: uuid.New(), Status: domain.StatusCancelled},
	}

	active, err := f.svc.ActiveOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, domain.StatusConfirmed, active[0].Status)

	cols, err := f.svc.Board(context.Background())
	require.NoError(t, err)
	require.Len(t, cols, 4)
	assert.Len(t, cols[0].Orders, 1)
	assert.Len(t, cols[2].Orders, 1)
}
