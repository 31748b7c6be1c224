package service

import (
	"context"

	"github.com/google/uuid"

	"lunchline/internal/domain"
	"lunchline/internal/logger"
	"lunchline/internal/repository"
)

// TxRunner scopes a unit of work to one store transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(q repository.Querier) error) error
}

// StockLedger is the sole authority over current_stock mutation.
type StockLedger interface {
	DecrementStock(ctx context.Context, q repository.Querier, id uuid.UUID, qty int) (domain.StockDecrement, error)
}

type OrderStore interface {
	Insert(ctx context.Context, q repository.Querier, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.OrderPatch) (*domain.Order, error)
	ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error)
}

// EventPublisher emits lifecycle events after a successful write. A
// publish failure must not fail the request, so implementations log
// and swallow their own errors.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order)
	OrderUpdated(ctx context.Context, order *domain.Order)
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID string, req domain.UpdateOrderRequest) (*domain.Order, error)
	ActiveOrders(ctx context.Context) ([]domain.Order, error)
	Board(ctx context.Context) ([]BoardColumn, error)
}

type OrderService struct {
	tx     TxRunner
	stock  StockLedger
	orders OrderStore
	events EventPublisher
	lg     *logger.Logger
}

func NewOrderService(tx TxRunner, stock StockLedger, orders OrderStore, events EventPublisher, lg *logger.Logger) OrderServiceInterface {
	return &OrderService{tx: tx, stock: stock, orders: orders, events: events, lg: lg}
}

type orderLine struct {
	id   uuid.UUID
	item domain.OrderItem
}

// PlaceOrder turns a submitted cart into a persisted order with
// consistent stock effects: every line's stock decrement and the order
// insert happen inside one transaction, all-or-nothing.
func (s *OrderService) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Order, error) {
	lines, err := parseCart(req)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerName:    nilIfEmpty(req.CustomerName),
		CustomerPhone:   nilIfEmpty(req.CustomerPhone),
		Items:           make([]domain.OrderItem, 0, len(lines)),
		TotalAmount:     *req.TotalAmount,
		Status:          domain.StatusConfirmed,
		PaymentReceived: true,
	}
	for _, line := range lines {
		order.Items = append(order.Items, line.item)
	}

	err = s.tx.WithinTx(ctx, func(q repository.Querier) error {
		for i, line := range lines {
			dec, err := s.stock.DecrementStock(ctx, q, line.id, line.item.Quantity)
			if err != nil {
				return err
			}
			if !dec.Applied {
				name := dec.Name
				if name == "" {
					name = cartItemLabel(req.Items[i])
				}
				return domain.InsufficientStockf(
					"insufficient stock for item: %s. Available: %d.", name, dec.Remaining)
			}
		}
		return s.orders.Insert(ctx, q, order)
	})
	if err != nil {
		return nil, err
	}

	s.lg.Info("order_created", map[string]any{
		"order_id": order.ID.String(),
		"items":    len(order.Items),
		"total":    order.TotalAmount,
	})
	if s.events != nil {
		s.events.OrderCreated(ctx, order)
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, domain.Invalidf("invalid order ID format")
	}
	return s.orders.GetByID(ctx, id)
}

// UpdateOrder applies a partial status/assignment update. Any status
// from the defined set may be written; the linear kitchen progression
// is a policy of the calling UI, not enforced here.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, req domain.UpdateOrderRequest) (*domain.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, domain.Invalidf("invalid order ID format")
	}
	if req.Status == nil && !req.AssignedTo.Set {
		return nil, domain.Invalidf("no update fields provided (status or assignedTo)")
	}

	var patch domain.OrderPatch
	if req.Status != nil {
		status := domain.OrderStatus(*req.Status)
		if !status.Valid() {
			return nil, domain.Invalidf("invalid status value: '%s'. Allowed statuses are: %s",
				*req.Status, domain.AllowedStatusList())
		}
		patch.Status = &status
	}
	if req.AssignedTo.Set {
		value := req.AssignedTo.Value
		if value != nil && *value == "" {
			value = nil // empty string unassigns
		}
		patch.AssignedTo = domain.OptionalString{Set: true, Value: value}
	}

	order, err := s.orders.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.lg.Info("order_updated", map[string]any{
		"order_id": order.ID.String(),
		"status":   string(order.Status),
	})
	if s.events != nil {
		s.events.OrderUpdated(ctx, order)
	}
	return order, nil
}

func (s *OrderService) ActiveOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListByStatuses(ctx, ActiveStatuses)
	if err != nil {
		return nil, err
	}
	return ActiveList(orders), nil
}

func (s *OrderService) Board(ctx context.Context) ([]BoardColumn, error) {
	orders, err := s.orders.ListByStatuses(ctx, BoardStatuses)
	if err != nil {
		return nil, err
	}
	return KanbanBoard(orders), nil
}

func parseCart(req domain.PlaceOrderRequest) ([]orderLine, error) {
	if len(req.Items) == 0 {
		return nil, domain.Invalidf("invalid or empty order items provided")
	}
	if req.TotalAmount == nil || *req.TotalAmount < 0 {
		return nil, domain.Invalidf("invalid or missing total amount")
	}

	lines := make([]orderLine, 0, len(req.Items))
	for _, it := range req.Items {
		id, err := uuid.Parse(it.MenuItemID)
		if it.MenuItemID == "" || err != nil || it.Quantity == nil || *it.Quantity <= 0 || it.Price == nil {
			return nil, domain.Invalidf("invalid data for cart item: %s", cartItemLabel(it))
		}
		lines = append(lines, orderLine{
			id: id,
			item: domain.OrderItem{
				MenuItemID:             id,
				Name:                   it.Name,
				Quantity:               *it.Quantity,
				PricePerItem:           *it.Price,
				OverriddenPricePerItem: it.OverriddenPrice,
			},
		})
	}
	return lines, nil
}

func cartItemLabel(it domain.CartItem) string {
	if it.Name != "" {
		return it.Name
	}
	return it.MenuItemID
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
