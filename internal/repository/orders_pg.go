package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lunchline/internal/domain"
	"lunchline/internal/logger"
)

type OrderRepository struct {
	store *Store
	lg    *logger.Logger
}

func NewOrderRepository(store *Store, lg *logger.Logger) *OrderRepository {
	return &OrderRepository{store: store, lg: lg}
}

const orderColumns = `id, customer_name, customer_phone, total_amount, status,
	assigned_to, payment_received, created_at, updated_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var status string
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.TotalAmount, &status,
		&o.AssignedTo, &o.PaymentReceived, &o.CreatedAt, &o.UpdatedAt)
	o.Status = domain.OrderStatus(status)
	return o, err
}

// Insert writes the order and its line items through q, which is the
// coordinator's transaction during order placement. The server-assigned
// id and timestamps are written back into order.
func (r *OrderRepository) Insert(ctx context.Context, q Querier, order *domain.Order) error {
	err := q.QueryRow(ctx, `
INSERT INTO orders (customer_name, customer_phone, total_amount, status, assigned_to, payment_received)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`,
		order.CustomerName, order.CustomerPhone, order.TotalAmount,
		string(order.Status), order.AssignedTo, order.PaymentReceived,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range order.Items {
		_, err := q.Exec(ctx, `
INSERT INTO order_items (order_id, menu_item_id, name, quantity, price_per_item, overridden_price_per_item)
VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, it.MenuItemID, it.Name, it.Quantity, it.PricePerItem, it.OverriddenPricePerItem)
		if err != nil {
			return fmt.Errorf("insert order item %q: %w", it.Name, err)
		}
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := scanOrder(r.store.Pool().QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	items, err := r.loadItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return &o, nil
}

// Update applies only the fields present in patch and returns the
// updated order. There is no version check: concurrent updates to the
// same order are last-write-wins.
func (r *OrderRepository) Update(ctx context.Context, id uuid.UUID, patch domain.OrderPatch) (*domain.Order, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}

	if patch.Status != nil {
		args = append(args, string(*patch.Status))
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	if patch.AssignedTo.Set {
		args = append(args, patch.AssignedTo.Value)
		set = append(set, fmt.Sprintf("assigned_to = $%d", len(args)))
	}

	query := `UPDATE orders SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + orderColumns
	o, err := scanOrder(r.store.Pool().QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	items, err := r.loadItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return &o, nil
}

// ListByStatuses returns all orders in any of the given statuses,
// oldest first, with line items attached.
func (r *OrderRepository) ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	rows, err := r.store.Pool().Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = ANY($1) ORDER BY created_at ASC`, names)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = []domain.OrderItem{}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if got := items[orders[i].ID]; got != nil {
			orders[i].Items = got
		}
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderItem, error) {
	out := make(map[uuid.UUID][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	rows, err := r.store.Pool().Query(ctx, `
SELECT order_id, menu_item_id, name, quantity, price_per_item, overridden_price_per_item
FROM order_items WHERE order_id = ANY($1) ORDER BY id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		var it domain.OrderItem
		if err := rows.Scan(&orderID, &it.MenuItemID, &it.Name, &it.Quantity,
			&it.PricePerItem, &it.OverriddenPricePerItem); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}
