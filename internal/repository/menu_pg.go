package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lunchline/internal/domain"
	"lunchline/internal/logger"
)

// MenuRepository owns menu_items. All current_stock mutation goes
// through DecrementStock.
type MenuRepository struct {
	store *Store
	lg    *logger.Logger
}

func NewMenuRepository(store *Store, lg *logger.Logger) *MenuRepository {
	return &MenuRepository{store: store, lg: lg}
}

const menuColumns = `id, name, description, price, images, vegetarian, allergens,
	ingredients, category, initial_stock, current_stock, created_at, updated_at`

func scanMenuItem(row pgx.Row) (domain.MenuItem, error) {
	var m domain.MenuItem
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Images, &m.Vegetarian,
		&m.Allergens, &m.Ingredients, &m.Category, &m.InitialStock, &m.CurrentStock,
		&m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *MenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.store.Pool().Query(ctx,
		`SELECT `+menuColumns+` FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.MenuItem, 0)
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	m, err := scanMenuItem(r.store.Pool().QueryRow(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("menu item %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item %s: %w", id, err)
	}
	return &m, nil
}

// DecrementStock atomically subtracts qty from current_stock if and
// only if enough stock remains, as one statement against the store.
// The failure variant reports the item's name and the stock level at
// failure time; a missing item comes back not-applied with zero values.
func (r *MenuRepository) DecrementStock(ctx context.Context, q Querier, id uuid.UUID, qty int) (domain.StockDecrement, error) {
	const query = `
WITH applied AS (
	UPDATE menu_items
	SET current_stock = current_stock - $2, updated_at = now()
	WHERE id = $1 AND current_stock >= $2
	RETURNING current_stock
)
SELECT m.name,
       COALESCE((SELECT current_stock FROM applied), m.current_stock),
       EXISTS (SELECT 1 FROM applied)
FROM menu_items m
WHERE m.id = $1`

	dec := domain.StockDecrement{MenuItemID: id}
	err := q.QueryRow(ctx, query, id, qty).Scan(&dec.Name, &dec.Remaining, &dec.Applied)
	if errors.Is(err, pgx.ErrNoRows) {
		// Unknown item: indistinguishable from insufficient stock at
		// this level, reported with zero availability.
		return dec, nil
	}
	if err != nil {
		return dec, fmt.Errorf("decrement stock for %s: %w", id, err)
	}
	return dec, nil
}

// ReplaceAll swaps the whole menu, used by seeding only.
func (r *MenuRepository) ReplaceAll(ctx context.Context, items []domain.MenuItem) error {
	return r.store.WithinTx(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, `TRUNCATE menu_items`); err != nil {
			return fmt.Errorf("truncate menu_items: %w", err)
		}
		for _, m := range items {
			_, err := q.Exec(ctx, `
INSERT INTO menu_items
	(id, name, description, price, images, vegetarian, allergens, ingredients,
	 category, initial_stock, current_stock)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				m.ID, m.Name, m.Description, m.Price, m.Images, m.Vegetarian,
				m.Allergens, m.Ingredients, m.Category, m.InitialStock, m.CurrentStock)
			if err != nil {
				return fmt.Errorf("insert menu item %q: %w", m.Name, err)
			}
		}
		return nil
	})
}
