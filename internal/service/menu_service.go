package service

import (
	"context"

	"lunchline/internal/domain"
	"lunchline/internal/logger"
)

type MenuStore interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
}

type MenuServiceInterface interface {
	ListMenu(ctx context.Context) ([]domain.MenuItem, error)
}

// MenuService is the cashier's read surface over the menu; writes go
// through seeding only.
type MenuService struct {
	menu MenuStore
	lg   *logger.Logger
}

func NewMenuService(menu MenuStore, lg *logger.Logger) MenuServiceInterface {
	return &MenuService{menu: menu, lg: lg}
}

func (s *MenuService) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	return s.menu.List(ctx)
}
