package handler

import (
	"net/http"

	"lunchline/internal/logger"
	"lunchline/internal/service"
)

// KitchenHandler serves the two read-only projections. Both are
// re-derived from the order set on every request.
type KitchenHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewKitchenHandler(s service.OrderServiceInterface, lg *logger.Logger) *KitchenHandler {
	return &KitchenHandler{service: s, lg: lg}
}

func (h *KitchenHandler) Active(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ActiveOrders(r.Context())
	if err != nil {
		respondError(w, h.lg, "kitchen_list_failed", "failed to fetch kitchen orders", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *KitchenHandler) Board(w http.ResponseWriter, r *http.Request) {
	columns, err := h.service.Board(r.Context())
	if err != nil {
		respondError(w, h.lg, "kitchen_board_failed", "failed to fetch kitchen board", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"columns": columns})
}
