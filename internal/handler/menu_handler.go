package handler

import (
	"net/http"

	"lunchline/internal/logger"
	"lunchline/internal/service"
)

type MenuHandler struct {
	service service.MenuServiceInterface
	lg      *logger.Logger
}

func NewMenuHandler(s service.MenuServiceInterface, lg *logger.Logger) *MenuHandler {
	return &MenuHandler{service: s, lg: lg}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenu(r.Context())
	if err != nil {
		respondError(w, h.lg, "menu_list_failed", "failed to fetch menu", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
