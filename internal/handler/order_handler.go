package handler

import (
	"encoding/json"
	"net/http"

	"lunchline/internal/domain"
	"lunchline/internal/logger"
	"lunchline/internal/service"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.lg, "order_create_failed", "", domain.MalformedPayload("invalid JSON payload"))
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		respondError(w, h.lg, "order_create_failed",
			"failed to create order due to an unexpected error", err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), r.PathValue("orderId"))
	if err != nil {
		respondError(w, h.lg, "order_get_failed", "failed to fetch order", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.lg, "order_update_failed", "", domain.MalformedPayload("invalid JSON payload"))
		return
	}

	order, err := h.service.UpdateOrder(r.Context(), r.PathValue("orderId"), req)
	if err != nil {
		respondError(w, h.lg, "order_update_failed", "failed to update order", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
