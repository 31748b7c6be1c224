package handler

import "net/http"

func NewRouter(oh *OrderHandler, kh *KitchenHandler, mh *MenuHandler, healthz http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /orders", oh.Create)
	mux.HandleFunc("GET /orders/{orderId}", oh.Get)
	mux.HandleFunc("PATCH /orders/{orderId}", oh.Update)

	mux.HandleFunc("GET /kitchen/orders", kh.Active)
	mux.HandleFunc("GET /kitchen/board", kh.Board)

	mux.HandleFunc("GET /menu", mh.List)
	mux.HandleFunc("GET /healthz", healthz)

	return mux
}
