package api

import (
	"log/slog"
	"net/http"
)

// NewRouter registers the REST routes and wraps them with request-id, logging
// and metrics middleware.
func NewRouter(log *slog.Logger, uh *UnitsHandler, ch *ContactsHandler, ph *ProductsHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/units", uh.Create)
	mux.HandleFunc("GET /api/v1/units", uh.List)
	mux.HandleFunc("GET /api/v1/units/export", uh.Export)
	mux.HandleFunc("POST /api/v1/units/reset-debt", uh.ResetDebt)
	mux.HandleFunc("GET /api/v1/units/{id}", uh.Get)
	mux.HandleFunc("PATCH /api/v1/units/{id}", uh.Update)
	mux.HandleFunc("DELETE /api/v1/units/{id}", uh.Delete)

	mux.HandleFunc("POST /api/v1/contacts", ch.Create)
	mux.HandleFunc("GET /api/v1/contacts", ch.List)
	mux.HandleFunc("GET /api/v1/contacts/{id}", ch.Get)
	mux.HandleFunc("PATCH /api/v1/contacts/{id}", ch.Update)
	mux.HandleFunc("DELETE /api/v1/contacts/{id}", ch.Delete)

	mux.HandleFunc("POST /api/v1/products", ph.Create)
	mux.HandleFunc("GET /api/v1/products", ph.List)
	mux.HandleFunc("GET /api/v1/products/{id}", ph.Get)
	mux.HandleFunc("PATCH /api/v1/products/{id}", ph.Update)
	mux.HandleFunc("DELETE /api/v1/products/{id}", ph.Delete)

	return WithRequestID(WithLogging(log, WithMetrics(mux)))
}
