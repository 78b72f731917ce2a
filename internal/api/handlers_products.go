package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/trade-network/internal/domain/products"
)

type ProductStore interface {
	Create(ctx context.Context, p *products.Product) (*products.Product, error)
	GetByID(ctx context.Context, id int64) (*products.Product, error)
	List(ctx context.Context) ([]products.Product, error)
	Update(ctx context.Context, p *products.Product) (*products.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ProductsHandler struct {
	log   *slog.Logger
	store ProductStore
}

func NewProductsHandler(log *slog.Logger, store ProductStore) *ProductsHandler {
	return &ProductsHandler{log: log, store: store}
}

type productRequest struct {
	Title   string           `json:"title"`
	Model   string           `json:"model"`
	Release string           `json:"release"`
	Price   *decimal.Decimal `json:"price"`
}

type productResponse struct {
	ID      int64           `json:"id"`
	Title   string          `json:"title"`
	Model   string          `json:"model"`
	Release string          `json:"release,omitempty"`
	Price   decimal.Decimal `json:"price"`
}

func toProductResponse(p *products.Product) productResponse {
	out := productResponse{ID: p.ID, Title: p.Title, Model: p.Model, Price: p.Price}
	if p.Release != nil {
		out.Release = p.Release.Format(time.DateOnly)
	}
	return out
}

func (h *ProductsHandler) buildProduct(w http.ResponseWriter, req productRequest, dst *products.Product) bool {
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "title must not be empty")
		return false
	}
	if len(req.Title) > 25 || len(req.Model) > 25 {
		writeError(w, http.StatusBadRequest, "validation_error", "title and model must be at most 25 characters")
		return false
	}
	dst.Title = req.Title
	dst.Model = req.Model
	dst.Release = nil
	if req.Release != "" {
		t, err := time.Parse(time.DateOnly, req.Release)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "release must be a YYYY-MM-DD date")
			return false
		}
		dst.Release = &t
	}
	dst.Price = decimal.Zero
	if req.Price != nil {
		if req.Price.IsNegative() {
			writeError(w, http.StatusBadRequest, "validation_error", "price must be non-negative")
			return false
		}
		dst.Price = *req.Price
	}
	return true
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	var p products.Product
	if !h.buildProduct(w, req, &p) {
		return
	}
	out, err := h.store.Create(r.Context(), &p)
	if err != nil {
		h.log.Error("product create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(out))
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}
	p, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("product fetch failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	ps, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error("product list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	out := make([]productResponse, 0, len(ps))
	for i := range ps {
		out = append(out, toProductResponse(&ps[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("product fetch failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if !h.buildProduct(w, req, p) {
		return
	}
	out, err := h.store.Update(r.Context(), p)
	if err != nil {
		h.log.Error("product update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if out == nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(out))
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}
	ok, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.log.Error("product delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
