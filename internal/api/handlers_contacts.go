package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Spok95/trade-network/internal/domain/contacts"
)

type ContactStore interface {
	Create(ctx context.Context, c *contacts.Contact) (*contacts.Contact, error)
	GetByID(ctx context.Context, id int64) (*contacts.Contact, error)
	List(ctx context.Context) ([]contacts.Contact, error)
	Update(ctx context.Context, c *contacts.Contact) (*contacts.Contact, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ContactsHandler struct {
	log   *slog.Logger
	store ContactStore
}

func NewContactsHandler(log *slog.Logger, store ContactStore) *ContactsHandler {
	return &ContactsHandler{log: log, store: store}
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactPayload
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "validation_error", "email must be a valid email address")
		return
	}
	c, err := h.store.Create(r.Context(), &contacts.Contact{
		Email:   req.Email,
		Country: req.Country,
		City:    req.City,
		Street:  req.Street,
		Number:  req.Number,
	})
	if err != nil {
		h.log.Error("contact create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}
	c, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("contact fetch failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	cs, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error("contact list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if cs == nil {
		cs = []contacts.Contact{}
	}
	writeJSON(w, http.StatusOK, cs)
}

type updateContactRequest struct {
	Email   *string `json:"email"`
	Country *string `json:"country"`
	City    *string `json:"city"`
	Street  *string `json:"street"`
	Number  *string `json:"number"`
}

func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}
	var req updateContactRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	c, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("contact fetch failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if req.Email != nil {
		if !validEmail(*req.Email) {
			writeError(w, http.StatusBadRequest, "validation_error", "email must be a valid email address")
			return
		}
		c.Email = *req.Email
	}
	if req.Country != nil {
		c.Country = *req.Country
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.Street != nil {
		c.Street = *req.Street
	}
	if req.Number != nil {
		c.Number = *req.Number
	}
	out, err := h.store.Update(r.Context(), c)
	if err != nil {
		h.log.Error("contact update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if out == nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}
	ok, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.log.Error("contact delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
