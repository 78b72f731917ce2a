// Package api exposes the REST surface of the trade network service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Spok95/trade-network/internal/domain/units"
)

type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, jsonError{Error: code, Details: details})
}

// writeDomainError maps engine errors onto the HTTP taxonomy. A cyclic chain is
// the one server-side fault here: it means stored data is corrupt, not that the
// caller did anything wrong.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *units.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "validation_error", ve.Error())
	case errors.Is(err, units.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, units.ErrInvalidHierarchy):
		writeError(w, http.StatusBadRequest, "invalid_hierarchy", err.Error())
	case errors.Is(err, units.ErrMissingProvider):
		writeError(w, http.StatusBadRequest, "missing_provider", err.Error())
	case errors.Is(err, units.ErrCyclicHierarchy):
		writeError(w, http.StatusInternalServerError, "cyclic_hierarchy", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
