package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Spok95/trade-network/internal/domain/units"
	"github.com/Spok95/trade-network/internal/report"
)

type UnitsHandler struct {
	log *slog.Logger
	svc *units.Service
}

func NewUnitsHandler(log *slog.Logger, svc *units.Service) *UnitsHandler {
	return &UnitsHandler{log: log, svc: svc}
}

type contactPayload struct {
	Email   string `json:"email"`
	Country string `json:"country"`
	City    string `json:"city"`
	Street  string `json:"street"`
	Number  string `json:"number"`
}

type createUnitRequest struct {
	Title    string          `json:"title"`
	UnitType string          `json:"unit_type"`
	Provider *int64          `json:"provider"`
	Products []int64         `json:"products"`
	Contact  *contactPayload `json:"contact"`
}

// optionalID distinguishes an absent field from an explicit null in a patch.
type optionalID struct {
	set bool
	id  *int64
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	o.set = true
	if string(b) == "null" {
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.id = &v
	return nil
}

type updateUnitRequest struct {
	Title    *string    `json:"title"`
	UnitType *string    `json:"unit_type"`
	Provider optionalID `json:"provider"`
	Contact  optionalID `json:"contact"`
	Products *[]int64   `json:"products"`
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (h *UnitsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUnitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	in := units.CreateInput{
		Title:    req.Title,
		UnitType: units.Type(req.UnitType),
		Provider: req.Provider,
		Products: req.Products,
	}
	if req.Contact != nil {
		in.Contact = &units.ContactInput{
			Email:   req.Contact.Email,
			Country: req.Contact.Country,
			City:    req.Contact.City,
			Street:  req.Contact.Street,
			Number:  req.Contact.Number,
		}
	}
	view, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *UnitsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}
	view, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *UnitsHandler) List(w http.ResponseWriter, r *http.Request) {
	f := units.Filter{City: r.URL.Query().Get("city")}
	views, err := h.svc.List(r.Context(), f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if views == nil {
		views = []units.View{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *UnitsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}
	var req updateUnitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	in := units.UpdateInput{
		Title:    req.Title,
		Provider: units.Ref{Set: req.Provider.set, ID: req.Provider.id},
		Contact:  units.Ref{Set: req.Contact.set, ID: req.Contact.id},
		Products: req.Products,
	}
	if req.UnitType != nil {
		t := units.Type(*req.UnitType)
		in.UnitType = &t
	}
	view, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *UnitsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type resetDebtRequest struct {
	IDs []int64 `json:"ids"`
}

type resetDebtResponse struct {
	Updated int64 `json:"updated"`
}

func (h *UnitsHandler) ResetDebt(w http.ResponseWriter, r *http.Request) {
	var req resetDebtRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	n, err := h.svc.ResetDebt(r.Context(), req.IDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resetDebtResponse{Updated: n})
}

func (h *UnitsHandler) Export(w http.ResponseWriter, r *http.Request) {
	us, err := h.svc.Units(r.Context(), units.Filter{City: r.URL.Query().Get("city")})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	data, err := report.Units(us)
	if err != nil {
		h.log.Error("units export failed", "err", err)
		writeError(w, http.StatusInternalServerError, "export_failed", "")
		return
	}
	name := fmt.Sprintf("trade_units_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
