package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/petspa/internal/appointments"
	"github.com/julianstephens/petspa/internal/logger"
	"github.com/julianstephens/petspa/internal/models"
	"github.com/julianstephens/petspa/internal/storage"
)

type handlers struct {
	store storage.Provider
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	var in models.Appointment
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if err := normalizeAppointment(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handlers) listByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := appointments.ParseAPIDate(date); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.store.ListByDate(r.Context(), date)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	owner := strings.TrimSpace(r.URL.Query().Get("ownerName"))
	if owner == "" {
		writeJSON(w, http.StatusOK, []models.Appointment{})
		return
	}

	items, err := h.store.SearchByOwner(r.Context(), owner)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	a, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *handlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var u models.AppointmentUpdate
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := normalizeUpdate(&u); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.store.Update(r.Context(), id, u)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	h.internalError(w, r, err)
}

func (h *handlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// normalizeAppointment validates a create body and rewrites time as HH:mm.
func normalizeAppointment(a *models.Appointment) error {
	a.PetName = strings.TrimSpace(a.PetName)
	a.OwnerName = strings.TrimSpace(a.OwnerName)
	a.Service = strings.TrimSpace(a.Service)
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := appointments.ParseAPIDate(a.Date); err != nil {
		return err
	}
	tm, err := appointments.NormalizeTime(a.Time)
	if err != nil {
		return err
	}
	a.Time = tm
	return nil
}

// normalizeUpdate validates the fields present in a partial update.
func normalizeUpdate(u *models.AppointmentUpdate) error {
	for name, p := range map[string]*string{"petName": u.PetName, "ownerName": u.OwnerName, "service": u.Service} {
		if p == nil {
			continue
		}
		*p = strings.TrimSpace(*p)
		if *p == "" {
			return fmt.Errorf("%s must not be blank", name)
		}
	}
	if u.Date != nil {
		if _, err := appointments.ParseAPIDate(*u.Date); err != nil {
			return err
		}
	}
	if u.Time != nil {
		tm, err := appointments.NormalizeTime(*u.Time)
		if err != nil {
			return err
		}
		u.Time = &tm
	}
	if u.Status != nil {
		if _, err := models.ParseStatus(string(*u.Status)); err != nil {
			return err
		}
	}
	return nil
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
