package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/service"
)

type Handler struct {
	reservations  service.ReservationService
	items         service.ItemService
	notifications service.NotificationService
}

func NewHandler(reservations service.ReservationService, items service.ItemService, notifications service.NotificationService) *Handler {
	return &Handler{
		reservations:  reservations,
		items:         items,
		notifications: notifications,
	}
}

type createReservationRequest struct {
	ItemID     int32     `json:"item_id"`
	StartDate  time.Time `json:"start_date"`
	ReturnDate time.Time `json:"return_date"`
	Notes      string    `json:"notes"`
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("invalid request body: %v", err))
		return
	}

	actor := actorFrom(r)
	res, err := h.reservations.Create(r.Context(), req.ItemID, actor.UserID, req.StartDate, req.ReturnDate, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

type transitionRequest struct {
	TargetStatus domain.ReservationStatus `json:"target_status"`
	Version      int32                    `json:"version"`
	Reason       string                   `json:"reason"`
}

func (h *Handler) TransitionReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("invalid request body: %v", err))
		return
	}

	res, err := h.reservations.Transition(r.Context(), id, req.TargetStatus, actorFrom(r), req.Version, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	res, err := h.reservations.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReservationFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	list, total, err := h.reservations.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"reservations": list,
		"total":        total,
	})
}

func (h *Handler) GetReservationHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	records, err := h.reservations.History(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"history": records})
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) UpdateReservationNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req updateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("invalid request body: %v", err))
		return
	}
	if err := h.reservations.UpdateNotes(r.Context(), id, actorFrom(r), req.Notes); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

type setMaintenanceRequest struct {
	On bool `json:"on"`
}

func (h *Handler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req setMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("invalid request body: %v", err))
		return
	}
	item, err := h.items.SetMaintenance(r.Context(), id, req.On, actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	events, total, err := h.notifications.ListForRecipient(r.Context(), actor.UserID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": events,
		"total":         total,
	})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]
	actor := actorFrom(r)
	if err := h.notifications.MarkRead(r.Context(), actor.UserID, eventID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("invalid id %q", raw)
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}

func parseReservationFilter(r *http.Request) (repository.ReservationFilter, error) {
	q := r.URL.Query()
	filter := repository.ReservationFilter{
		Page:     queryInt32(r, "page", 1),
		PageSize: queryInt32(r, "page_size", 20),
	}

	if raw := q.Get("item_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return filter, domain.NewValidationError("invalid item_id %q", raw)
		}
		id := int32(v)
		filter.ItemID = &id
	}
	if raw := q.Get("user_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return filter, domain.NewValidationError("invalid user_id %q", raw)
		}
		id := int32(v)
		filter.UserID = &id
	}
	if raw := q.Get("status"); raw != "" {
		status := domain.ReservationStatus(raw)
		filter.Status = &status
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domain.NewValidationError("invalid from date %q", raw)
		}
		filter.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domain.NewValidationError("invalid to date %q", raw)
		}
		filter.To = &t
	}
	return filter, nil
}
