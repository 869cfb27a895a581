package http

import (
	"github.com/gorilla/mux"

	"equiptrack-backend/internal/security"
)

// RegisterRoutes wires the JSON API. Every route sits behind the auth
// middleware; role enforcement happens in the engine's edge-to-role map, not
// here.
func RegisterRoutes(router *mux.Router, h *Handler, tokens security.TokenManager) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/reservations", h.CreateReservation).Methods("POST")
	api.HandleFunc("/reservations", h.ListReservations).Methods("GET")
	api.HandleFunc("/reservations/{id}", h.GetReservation).Methods("GET")
	api.HandleFunc("/reservations/{id}/transition", h.TransitionReservation).Methods("POST")
	api.HandleFunc("/reservations/{id}/history", h.GetReservationHistory).Methods("GET")
	api.HandleFunc("/reservations/{id}/notes", h.UpdateReservationNotes).Methods("PUT")

	api.HandleFunc("/items", h.ListItems).Methods("GET")
	api.HandleFunc("/items/{id}", h.GetItem).Methods("GET")
	api.HandleFunc("/items/{id}/maintenance", h.SetMaintenance).Methods("PUT")

	api.HandleFunc("/notifications", h.ListNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods("POST")
}
