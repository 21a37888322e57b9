package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/autocarepro/autocare-server/internal/auth"
	"github.com/autocarepro/autocare-server/internal/db"
	"github.com/autocarepro/autocare-server/internal/middleware"
	"github.com/autocarepro/autocare-server/internal/models"
	"github.com/autocarepro/autocare-server/internal/notify"
	"github.com/autocarepro/autocare-server/internal/validation"
)

// AppointmentHandler handles appointment CRUD requests.
type AppointmentHandler struct {
	appointments db.AppointmentCollection
	publisher    *notify.Publisher
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointments db.AppointmentCollection, publisher *notify.Publisher) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, publisher: publisher}
}

// canAccessAppointment limits customers to their own appointments and
// providers to appointments booked with them.
func canAccessAppointment(claims *auth.Claims, a *models.Appointment) bool {
	switch claims.Role {
	case models.RoleCustomer:
		return a.CustomerID == claims.UserID
	case models.RoleProvider:
		return a.ProviderID == claims.UserID
	default:
		return true
	}
}

// Create handles POST /api/appointments.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var appointment models.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if claims.Role == models.RoleCustomer || appointment.CustomerID == "" {
		appointment.CustomerID = claims.UserID
	}
	if appointment.Status == "" {
		appointment.Status = models.AppointmentScheduled
	}

	if result := validation.ValidateAppointment(&appointment); !result.Valid {
		http.Error(w, result.Message, http.StatusBadRequest)
		return
	}

	if err := h.appointments.InsertAppointment(r.Context(), &appointment); err != nil {
		persistenceError(w, err, "appointment")
		return
	}

	h.publisher.AppointmentChanged("created", &appointment)
	writeJSON(w, http.StatusCreated, appointment)
}

// Get handles GET /api/appointments/{id}.
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	appointment, err := h.appointments.FindAppointmentByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		persistenceError(w, err, "appointment")
		return
	}
	if !canAccessAppointment(claims, appointment) {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, appointment)
}

// List handles GET /api/appointments. Customers see their bookings,
// providers their schedule; both can narrow with ?vehicle_id= and ?status=.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	filter := bson.M{}
	switch claims.Role {
	case models.RoleCustomer:
		filter["customer_id"] = claims.UserID
	case models.RoleProvider:
		filter["provider_id"] = claims.UserID
	}
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		filter["vehicle_id"] = vehicleID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	appointments, err := h.appointments.FindAppointments(r.Context(), filter)
	if err != nil {
		persistenceError(w, err, "appointment")
		return
	}

	writeJSON(w, http.StatusOK, appointments)
}

// Update handles PUT /api/appointments/{id}. A status change to cancelled
// stamps the cancellation time and keeps the submitted reason.
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.appointments.FindAppointmentByID(r.Context(), id)
	if err != nil {
		persistenceError(w, err, "appointment")
		return
	}
	if !canAccessAppointment(claims, existing) {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	var appointment models.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	appointment.ID = existing.ID
	appointment.CustomerID = existing.CustomerID
	appointment.CreatedAt = existing.CreatedAt
	if appointment.Status == models.AppointmentCancelled && existing.CancelledAt == nil {
		now := time.Now()
		appointment.CancelledAt = &now
	} else {
		appointment.CancelledAt = existing.CancelledAt
	}

	if result := validation.ValidateAppointment(&appointment); !result.Valid {
		http.Error(w, result.Message, http.StatusBadRequest)
		return
	}

	if err := h.appointments.UpdateAppointment(r.Context(), id, appointment); err != nil {
		persistenceError(w, err, "appointment")
		return
	}

	h.publisher.AppointmentChanged("updated", &appointment)
	writeJSON(w, http.StatusOK, appointment)
}

// Delete handles DELETE /api/appointments/{id}?confirm=true.
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}
	if !requireConfirmation(w, r) {
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.appointments.FindAppointmentByID(r.Context(), id)
	if err != nil {
		persistenceError(w, err, "appointment")
		return
	}
	if !canAccessAppointment(claims, existing) {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	if err := h.appointments.DeleteAppointment(r.Context(), id); err != nil {
		persistenceError(w, err, "appointment")
		return
	}

	h.publisher.AppointmentChanged("deleted", existing)
	writeMessage(w, http.StatusOK, "Appointment deleted")
}
