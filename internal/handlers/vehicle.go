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
	"github.com/autocarepro/autocare-server/internal/validation"
)

// VehicleHandler handles vehicle CRUD requests.
type VehicleHandler struct {
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// vehicleResponse adds the derived maintenance flag to a stored vehicle.
type vehicleResponse struct {
	models.Vehicle
	NeedsMaintenance bool `json:"needs_maintenance"`
}

func toVehicleResponse(v models.Vehicle) vehicleResponse {
	return vehicleResponse{Vehicle: v, NeedsMaintenance: v.NeedsMaintenance(time.Now())}
}

// canAccessVehicle reports whether the caller may see or change the vehicle.
// Customers are limited to their own vehicles.
func canAccessVehicle(claims *auth.Claims, v *models.Vehicle) bool {
	if claims.Role == models.RoleCustomer {
		return v.OwnerID == claims.UserID
	}
	return true
}

// Create handles POST /api/vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Customers always create vehicles for themselves.
	if claims.Role == models.RoleCustomer || vehicle.OwnerID == "" {
		vehicle.OwnerID = claims.UserID
	}

	if result := validation.ValidateVehicle(&vehicle, time.Now()); !result.Valid {
		http.Error(w, result.Message, http.StatusBadRequest)
		return
	}

	if err := h.vehicles.InsertVehicle(r.Context(), &vehicle); err != nil {
		persistenceError(w, err, "vehicle")
		return
	}

	writeJSON(w, http.StatusCreated, toVehicleResponse(vehicle))
}

// Get handles GET /api/vehicles/{id}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		persistenceError(w, err, "vehicle")
		return
	}
	if !canAccessVehicle(claims, vehicle) {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, toVehicleResponse(*vehicle))
}

// List handles GET /api/vehicles. Customers see their own vehicles;
// providers and admins may filter with ?owner_id=.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	filter := bson.M{}
	if claims.Role == models.RoleCustomer {
		filter["owner_id"] = claims.UserID
	} else if owner := r.URL.Query().Get("owner_id"); owner != "" {
		filter["owner_id"] = owner
	}

	vehicles, err := h.vehicles.FindVehicles(r.Context(), filter)
	if err != nil {
		persistenceError(w, err, "vehicle")
		return
	}

	out := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// Update handles PUT /api/vehicles/{id}.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		persistenceError(w, err, "vehicle")
		return
	}
	if !canAccessVehicle(claims, existing) {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Identity and ownership are not editable through the form.
	vehicle.ID = existing.ID
	vehicle.OwnerID = existing.OwnerID
	vehicle.CreatedAt = existing.CreatedAt

	if result := validation.ValidateVehicle(&vehicle, time.Now()); !result.Valid {
		http.Error(w, result.Message, http.StatusBadRequest)
		return
	}

	if err := h.vehicles.UpdateVehicle(r.Context(), id, vehicle); err != nil {
		persistenceError(w, err, "vehicle")
		return
	}

	writeJSON(w, http.StatusOK, toVehicleResponse(vehicle))
}

// Delete handles DELETE /api/vehicles/{id}?confirm=true.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}
	if !requireConfirmation(w, r) {
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		persistenceError(w, err, "vehicle")
		return
	}
	if !canAccessVehicle(claims, existing) {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		persistenceError(w, err, "vehicle")
		return
	}

	writeMessage(w, http.StatusOK, "Vehicle deleted")
}
