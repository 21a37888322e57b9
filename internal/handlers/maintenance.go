package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/autocarepro/autocare-server/internal/db"
	"github.com/autocarepro/autocare-server/internal/models"
	"github.com/autocarepro/autocare-server/internal/notify"
	"github.com/autocarepro/autocare-server/internal/validation"
)

// MaintenanceHandler handles maintenance record CRUD requests. Write access
// is gated to providers at the routing layer; reads are open to any
// authenticated user so customers can see their vehicle history.
type MaintenanceHandler struct {
	records   db.MaintenanceRecordCollection
	publisher *notify.Publisher
}

// NewMaintenanceHandler creates a new maintenance record handler.
func NewMaintenanceHandler(records db.MaintenanceRecordCollection, publisher *notify.Publisher) *MaintenanceHandler {
	return &MaintenanceHandler{records: records, publisher: publisher}
}

// Create handles POST /api/maintenance.
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.MaintenanceRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if record.Status == "" {
		record.Status = models.MaintenanceScheduled
	}

	if result := validation.ValidateMaintenanceRecord(&record); !result.Valid {
		http.Error(w, result.Message, http.StatusBadRequest)
		return
	}

	if err := h.records.InsertMaintenanceRecord(r.Context(), &record); err != nil {
		persistenceError(w, err, "maintenance record")
		return
	}

	h.publisher.MaintenanceChanged("created", &record)
	writeJSON(w, http.StatusCreated, record)
}

// Get handles GET /api/maintenance/{id}.
func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.FindMaintenanceRecordByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		persistenceError(w, err, "maintenance record")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// List handles GET /api/maintenance, optionally narrowed with ?vehicle_id=,
// ?status= and ?technician=.
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		filter["vehicle_id"] = vehicleID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if technician := r.URL.Query().Get("technician"); technician != "" {
		filter["technician"] = technician
	}

	records, err := h.records.FindMaintenanceRecords(r.Context(), filter)
	if err != nil {
		persistenceError(w, err, "maintenance record")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// Update handles PUT /api/maintenance/{id}.
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	existing, err := h.records.FindMaintenanceRecordByID(r.Context(), id)
	if err != nil {
		persistenceError(w, err, "maintenance record")
		return
	}

	var record models.MaintenanceRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt

	if result := validation.ValidateMaintenanceRecord(&record); !result.Valid {
		http.Error(w, result.Message, http.StatusBadRequest)
		return
	}

	if err := h.records.UpdateMaintenanceRecord(r.Context(), id, record); err != nil {
		persistenceError(w, err, "maintenance record")
		return
	}

	h.publisher.MaintenanceChanged("updated", &record)
	writeJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /api/maintenance/{id}?confirm=true.
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireConfirmation(w, r) {
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.records.FindMaintenanceRecordByID(r.Context(), id)
	if err != nil {
		persistenceError(w, err, "maintenance record")
		return
	}

	if err := h.records.DeleteMaintenanceRecord(r.Context(), id); err != nil {
		persistenceError(w, err, "maintenance record")
		return
	}

	h.publisher.MaintenanceChanged("deleted", existing)
	writeMessage(w, http.StatusOK, "Maintenance record deleted")
}
