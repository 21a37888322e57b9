package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/autocarepro/autocare-server/internal/db"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeMessage writes a simple message response.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// persistenceError maps a data-layer error to a response: 404 for missing
// documents, otherwise a logged generic 500. Clients never see driver errors.
func persistenceError(w http.ResponseWriter, err error, entity string) {
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, entity+" not found", http.StatusNotFound)
		return
	}
	log.WithError(err).WithField("entity", entity).Error("Persistence operation failed")
	http.Error(w, "A database error occurred", http.StatusInternalServerError)
}

// requireConfirmation enforces the explicit delete confirmation: without
// confirm=true no database call is made and the entity is left unchanged.
func requireConfirmation(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "Deletion requires confirm=true", http.StatusBadRequest)
		return false
	}
	return true
}
