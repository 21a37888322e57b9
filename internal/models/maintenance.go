package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceStatus represents the lifecycle state of a maintenance record.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// MaintenanceRecord represents work performed (or scheduled) on a vehicle.
type MaintenanceRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID   string             `bson:"vehicle_id" json:"vehicle_id"`
	ServiceType string             `bson:"service_type" json:"service_type"`
	Description string             `bson:"description" json:"description"`
	Cost        float64            `bson:"cost" json:"cost"` // in USD
	Date        time.Time          `bson:"date" json:"date"`
	Status      MaintenanceStatus  `bson:"status" json:"status"`
	Technician  string             `bson:"technician" json:"technician"`
	Parts       []string           `bson:"parts" json:"parts"`
	Notes       string             `bson:"notes" json:"notes"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsValidMaintenanceStatus checks if a status is one of the known states.
func IsValidMaintenanceStatus(s MaintenanceStatus) bool {
	switch s {
	case MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	default:
		return false
	}
}
