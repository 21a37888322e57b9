package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

// Service types offered by providers. Shared by appointments and
// maintenance records.
const (
	ServiceOilChange      = "oil_change"
	ServiceTireRotation   = "tire_rotation"
	ServiceBrakeService   = "brake_service"
	ServiceBatteryService = "battery_service"
	ServiceInspection     = "inspection"
	ServiceDiagnostic     = "diagnostic"
	ServiceGeneralRepair  = "general_repair"
)

// Appointment represents a booked service visit for a vehicle.
type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID    string             `bson:"vehicle_id" json:"vehicle_id"`
	CustomerID   string             `bson:"customer_id" json:"customer_id"`
	ProviderID   string             `bson:"provider_id" json:"provider_id"`
	ScheduledAt  time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	ServiceType  string             `bson:"service_type" json:"service_type"`
	Status       AppointmentStatus  `bson:"status" json:"status"`
	Notes        string             `bson:"notes" json:"notes"`
	CancelReason string             `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time         `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsValidAppointmentStatus checks if a status is one of the known states.
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentScheduled, AppointmentInProgress, AppointmentCompleted, AppointmentCancelled:
		return true
	default:
		return false
	}
}

// IsValidServiceType checks if a service type is one of the offered services.
func IsValidServiceType(s string) bool {
	switch s {
	case ServiceOilChange, ServiceTireRotation, ServiceBrakeService,
		ServiceBatteryService, ServiceInspection, ServiceDiagnostic, ServiceGeneralRepair:
		return true
	default:
		return false
	}
}
