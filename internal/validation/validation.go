// Package validation holds the stateless field-rule checkers applied before
// any entity is persisted. Each checker inspects required fields and numeric
// ranges and returns a Result carrying a validity flag and a human-readable
// message; none of them touch the database.
package validation

import (
	"fmt"
	"time"

	"github.com/autocarepro/autocare-server/internal/models"
)

// MinVehicleYear is the oldest model year accepted for a vehicle.
const MinVehicleYear = 1900

// Result is the outcome of validating an entity.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func pass() Result {
	return Result{Valid: true}
}

func fail(format string, args ...interface{}) Result {
	return Result{Valid: false, Message: fmt.Sprintf(format, args...)}
}

// ValidateVehicle checks the required fields and year/mileage ranges of a vehicle.
func ValidateVehicle(v *models.Vehicle, now time.Time) Result {
	if v.OwnerID == "" {
		return fail("owner is required")
	}
	if v.Make == "" {
		return fail("make is required")
	}
	if v.Model == "" {
		return fail("model is required")
	}
	if v.Year < MinVehicleYear || v.Year > now.Year() {
		return fail("year must be between %d and %d", MinVehicleYear, now.Year())
	}
	if v.VIN == "" {
		return fail("VIN is required")
	}
	if v.LicensePlate == "" {
		return fail("license plate is required")
	}
	if v.Mileage < 0 {
		return fail("mileage cannot be negative")
	}
	return pass()
}

// ValidateAppointment checks the references, schedule and enumerations of an appointment.
func ValidateAppointment(a *models.Appointment) Result {
	if a.VehicleID == "" {
		return fail("vehicle is required")
	}
	if a.CustomerID == "" {
		return fail("customer is required")
	}
	if a.ProviderID == "" {
		return fail("provider is required")
	}
	if a.ScheduledAt.IsZero() {
		return fail("scheduled time is required")
	}
	if !models.IsValidServiceType(a.ServiceType) {
		return fail("unknown service type %q", a.ServiceType)
	}
	if !models.IsValidAppointmentStatus(a.Status) {
		return fail("unknown appointment status %q", a.Status)
	}
	return pass()
}

// ValidateMaintenanceRecord checks the references, cost and enumerations of a maintenance record.
func ValidateMaintenanceRecord(m *models.MaintenanceRecord) Result {
	if m.VehicleID == "" {
		return fail("vehicle is required")
	}
	if !models.IsValidServiceType(m.ServiceType) {
		return fail("unknown service type %q", m.ServiceType)
	}
	if m.Cost < 0 {
		return fail("cost cannot be negative")
	}
	if m.Date.IsZero() {
		return fail("service date is required")
	}
	if !models.IsValidMaintenanceStatus(m.Status) {
		return fail("unknown maintenance status %q", m.Status)
	}
	return pass()
}

// ValidateReview checks the references and rating range of a review.
func ValidateReview(r *models.Review) Result {
	if r.CustomerID == "" {
		return fail("customer is required")
	}
	if r.ProviderID == "" {
		return fail("provider is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fail("rating must be between 1 and 5")
	}
	return pass()
}
