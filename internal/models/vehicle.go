package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceDueAfter is how long after the last service a vehicle is
// considered due for maintenance again.
const MaintenanceDueAfter = 6 * 30 * 24 * time.Hour

// Vehicle represents a customer vehicle.
type Vehicle struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID         string             `bson:"owner_id" json:"owner_id"`
	Make            string             `bson:"make" json:"make"`
	Model           string             `bson:"model" json:"model"`
	Year            int                `bson:"year" json:"year"`
	VIN             string             `bson:"vin" json:"vin"`
	LicensePlate    string             `bson:"license_plate" json:"license_plate"`
	Mileage         float64            `bson:"mileage" json:"mileage"` // in kilometers
	LastServiceDate *time.Time         `bson:"last_service_date,omitempty" json:"last_service_date,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// NeedsMaintenance reports whether the vehicle is due for service: it was
// never serviced, or the last service is older than MaintenanceDueAfter.
func (v *Vehicle) NeedsMaintenance(now time.Time) bool {
	if v.LastServiceDate == nil {
		return true
	}
	return now.Sub(*v.LastServiceDate) > MaintenanceDueAfter
}
