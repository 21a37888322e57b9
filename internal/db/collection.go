package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/autocarepro/autocare-server/internal/models"
)

// ErrNotFound is returned when a lookup, update or delete matches no document.
var ErrNotFound = errors.New("not found")

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle *models.Vehicle) error
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
}

// AppointmentCollection defines the interface for appointment data operations.
type AppointmentCollection interface {
	InsertAppointment(ctx context.Context, appointment *models.Appointment) error
	FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error)
	FindAppointments(ctx context.Context, filter bson.M) ([]models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, appointment models.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
}

// MaintenanceRecordCollection defines the interface for maintenance record data operations.
type MaintenanceRecordCollection interface {
	InsertMaintenanceRecord(ctx context.Context, record *models.MaintenanceRecord) error
	FindMaintenanceRecordByID(ctx context.Context, id string) (*models.MaintenanceRecord, error)
	FindMaintenanceRecords(ctx context.Context, filter bson.M) ([]models.MaintenanceRecord, error)
	UpdateMaintenanceRecord(ctx context.Context, id string, record models.MaintenanceRecord) error
	DeleteMaintenanceRecord(ctx context.Context, id string) error
}

// ReviewCollection defines the interface for review data operations.
type ReviewCollection interface {
	InsertReview(ctx context.Context, review *models.Review) error
	FindReviewByID(ctx context.Context, id string) (*models.Review, error)
	FindReviews(ctx context.Context, filter bson.M) ([]models.Review, error)
	UpdateReview(ctx context.Context, id string, review models.Review) error
	DeleteReview(ctx context.Context, id string) error
}

// UserCollection defines the interface for user database operations.
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, user models.User) error
	DeleteUser(ctx context.Context, id string) error
	UpdateLastLogin(ctx context.Context, id string) error
}
