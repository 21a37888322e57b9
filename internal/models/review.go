package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review represents a customer's review of a service provider.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID string             `bson:"customer_id" json:"customer_id"`
	ProviderID string             `bson:"provider_id" json:"provider_id"`
	Rating     int                `bson:"rating" json:"rating"` // 1-5
	Comment    string             `bson:"comment" json:"comment"`
	Date       time.Time          `bson:"date" json:"date"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
