package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/autocarepro/autocare-server/internal/models"
)

// MongoMaintenanceRecordCollection implements MaintenanceRecordCollection for MongoDB.
type MongoMaintenanceRecordCollection struct {
	Collection *mongo.Collection
}

// InsertMaintenanceRecord inserts a maintenance record and fills in its generated ID.
func (c *MongoMaintenanceRecordCollection) InsertMaintenanceRecord(ctx context.Context, record *models.MaintenanceRecord) error {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Parts == nil {
		record.Parts = []string{}
	}

	res, err := c.Collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return nil
}

// FindMaintenanceRecordByID finds a maintenance record by its ID.
func (c *MongoMaintenanceRecordCollection) FindMaintenanceRecordByID(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid maintenance record ID: %w", err)
	}

	var record models.MaintenanceRecord
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindMaintenanceRecords queries maintenance records matching the filter.
func (c *MongoMaintenanceRecordCollection) FindMaintenanceRecords(ctx context.Context, filter bson.M) ([]models.MaintenanceRecord, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.MaintenanceRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateMaintenanceRecord updates a maintenance record by its ID.
func (c *MongoMaintenanceRecordCollection) UpdateMaintenanceRecord(ctx context.Context, id string, record models.MaintenanceRecord) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid maintenance record ID: %w", err)
	}

	record.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": record})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMaintenanceRecord deletes a maintenance record by its ID.
func (c *MongoMaintenanceRecordCollection) DeleteMaintenanceRecord(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid maintenance record ID: %w", err)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
