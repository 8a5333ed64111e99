package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uygardev/vehicle-maintenance/internal/models"
)

// MongoServiceCollection implements ServiceCollection for MongoDB.
type MongoServiceCollection struct {
	Collection *mongo.Collection
}

// InsertService inserts a service record into the collection.
func (c *MongoServiceCollection) InsertService(ctx context.Context, record models.ServiceRecord) error {
	record.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, record)
	return err
}

// FindServices returns all service records for a vehicle, newest first.
func (c *MongoServiceCollection) FindServices(ctx context.Context, vehicleID string) ([]models.ServiceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "service_date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.ServiceRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindServiceByUser looks a record up by its ID within a user's records.
func (c *MongoServiceCollection) FindServiceByUser(ctx context.Context, userID, serviceID string) (*models.ServiceRecord, error) {
	var record models.ServiceRecord
	err := c.Collection.FindOne(ctx, bson.M{"user_id": userID, "service_id": serviceID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdateService applies a partial update to a service record and returns the
// updated document. Returns ErrNoFields when the update is empty.
func (c *MongoServiceCollection) UpdateService(ctx context.Context, vehicleID, serviceID string, update models.ServiceRecordUpdate) (*models.ServiceRecord, error) {
	set := bson.M{}
	if update.ServiceType != nil {
		set["service_type"] = *update.ServiceType
	}
	if update.ServiceDate != nil {
		set["service_date"] = *update.ServiceDate
	}
	if update.Mileage != nil {
		set["mileage"] = *update.Mileage
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Cost != nil {
		set["cost"] = *update.Cost
	}
	if update.ServiceProvider != nil {
		set["service_provider"] = *update.ServiceProvider
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	if len(set) == 0 {
		return nil, ErrNoFields
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var record models.ServiceRecord
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"vehicle_id": vehicleID, "service_id": serviceID},
		bson.M{"$set": set},
		opts,
	).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// DeleteService deletes a service record.
func (c *MongoServiceCollection) DeleteService(ctx context.Context, vehicleID, serviceID string) error {
	result, err := c.Collection.DeleteOne(ctx, bson.M{"vehicle_id": vehicleID, "service_id": serviceID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
