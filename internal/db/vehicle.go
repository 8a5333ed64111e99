package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uygardev/vehicle-maintenance/internal/models"
)

// MongoVehicleCollection implements VehicleCollection for MongoDB.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle record into the collection.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, vehicle)
	return err
}

// FindVehicles returns all vehicles owned by a user.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context, userID string) ([]models.Vehicle, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindVehicle finds a vehicle by its ID within a user's vehicles.
func (c *MongoVehicleCollection) FindVehicle(ctx context.Context, userID, vehicleID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := c.Collection.FindOne(ctx, bson.M{"user_id": userID, "vehicle_id": vehicleID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle applies a partial update to a vehicle and returns the
// updated document.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, userID, vehicleID string, update models.VehicleUpdate) (*models.Vehicle, error) {
	set := bson.M{"updated_at": time.Now()}
	if update.Make != nil {
		set["make"] = *update.Make
	}
	if update.Model != nil {
		set["model"] = *update.Model
	}
	if update.Year != nil {
		set["year"] = *update.Year
	}
	if update.VIN != nil {
		set["vin"] = *update.VIN
	}
	if update.CurrentMileage != nil {
		set["current_mileage"] = *update.CurrentMileage
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var vehicle models.Vehicle
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID, "vehicle_id": vehicleID},
		bson.M{"$set": set},
		opts,
	).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// DeleteVehicle deletes a vehicle owned by a user.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, userID, vehicleID string) error {
	result, err := c.Collection.DeleteOne(ctx, bson.M{"user_id": userID, "vehicle_id": vehicleID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAllVehicles returns every vehicle across all users.
func (c *MongoVehicleCollection) FindAllVehicles(ctx context.Context) ([]models.Vehicle, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}
