package db

import (
	"context"

	"github.com/uygardev/vehicle-maintenance/internal/models"
)

// VehicleCollection defines the interface for vehicle data operations.
// Vehicles are scoped to their owner: every lookup takes the user ID.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) error
	FindVehicles(ctx context.Context, userID string) ([]models.Vehicle, error)
	FindVehicle(ctx context.Context, userID, vehicleID string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, userID, vehicleID string, update models.VehicleUpdate) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, userID, vehicleID string) error
	// FindAllVehicles returns every vehicle in the system. Used by the
	// reminder job only.
	FindAllVehicles(ctx context.Context) ([]models.Vehicle, error)
}

// ServiceCollection defines the interface for service record operations.
type ServiceCollection interface {
	InsertService(ctx context.Context, record models.ServiceRecord) error
	// FindServices returns all records for a vehicle, newest first.
	FindServices(ctx context.Context, vehicleID string) ([]models.ServiceRecord, error)
	// FindServiceByUser looks a record up by its ID within a user's records.
	FindServiceByUser(ctx context.Context, userID, serviceID string) (*models.ServiceRecord, error)
	UpdateService(ctx context.Context, vehicleID, serviceID string, update models.ServiceRecordUpdate) (*models.ServiceRecord, error)
	DeleteService(ctx context.Context, vehicleID, serviceID string) error
}

// UserCollection defines the interface for user database operations.
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, user models.User) error
	UpdateLastLogin(ctx context.Context, id string) error
}
