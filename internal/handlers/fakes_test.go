package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/uygardev/vehicle-maintenance/internal/db"
	"github.com/uygardev/vehicle-maintenance/internal/middleware"
	"github.com/uygardev/vehicle-maintenance/internal/models"
)

// In-memory stand-ins for the Mongo collections, enough to exercise the
// handlers without a database.

type fakeVehicles struct {
	items []models.Vehicle
}

func (f *fakeVehicles) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()
	f.items = append(f.items, vehicle)
	return nil
}

func (f *fakeVehicles) FindVehicles(ctx context.Context, userID string) ([]models.Vehicle, error) {
	out := []models.Vehicle{}
	for _, v := range f.items {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVehicles) FindVehicle(ctx context.Context, userID, vehicleID string) (*models.Vehicle, error) {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].VehicleID == vehicleID {
			v := f.items[i]
			return &v, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeVehicles) UpdateVehicle(ctx context.Context, userID, vehicleID string, update models.VehicleUpdate) (*models.Vehicle, error) {
	for i := range f.items {
		if f.items[i].UserID != userID || f.items[i].VehicleID != vehicleID {
			continue
		}
		if update.Make != nil {
			f.items[i].Make = *update.Make
		}
		if update.Model != nil {
			f.items[i].Model = *update.Model
		}
		if update.Year != nil {
			f.items[i].Year = *update.Year
		}
		if update.VIN != nil {
			f.items[i].VIN = *update.VIN
		}
		if update.CurrentMileage != nil {
			f.items[i].CurrentMileage = *update.CurrentMileage
		}
		f.items[i].UpdatedAt = time.Now()
		v := f.items[i]
		return &v, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeVehicles) DeleteVehicle(ctx context.Context, userID, vehicleID string) error {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].VehicleID == vehicleID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeVehicles) FindAllVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return append([]models.Vehicle{}, f.items...), nil
}

type fakeServices struct {
	items []models.ServiceRecord
}

func (f *fakeServices) InsertService(ctx context.Context, record models.ServiceRecord) error {
	record.CreatedAt = time.Now()
	f.items = append(f.items, record)
	return nil
}

func (f *fakeServices) FindServices(ctx context.Context, vehicleID string) ([]models.ServiceRecord, error) {
	out := []models.ServiceRecord{}
	for _, r := range f.items {
		if r.VehicleID == vehicleID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ServiceDate.After(out[j].ServiceDate)
	})
	return out, nil
}

func (f *fakeServices) FindServiceByUser(ctx context.Context, userID, serviceID string) (*models.ServiceRecord, error) {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ServiceID == serviceID {
			r := f.items[i]
			return &r, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeServices) UpdateService(ctx context.Context, vehicleID, serviceID string, update models.ServiceRecordUpdate) (*models.ServiceRecord, error) {
	if update == (models.ServiceRecordUpdate{}) {
		return nil, db.ErrNoFields
	}
	for i := range f.items {
		if f.items[i].VehicleID != vehicleID || f.items[i].ServiceID != serviceID {
			continue
		}
		if update.ServiceType != nil {
			f.items[i].ServiceType = *update.ServiceType
		}
		if update.ServiceDate != nil {
			f.items[i].ServiceDate = *update.ServiceDate
		}
		if update.Mileage != nil {
			f.items[i].Mileage = *update.Mileage
		}
		if update.Description != nil {
			f.items[i].Description = *update.Description
		}
		if update.Cost != nil {
			f.items[i].Cost = *update.Cost
		}
		if update.ServiceProvider != nil {
			f.items[i].ServiceProvider = *update.ServiceProvider
		}
		if update.Notes != nil {
			f.items[i].Notes = *update.Notes
		}
		r := f.items[i]
		return &r, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeServices) DeleteService(ctx context.Context, vehicleID, serviceID string) error {
	for i := range f.items {
		if f.items[i].VehicleID == vehicleID && f.items[i].ServiceID == serviceID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

type fakeUsers struct {
	items []models.User
}

func (f *fakeUsers) InsertUser(ctx context.Context, user models.User) error {
	user.IsActive = true
	f.items = append(f.items, user)
	return nil
}

func (f *fakeUsers) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			u := f.items[i]
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeUsers) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range f.items {
		if f.items[i].Email == email {
			u := f.items[i]
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeUsers) UpdateUser(ctx context.Context, id string, user models.User) error {
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			f.items[i] = user
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeUsers) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			f.items[i].LastLogin = &now
			return nil
		}
	}
	return db.ErrNotFound
}

// withClaims injects authenticated user claims the way the auth middleware
// would, without needing a real token.
func withClaims(next http.Handler, claims *models.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
