package models

import (
	"time"
)

// ServiceRecord represents a single maintenance event performed on a vehicle.
// Records are keyed by (vehicle_id, service_id); user_id is stored alongside
// so a record can be looked up by owner without knowing the vehicle.
type ServiceRecord struct {
	VehicleID       string    `bson:"vehicle_id" json:"vehicle_id"`
	ServiceID       string    `bson:"service_id" json:"service_id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	ServiceType     string    `bson:"service_type" json:"service_type"` // e.g. "oil_change", "brake_check"
	ServiceDate     time.Time `bson:"service_date" json:"service_date"`
	Mileage         float64   `bson:"mileage" json:"mileage"` // odometer reading at service time
	Description     string    `bson:"description" json:"description"`
	Cost            float64   `bson:"cost" json:"cost"`
	ServiceProvider string    `bson:"service_provider" json:"service_provider"`
	Notes           string    `bson:"notes" json:"notes"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// ServiceRecordUpdate carries the optional fields of a service record update
// request. Nil pointers mean "leave unchanged".
type ServiceRecordUpdate struct {
	ServiceType     *string    `json:"service_type,omitempty"`
	ServiceDate     *time.Time `json:"service_date,omitempty"`
	Mileage         *float64   `json:"mileage,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Cost            *float64   `json:"cost,omitempty"`
	ServiceProvider *string    `json:"service_provider,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}
