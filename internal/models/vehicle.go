package models

import (
	"time"
)

// Vehicle represents a registered vehicle owned by a single user.
// Vehicles are keyed by (user_id, vehicle_id).
type Vehicle struct {
	UserID         string    `bson:"user_id" json:"user_id"`
	VehicleID      string    `bson:"vehicle_id" json:"vehicle_id"`
	Make           string    `bson:"make" json:"make"`
	Model          string    `bson:"model" json:"model"`
	Year           int       `bson:"year" json:"year"`
	VIN            string    `bson:"vin" json:"vin"`
	CurrentMileage float64   `bson:"current_mileage" json:"current_mileage"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// VehicleUpdate carries the optional fields of a vehicle update request.
// Nil pointers mean "leave unchanged".
type VehicleUpdate struct {
	Make           *string  `json:"make,omitempty"`
	Model          *string  `json:"model,omitempty"`
	Year           *int     `json:"year,omitempty"`
	VIN            *string  `json:"vin,omitempty"`
	CurrentMileage *float64 `json:"current_mileage,omitempty"`
}
