package models

import (
	"time"
)

// Prediction is a computed forecast of when a service type is next due for a
// vehicle. It is never persisted; it is recomputed on every query.
type Prediction struct {
	ServiceType             string     `json:"service_type"`
	ServiceName             string     `json:"service_name"`
	NextServiceDate         time.Time  `json:"next_service_date"`
	DaysUntil               int        `json:"days_until"`
	IsOverdue               bool       `json:"is_overdue"`
	LastServiceDate         *time.Time `json:"last_service_date"`
	LastServiceMileage      *float64   `json:"last_service_mileage"`
	CurrentMileage          float64    `json:"current_mileage"`
	RecommendedMileage      float64    `json:"recommended_mileage"`
	RecommendedTimeInterval int        `json:"recommended_time_interval"` // in days
	IsFirstService          bool       `json:"is_first_service"`
}
