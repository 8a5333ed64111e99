package handlers

import (
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/uygardev/vehicle-maintenance/internal/db"
	"github.com/uygardev/vehicle-maintenance/internal/middleware"
	"github.com/uygardev/vehicle-maintenance/internal/models"
	"github.com/uygardev/vehicle-maintenance/internal/prediction"
)

// PredictionHandler serves maintenance forecasts for a vehicle.
type PredictionHandler struct {
	vehicles db.VehicleCollection
	services db.ServiceCollection
	engine   *prediction.Engine
	now      func() time.Time
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(vehicles db.VehicleCollection, services db.ServiceCollection, engine *prediction.Engine) *PredictionHandler {
	return &PredictionHandler{
		vehicles: vehicles,
		services: services,
		engine:   engine,
		now:      time.Now,
	}
}

// PredictionsResponse is the payload returned by Get.
type PredictionsResponse struct {
	VehicleID   string              `json:"vehicle_id"`
	Predictions []models.Prediction `json:"predictions"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// Get computes the forecast for a vehicle owned by the authenticated user.
func (h *PredictionHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicleID := r.PathValue("vehicleID")
	vehicle, err := h.vehicles.FindVehicle(r.Context(), claims.UserID, vehicleID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		log.WithError(err).Error("failed to fetch vehicle")
		respondError(w, http.StatusInternalServerError, "Failed to compute predictions")
		return
	}

	records, err := h.services.FindServices(r.Context(), vehicleID)
	if err != nil {
		log.WithError(err).Error("failed to load service history")
		respondError(w, http.StatusInternalServerError, "Failed to compute predictions")
		return
	}

	// Sample the clock once so the whole forecast shares a single instant.
	now := h.now()
	predictions := h.engine.Forecast(*vehicle, records, now)

	respondJSON(w, http.StatusOK, PredictionsResponse{
		VehicleID:   vehicleID,
		Predictions: predictions,
		GeneratedAt: now,
	})
}
