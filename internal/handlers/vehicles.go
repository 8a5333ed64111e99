package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/uygardev/vehicle-maintenance/internal/db"
	"github.com/uygardev/vehicle-maintenance/internal/middleware"
	"github.com/uygardev/vehicle-maintenance/internal/models"
)

// VehicleHandler handles vehicle CRUD requests.
type VehicleHandler struct {
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// List returns all vehicles owned by the authenticated user.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicles, err := h.vehicles.FindVehicles(r.Context(), claims.UserID)
	if err != nil {
		log.WithError(err).Error("failed to list vehicles")
		respondError(w, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"vehicles": vehicles})
}

// Get returns a single vehicle owned by the authenticated user.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicle, err := h.vehicles.FindVehicle(r.Context(), claims.UserID, r.PathValue("vehicleID"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		log.WithError(err).Error("failed to fetch vehicle")
		respondError(w, http.StatusInternalServerError, "Failed to fetch vehicle")
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

// Create registers a new vehicle for the authenticated user.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var body struct {
		VehicleID      string  `json:"vehicle_id"`
		Make           string  `json:"make"`
		Model          string  `json:"model"`
		Year           int     `json:"year"`
		VIN            string  `json:"vin"`
		CurrentMileage float64 `json:"current_mileage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vehicleID := body.VehicleID
	if vehicleID == "" {
		vehicleID = "vehicle-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	vehicle := models.Vehicle{
		UserID:         claims.UserID,
		VehicleID:      vehicleID,
		Make:           body.Make,
		Model:          body.Model,
		Year:           body.Year,
		VIN:            body.VIN,
		CurrentMileage: body.CurrentMileage,
	}
	if err := h.vehicles.InsertVehicle(r.Context(), vehicle); err != nil {
		log.WithError(err).Error("failed to create vehicle")
		respondError(w, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	created, err := h.vehicles.FindVehicle(r.Context(), claims.UserID, vehicleID)
	if err != nil {
		log.WithError(err).Error("failed to read back created vehicle")
		respondError(w, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a vehicle.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var update models.VehicleUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vehicle, err := h.vehicles.UpdateVehicle(r.Context(), claims.UserID, r.PathValue("vehicleID"), update)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		log.WithError(err).Error("failed to update vehicle")
		respondError(w, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

// Delete removes a vehicle owned by the authenticated user.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), claims.UserID, r.PathValue("vehicleID")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		log.WithError(err).Error("failed to delete vehicle")
		respondError(w, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted successfully"})
}
