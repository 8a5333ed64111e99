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

// ServiceHandler handles service record CRUD requests.
type ServiceHandler struct {
	vehicles db.VehicleCollection
	services db.ServiceCollection
}

// NewServiceHandler creates a new service record handler.
func NewServiceHandler(vehicles db.VehicleCollection, services db.ServiceCollection) *ServiceHandler {
	return &ServiceHandler{vehicles: vehicles, services: services}
}

// ownsVehicle reports whether the vehicle exists and belongs to the user.
func (h *ServiceHandler) ownsVehicle(r *http.Request, userID, vehicleID string) (bool, error) {
	_, err := h.vehicles.FindVehicle(r.Context(), userID, vehicleID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns all service records for a vehicle, newest first.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicleID := r.PathValue("vehicleID")
	owns, err := h.ownsVehicle(r, claims.UserID, vehicleID)
	if err != nil {
		log.WithError(err).Error("failed to verify vehicle ownership")
		respondError(w, http.StatusInternalServerError, "Failed to list services")
		return
	}
	if !owns {
		respondError(w, http.StatusForbidden, "Access denied")
		return
	}

	records, err := h.services.FindServices(r.Context(), vehicleID)
	if err != nil {
		log.WithError(err).Error("failed to list services")
		respondError(w, http.StatusInternalServerError, "Failed to list services")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"services": records})
}

// Create records a new maintenance event for a vehicle.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	vehicleID := r.PathValue("vehicleID")
	owns, err := h.ownsVehicle(r, claims.UserID, vehicleID)
	if err != nil {
		log.WithError(err).Error("failed to verify vehicle ownership")
		respondError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}
	if !owns {
		respondError(w, http.StatusForbidden, "Access denied")
		return
	}

	var body struct {
		ServiceID       string     `json:"service_id"`
		ServiceType     string     `json:"service_type"`
		ServiceDate     *time.Time `json:"service_date"`
		Mileage         float64    `json:"mileage"`
		Description     string     `json:"description"`
		Cost            float64    `json:"cost"`
		ServiceProvider string     `json:"service_provider"`
		Notes           string     `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	serviceID := body.ServiceID
	if serviceID == "" {
		serviceID = "service-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	serviceDate := time.Now()
	if body.ServiceDate != nil {
		serviceDate = *body.ServiceDate
	}

	record := models.ServiceRecord{
		VehicleID:       vehicleID,
		ServiceID:       serviceID,
		UserID:          claims.UserID,
		ServiceType:     body.ServiceType,
		ServiceDate:     serviceDate,
		Mileage:         body.Mileage,
		Description:     body.Description,
		Cost:            body.Cost,
		ServiceProvider: body.ServiceProvider,
		Notes:           body.Notes,
	}
	if err := h.services.InsertService(r.Context(), record); err != nil {
		log.WithError(err).Error("failed to create service record")
		respondError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	created, err := h.services.FindServiceByUser(r.Context(), claims.UserID, serviceID)
	if err != nil {
		log.WithError(err).Error("failed to read back created service record")
		respondError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a service record owned by the user.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	serviceID := r.PathValue("serviceID")
	existing, err := h.services.FindServiceByUser(r.Context(), claims.UserID, serviceID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Service not found")
			return
		}
		log.WithError(err).Error("failed to fetch service record")
		respondError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}

	var update models.ServiceRecordUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	record, err := h.services.UpdateService(r.Context(), existing.VehicleID, serviceID, update)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNoFields):
			respondError(w, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, db.ErrNotFound):
			respondError(w, http.StatusNotFound, "Service not found")
		default:
			log.WithError(err).Error("failed to update service record")
			respondError(w, http.StatusInternalServerError, "Failed to update service")
		}
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// Delete removes a service record owned by the user.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	serviceID := r.PathValue("serviceID")
	existing, err := h.services.FindServiceByUser(r.Context(), claims.UserID, serviceID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Service not found")
			return
		}
		log.WithError(err).Error("failed to fetch service record")
		respondError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	if err := h.services.DeleteService(r.Context(), existing.VehicleID, serviceID); err != nil {
		log.WithError(err).Error("failed to delete service record")
		respondError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Service deleted successfully"})
}
