package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Demo data generator: registers a user through the public API, creates a
// few vehicles, and backfills a plausible service history so the prediction
// endpoints have something to chew on.

type vehicleRequest struct {
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	VIN            string  `json:"vin"`
	CurrentMileage float64 `json:"current_mileage"`
}

type serviceRequest struct {
	ServiceType     string    `json:"service_type"`
	ServiceDate     time.Time `json:"service_date"`
	Mileage         float64   `json:"mileage"`
	Description     string    `json:"description"`
	Cost            float64   `json:"cost"`
	ServiceProvider string    `json:"service_provider"`
}

var makesAndModels = map[string][]string{
	"Ford":      {"F-150", "Focus", "Explorer"},
	"Chevrolet": {"Silverado", "Malibu", "Equinox"},
	"Toyota":    {"Camry", "Corolla", "RAV4"},
	"Honda":     {"Civic", "Accord", "CR-V"},
	"BMW":       {"X5", "3 Series", "5 Series"},
}

var providers = []string{"Joe's Garage", "QuickLube", "Main Street Auto", "Dealership Service"}

var authToken string

func post(apiURL, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, apiURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s returned %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func registerUser(apiURL string) error {
	email := fmt.Sprintf("demo-%d@example.com", time.Now().UnixMilli())
	var result struct {
		Token string `json:"token"`
	}
	err := post(apiURL, "/api/auth/register", map[string]string{
		"email":      email,
		"password":   "demo-password-123",
		"first_name": "Demo",
		"last_name":  "Driver",
	}, &result)
	if err != nil {
		return err
	}
	authToken = result.Token
	log.Infof("registered demo user %s", email)
	return nil
}

func randomVehicle() vehicleRequest {
	makes := make([]string, 0, len(makesAndModels))
	for m := range makesAndModels {
		makes = append(makes, m)
	}
	mk := makes[rand.Intn(len(makes))]
	model := makesAndModels[mk][rand.Intn(len(makesAndModels[mk]))]

	return vehicleRequest{
		Make:           mk,
		Model:          model,
		Year:           2018 + rand.Intn(7),
		VIN:            fmt.Sprintf("SIM%014d", rand.Int63n(1e14)),
		CurrentMileage: float64(20000 + rand.Intn(60000)),
	}
}

// seedHistory posts a service history that walks backwards from the
// vehicle's current mileage, so some services come out due soon and some
// overdue.
func seedHistory(apiURL, vehicleID string, currentMileage float64) error {
	type past struct {
		serviceType string
		daysAgo     int
		milesAgo    float64
		cost        float64
	}
	history := []past{
		{"oil_change", 60 + rand.Intn(150), 2000 + rand.Float64()*4000, 45 + rand.Float64()*30},
		{"tire_rotation", 90 + rand.Intn(120), 3000 + rand.Float64()*5000, 25 + rand.Float64()*20},
		{"brake_check", 200 + rand.Intn(250), 8000 + rand.Float64()*8000, 80 + rand.Float64()*60},
		{"battery_check", 100 + rand.Intn(350), 5000 + rand.Float64()*8000, 0},
	}

	for _, h := range history {
		req := serviceRequest{
			ServiceType:     h.serviceType,
			ServiceDate:     time.Now().AddDate(0, 0, -h.daysAgo),
			Mileage:         currentMileage - h.milesAgo,
			Description:     "Routine " + h.serviceType,
			Cost:            h.cost,
			ServiceProvider: providers[rand.Intn(len(providers))],
		}
		if err := post(apiURL, "/api/vehicles/"+vehicleID+"/services", req, nil); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	count := 3
	if v := os.Getenv("SIMULATOR_VEHICLES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			count = parsed
		}
	}

	if err := registerUser(apiURL); err != nil {
		log.WithError(err).Fatal("failed to register demo user")
	}

	for i := 0; i < count; i++ {
		vehicle := randomVehicle()
		var created struct {
			VehicleID string `json:"vehicle_id"`
		}
		if err := post(apiURL, "/api/vehicles", vehicle, &created); err != nil {
			log.WithError(err).Fatal("failed to create vehicle")
		}
		log.Infof("created %d %s %s (%s)", vehicle.Year, vehicle.Make, vehicle.Model, created.VehicleID)

		if err := seedHistory(apiURL, created.VehicleID, vehicle.CurrentMileage); err != nil {
			log.WithError(err).Fatal("failed to seed service history")
		}
	}

	log.Infof("seeded %d vehicles with service history", count)
}
