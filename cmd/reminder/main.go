package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/uygardev/vehicle-maintenance/internal/db"
	"github.com/uygardev/vehicle-maintenance/internal/notify"
	"github.com/uygardev/vehicle-maintenance/internal/prediction"
)

// Reminder job: walks every vehicle, forecasts its maintenance, and sends a
// reminder for anything due within the next week. Meant to run on a daily
// schedule (cron, systemd timer, etc.).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	database := db.Database(client)
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	services := &db.MongoServiceCollection{Collection: database.Collection("services")}

	sender, err := notify.NewSender()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MQTT broker")
	}
	defer sender.Close()
	if !sender.Enabled() {
		log.Warn("MQTT_BROKER not set, reminders will be computed but not delivered")
	}

	engine := prediction.NewEngine(prediction.DefaultRules())

	ctx := context.Background()
	all, err := vehicles.FindAllVehicles(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to list vehicles")
	}
	log.Infof("found %d vehicles", len(all))

	// One instant for the whole run keeps every forecast comparable.
	now := time.Now()

	sent := 0
	for _, vehicle := range all {
		records, err := services.FindServices(ctx, vehicle.VehicleID)
		if err != nil {
			log.WithError(err).WithField("vehicle_id", vehicle.VehicleID).Error("failed to load service history")
			continue
		}

		due := notify.DueSoon(engine.Forecast(vehicle, records, now))
		if len(due) == 0 {
			continue
		}

		log.WithFields(log.Fields{
			"vehicle_id": vehicle.VehicleID,
			"user_id":    vehicle.UserID,
			"services":   len(due),
		}).Info("services due soon")

		if err := sender.SendReminder(vehicle, due); err != nil {
			log.WithError(err).WithField("vehicle_id", vehicle.VehicleID).Error("failed to send reminder")
			continue
		}
		if sender.Enabled() {
			sent++
		}
	}

	log.Infof("reminder check completed: %d vehicles processed, %d reminders sent", len(all), sent)
}
