package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/uygardev/vehicle-maintenance/internal/models"
)

// DueSoonWindowDays is the horizon for reminder delivery: anything due within
// a week, overdue included, is worth a nudge.
const DueSoonWindowDays = 7

const publishTimeout = 10 * time.Second

// DueSoon filters a forecast down to the predictions due within the
// reminder window.
func DueSoon(predictions []models.Prediction) []models.Prediction {
	due := []models.Prediction{}
	for _, p := range predictions {
		if p.DaysUntil <= DueSoonWindowDays {
			due = append(due, p)
		}
	}
	return due
}

// Message is the reminder payload published per vehicle.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// BuildMessage renders the reminder for a vehicle and its due services.
func BuildMessage(vehicle models.Vehicle, due []models.Prediction) Message {
	lines := make([]string, 0, len(due))
	for _, p := range due {
		status := fmt.Sprintf("Due in %d days", p.DaysUntil)
		if p.IsOverdue {
			status = "OVERDUE"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", p.ServiceName, status))
	}

	return Message{
		Subject: fmt.Sprintf("Service Reminder: %s %s", vehicle.Make, vehicle.Model),
		Body: fmt.Sprintf(
			"Hello,\n\nYour %d %s %s has the following services due:\n\n%s\n\nPlease schedule these services soon.\n\nVehicle Maintenance Tracker",
			vehicle.Year, vehicle.Make, vehicle.Model, strings.Join(lines, "\n"),
		),
	}
}

// Sender publishes maintenance reminders over MQTT. A zero-value Sender (no
// broker configured) is valid and drops every reminder.
type Sender struct {
	client mqtt.Client
}

// NewSender connects to the broker named by MQTT_BROKER. When the variable
// is unset the sender is disabled rather than failing: reminder delivery is
// optional.
func NewSender() (*Sender, error) {
	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		return &Sender{}, nil
	}

	clientID := os.Getenv("MQTT_CLIENT_ID")
	if clientID == "" {
		clientID = "maintenance-reminder"
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(publishTimeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s failed: %w", broker, err)
	}

	return &Sender{client: client}, nil
}

// Enabled reports whether a broker is connected.
func (s *Sender) Enabled() bool {
	return s != nil && s.client != nil
}

// SendReminder publishes one reminder message for a vehicle. It is a no-op
// when the due list is empty or no broker is configured.
func (s *Sender) SendReminder(vehicle models.Vehicle, due []models.Prediction) error {
	if len(due) == 0 {
		return nil
	}
	if !s.Enabled() {
		log.WithField("vehicle_id", vehicle.VehicleID).Debug("mqtt broker not configured, skipping reminder")
		return nil
	}

	payload, err := json.Marshal(BuildMessage(vehicle, due))
	if err != nil {
		return fmt.Errorf("failed to encode reminder: %w", err)
	}

	topic := "maintenance/reminders/" + vehicle.UserID
	token := s.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s failed: %w", topic, err)
	}

	log.WithFields(log.Fields{
		"vehicle_id": vehicle.VehicleID,
		"user_id":    vehicle.UserID,
		"services":   len(due),
	}).Info("reminder sent")
	return nil
}

// Close disconnects from the broker.
func (s *Sender) Close() {
	if s.Enabled() {
		s.client.Disconnect(250)
	}
}
