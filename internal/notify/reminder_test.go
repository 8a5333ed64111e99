package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uygardev/vehicle-maintenance/internal/models"
)

func TestDueSoon(t *testing.T) {
	predictions := []models.Prediction{
		{ServiceType: "oil_change", DaysUntil: -20, IsOverdue: true},
		{ServiceType: "tire_rotation", DaysUntil: 0},
		{ServiceType: "brake_check", DaysUntil: 7},
		{ServiceType: "air_filter", DaysUntil: 8},
		{ServiceType: "battery_check", DaysUntil: 365},
	}

	due := DueSoon(predictions)

	var types []string
	for _, p := range due {
		types = append(types, p.ServiceType)
	}
	assert.Equal(t, []string{"oil_change", "tire_rotation", "brake_check"}, types)
}

func TestDueSoon_Empty(t *testing.T) {
	assert.Empty(t, DueSoon(nil))
	assert.Empty(t, DueSoon([]models.Prediction{{DaysUntil: 30}}))
}

func TestBuildMessage(t *testing.T) {
	vehicle := models.Vehicle{
		UserID:    "user-1",
		VehicleID: "vehicle-1",
		Make:      "Toyota",
		Model:     "Camry",
		Year:      2021,
	}
	due := []models.Prediction{
		{ServiceName: "Oil Change", DaysUntil: -20, IsOverdue: true},
		{ServiceName: "Tire Rotation", DaysUntil: 3},
	}

	msg := BuildMessage(vehicle, due)

	assert.Equal(t, "Service Reminder: Toyota Camry", msg.Subject)
	assert.Contains(t, msg.Body, "2021 Toyota Camry")
	assert.Contains(t, msg.Body, "- Oil Change: OVERDUE")
	assert.Contains(t, msg.Body, "- Tire Rotation: Due in 3 days")
}

func TestSender_DisabledIsNoOp(t *testing.T) {
	sender := &Sender{}

	assert.False(t, sender.Enabled())
	assert.NoError(t, sender.SendReminder(models.Vehicle{VehicleID: "vehicle-1"}, []models.Prediction{{ServiceName: "Oil Change"}}))
	assert.NoError(t, sender.SendReminder(models.Vehicle{VehicleID: "vehicle-1"}, nil))
}
