package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autocarepro/autocare-server/internal/models"
)

func TestNewFromEnv_Unconfigured(t *testing.T) {
	os.Unsetenv("MQTT_BROKER")

	p, err := NewFromEnv()
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestPublisher_NilIsNoop(t *testing.T) {
	var p *Publisher

	// Must not panic when publishing is disabled.
	p.AppointmentChanged("created", &models.Appointment{VehicleID: "vehicle-1"})
	p.MaintenanceChanged("updated", &models.MaintenanceRecord{VehicleID: "vehicle-1"})
	p.Close()
}
