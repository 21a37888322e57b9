// Package notify publishes entity lifecycle events to an MQTT broker so
// shop dashboards can refresh without polling. The publisher is optional:
// when MQTT_BROKER is unset every method is a no-op.
package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/autocarepro/autocare-server/internal/models"
)

const (
	appointmentsTopic = "autocare/events/appointments"
	maintenanceTopic  = "autocare/events/maintenance"

	connectTimeout = 10 * time.Second
)

// Event is the payload published for every entity change.
type Event struct {
	Action    string    `json:"action"` // "created", "updated", "deleted"
	EntityID  string    `json:"entity_id"`
	VehicleID string    `json:"vehicle_id"`
	Status    string    `json:"status,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher publishes events over MQTT. A nil Publisher is valid and
// publishes nothing.
type Publisher struct {
	client mqtt.Client
}

// NewFromEnv connects to the broker named by MQTT_BROKER. It returns
// (nil, nil) when no broker is configured.
func NewFromEnv() (*Publisher, error) {
	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		return nil, nil
	}

	clientID := os.Getenv("MQTT_CLIENT_ID")
	if clientID == "" {
		clientID = "autocare-server"
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}

	log.WithField("broker", broker).Info("Connected to MQTT broker")
	return &Publisher{client: client}, nil
}

// AppointmentChanged publishes an appointment lifecycle event.
func (p *Publisher) AppointmentChanged(action string, a *models.Appointment) {
	p.publish(appointmentsTopic, Event{
		Action:    action,
		EntityID:  a.ID.Hex(),
		VehicleID: a.VehicleID,
		Status:    string(a.Status),
		At:        time.Now(),
	})
}

// MaintenanceChanged publishes a maintenance record lifecycle event.
func (p *Publisher) MaintenanceChanged(action string, m *models.MaintenanceRecord) {
	p.publish(maintenanceTopic, Event{
		Action:    action,
		EntityID:  m.ID.Hex(),
		VehicleID: m.VehicleID,
		Status:    string(m.Status),
		At:        time.Now(),
	})
}

func (p *Publisher) publish(topic string, evt Event) {
	if p == nil || p.client == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		log.WithError(err).Error("Failed to marshal event")
		return
	}
	token := p.client.Publish(topic, 0, false, payload)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			log.WithError(err).WithField("topic", topic).Error("Failed to publish event")
		}
	}()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}
