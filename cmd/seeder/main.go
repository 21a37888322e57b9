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

	log "github.com/sirupsen/logrus"
)

// Vehicle mirrors the API's vehicle payload.
type Vehicle struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	VIN          string `json:"vin"`
	LicensePlate string `json:"license_plate"`
	Mileage      int    `json:"mileage"`
}

// Appointment mirrors the API's appointment payload.
type Appointment struct {
	VehicleID   string    `json:"vehicle_id"`
	ProviderID  string    `json:"provider_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	ServiceType string    `json:"service_type"`
	Notes       string    `json:"notes,omitempty"`
}

var makesAndModels = map[string][]string{
	"Toyota":    {"Corolla", "Camry", "RAV4", "Hilux"},
	"Honda":     {"Civic", "Accord", "CR-V"},
	"Ford":      {"Focus", "F-150", "Escape"},
	"Chevrolet": {"Silverado", "Malibu", "Equinox"},
	"BMW":       {"X5", "3 Series", "5 Series"},
	"Nissan":    {"Altima", "Sentra", "Rogue"},
}

var serviceTypes = []string{
	"oil_change", "tire_rotation", "brake_service",
	"battery_service", "inspection", "diagnostic",
}

var authToken string

func authorizedPost(url string, body *bytes.Buffer) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

// registerAndLogin creates the demo account if it does not exist yet and
// returns a bearer token for it.
func registerAndLogin(apiURL, username, password, role string) (token string, userID string, err error) {
	regBody, _ := json.Marshal(map[string]string{
		"username":   username,
		"email":      username + "@example.com",
		"password":   password,
		"first_name": "Demo",
		"last_name":  "User",
		"role":       role,
	})
	resp, err := authorizedPost(apiURL+"/auth/register", bytes.NewBuffer(regBody))
	if err != nil {
		return "", "", fmt.Errorf("register request failed: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		return "", "", fmt.Errorf("registration failed with status: %d", resp.StatusCode)
	}

	loginBody, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	resp, err = authorizedPost(apiURL+"/auth/login", bytes.NewBuffer(loginBody))
	if err != nil {
		return "", "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", fmt.Errorf("failed to decode login response: %w", err)
	}
	return result.Token, result.User.ID, nil
}

func randomVIN() string {
	const chars = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"
	vin := make([]byte, 17)
	for i := range vin {
		vin[i] = chars[rand.Intn(len(chars))]
	}
	return string(vin)
}

func createVehicle(apiURL string, i int) (string, error) {
	makes := make([]string, 0, len(makesAndModels))
	for m := range makesAndModels {
		makes = append(makes, m)
	}
	vmake := makes[rand.Intn(len(makes))]
	model := makesAndModels[vmake][rand.Intn(len(makesAndModels[vmake]))]

	vehicle := Vehicle{
		Make:         vmake,
		Model:        model,
		Year:         2015 + rand.Intn(10),
		VIN:          randomVIN(),
		LicensePlate: fmt.Sprintf("DEMO-%03d", i+1),
		Mileage:      10000 + rand.Intn(150000),
	}

	data, err := json.Marshal(vehicle)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vehicle: %w", err)
	}

	resp, err := authorizedPost(apiURL+"/vehicles", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid vehicle ID in response")
	}

	log.WithFields(log.Fields{
		"vehicle_id": id,
		"make":       vmake,
		"model":      model,
	}).Info("Created vehicle")

	return id, nil
}

func createAppointment(apiURL, vehicleID, providerID string) error {
	appointment := Appointment{
		VehicleID:   vehicleID,
		ProviderID:  providerID,
		ScheduledAt: time.Now().Add(time.Duration(1+rand.Intn(14)) * 24 * time.Hour),
		ServiceType: serviceTypes[rand.Intn(len(serviceTypes))],
		Notes:       "Seeded booking",
	}

	data, err := json.Marshal(appointment)
	if err != nil {
		return fmt.Errorf("failed to marshal appointment: %w", err)
	}

	resp, err := authorizedPost(apiURL+"/appointments", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("appointment creation failed with status: %d", resp.StatusCode)
	}

	log.WithFields(log.Fields{
		"vehicle_id":   vehicleID,
		"service_type": appointment.ServiceType,
	}).Info("Created appointment")

	return nil
}

func main() {
	count := 10
	if val := os.Getenv("SEED_VEHICLES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			count = n
		}
	}

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	log.WithFields(log.Fields{
		"vehicles": count,
		"api_url":  apiURL,
	}).Info("Seeding demo data")

	_, providerID, err := registerAndLogin(apiURL, "demo-provider", "provider-pass-123", "provider")
	if err != nil {
		log.WithError(err).Fatal("Failed to set up provider account")
	}

	token, _, err := registerAndLogin(apiURL, "demo-customer", "customer-pass-123", "customer")
	if err != nil {
		log.WithError(err).Fatal("Failed to set up customer account")
	}
	authToken = token

	created := 0
	for i := 0; i < count; i++ {
		vehicleID, err := createVehicle(apiURL, i)
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		created++

		if err := createAppointment(apiURL, vehicleID, providerID); err != nil {
			log.WithError(err).Error("Failed to create appointment")
		}
	}

	log.WithField("created_vehicles", created).Info("Seeding completed")
	if created == 0 {
		log.Error("No vehicles created. Ensure the API is reachable.")
		os.Exit(1)
	}
}
