package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/autocarepro/autocare-server/internal/auth"
	"github.com/autocarepro/autocare-server/internal/middleware"
	"github.com/autocarepro/autocare-server/internal/models"
)

// MockVehicleCollection is a mock implementation of db.VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	args := m.Called(ctx, id, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// withClaims attaches authenticated claims to a request the way the auth
// middleware does.
func withClaims(req *http.Request, userID string, role models.Role) *http.Request {
	claims := &auth.Claims{UserID: userID, Username: "testuser", Role: role}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}

func vehicleBody(t *testing.T, v models.Vehicle) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestVehicleHandler_Create(t *testing.T) {
	t.Run("valid vehicle persists exactly once", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)

		vehicles.On("InsertVehicle", mock.Anything, mock.Anything).Return(nil)

		body := vehicleBody(t, models.Vehicle{
			Make: "Toyota", Model: "Corolla", Year: 2021,
			VIN: "JTDBU4EE9A9123456", LicensePlate: "KDA 123A", Mileage: 15000,
		})
		req := withClaims(httptest.NewRequest("POST", "/api/vehicles", body), "customer-1", models.RoleCustomer)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		vehicles.AssertNumberOfCalls(t, "InsertVehicle", 1)

		var resp vehicleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "customer-1", resp.OwnerID, "vehicle should belong to the caller")
		assert.Equal(t, "Toyota", resp.Make)
		assert.True(t, resp.NeedsMaintenance, "a never-serviced vehicle is due")
	})

	t.Run("year out of range fails without persisting", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)

		for _, year := range []int{1899, time.Now().Year() + 1} {
			body := vehicleBody(t, models.Vehicle{
				Make: "Toyota", Model: "Corolla", Year: year,
				VIN: "JTDBU4EE9A9123456", LicensePlate: "KDA 123A",
			})
			req := withClaims(httptest.NewRequest("POST", "/api/vehicles", body), "customer-1", models.RoleCustomer)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, "year %d", year)
			assert.Contains(t, w.Body.String(), "year must be between")
		}
		vehicles.AssertNotCalled(t, "InsertVehicle")
	})

	t.Run("missing required field fails", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)

		body := vehicleBody(t, models.Vehicle{Make: "Toyota", Year: 2021})
		req := withClaims(httptest.NewRequest("POST", "/api/vehicles", body), "customer-1", models.RoleCustomer)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		vehicles.AssertNotCalled(t, "InsertVehicle")
	})

	t.Run("persistence failure returns generic error", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)

		vehicles.On("InsertVehicle", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		body := vehicleBody(t, models.Vehicle{
			Make: "Toyota", Model: "Corolla", Year: 2021,
			VIN: "JTDBU4EE9A9123456", LicensePlate: "KDA 123A",
		})
		req := withClaims(httptest.NewRequest("POST", "/api/vehicles", body), "customer-1", models.RoleCustomer)
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestVehicleHandler_Get(t *testing.T) {
	serviced := time.Now().Add(-24 * time.Hour)
	stored := &models.Vehicle{
		ID:              primitive.NewObjectID(),
		OwnerID:         "customer-1",
		Make:            "Honda",
		Model:           "Fit",
		Year:            2017,
		VIN:             "VIN-123",
		LicensePlate:    "KBC 987X",
		Mileage:         78000,
		LastServiceDate: &serviced,
	}

	t.Run("edit pre-population returns every stored field", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)
		vehicles.On("FindVehicleByID", mock.Anything, stored.ID.Hex()).Return(stored, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/vehicles/"+stored.ID.Hex(), nil), "customer-1", models.RoleCustomer)
		req = mux.SetURLVars(req, map[string]string{"id": stored.ID.Hex()})
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp vehicleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, stored.OwnerID, resp.OwnerID)
		assert.Equal(t, stored.Make, resp.Make)
		assert.Equal(t, stored.Model, resp.Model)
		assert.Equal(t, stored.Year, resp.Year)
		assert.Equal(t, stored.VIN, resp.VIN)
		assert.Equal(t, stored.LicensePlate, resp.LicensePlate)
		assert.Equal(t, stored.Mileage, resp.Mileage)
		require.NotNil(t, resp.LastServiceDate)
		assert.False(t, resp.NeedsMaintenance)
	})

	t.Run("customer cannot read another customer's vehicle", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)
		vehicles.On("FindVehicleByID", mock.Anything, stored.ID.Hex()).Return(stored, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/vehicles/"+stored.ID.Hex(), nil), "customer-2", models.RoleCustomer)
		req = mux.SetURLVars(req, map[string]string{"id": stored.ID.Hex()})
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestVehicleHandler_List_ScopedToOwner(t *testing.T) {
	vehicles := new(MockVehicleCollection)
	handler := NewVehicleHandler(vehicles)

	vehicles.On("FindVehicles", mock.Anything, bson.M{"owner_id": "customer-1"}).
		Return([]models.Vehicle{{OwnerID: "customer-1", Make: "Mazda"}}, nil)

	req := withClaims(httptest.NewRequest("GET", "/api/vehicles", nil), "customer-1", models.RoleCustomer)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	vehicles.AssertExpectations(t)

	var resp []vehicleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Mazda", resp[0].Make)
}

func TestVehicleHandler_Update(t *testing.T) {
	stored := &models.Vehicle{
		ID:           primitive.NewObjectID(),
		OwnerID:      "customer-1",
		Make:         "Honda",
		Model:        "Fit",
		Year:         2017,
		VIN:          "VIN-123",
		LicensePlate: "KBC 987X",
	}

	t.Run("valid update persists exactly once", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)

		vehicles.On("FindVehicleByID", mock.Anything, stored.ID.Hex()).Return(stored, nil)
		vehicles.On("UpdateVehicle", mock.Anything, stored.ID.Hex(), mock.Anything).Return(nil)

		body := vehicleBody(t, models.Vehicle{
			Make: "Honda", Model: "Fit", Year: 2017,
			VIN: "VIN-123", LicensePlate: "KBC 987X", Mileage: 81000,
		})
		req := withClaims(httptest.NewRequest("PUT", "/api/vehicles/"+stored.ID.Hex(), body), "customer-1", models.RoleCustomer)
		req = mux.SetURLVars(req, map[string]string{"id": stored.ID.Hex()})
		w := httptest.NewRecorder()

		handler.Update(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		vehicles.AssertNumberOfCalls(t, "UpdateVehicle", 1)
	})

	t.Run("invalid update keeps the entity unchanged", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)

		vehicles.On("FindVehicleByID", mock.Anything, stored.ID.Hex()).Return(stored, nil)

		body := vehicleBody(t, models.Vehicle{
			Make: "Honda", Model: "Fit", Year: 1850,
			VIN: "VIN-123", LicensePlate: "KBC 987X",
		})
		req := withClaims(httptest.NewRequest("PUT", "/api/vehicles/"+stored.ID.Hex(), body), "customer-1", models.RoleCustomer)
		req = mux.SetURLVars(req, map[string]string{"id": stored.ID.Hex()})
		w := httptest.NewRecorder()

		handler.Update(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		vehicles.AssertNotCalled(t, "UpdateVehicle")
	})
}

func TestVehicleHandler_Delete(t *testing.T) {
	stored := &models.Vehicle{
		ID:      primitive.NewObjectID(),
		OwnerID: "customer-1",
		Make:    "Honda", Model: "Fit", Year: 2017,
		VIN: "VIN-123", LicensePlate: "KBC 987X",
	}

	t.Run("without confirmation nothing is deleted", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)

		req := withClaims(httptest.NewRequest("DELETE", "/api/vehicles/"+stored.ID.Hex(), nil), "customer-1", models.RoleCustomer)
		req = mux.SetURLVars(req, map[string]string{"id": stored.ID.Hex()})
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		vehicles.AssertNotCalled(t, "DeleteVehicle")
		vehicles.AssertNotCalled(t, "FindVehicleByID")
	})

	t.Run("with confirmation the vehicle is deleted", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		handler := NewVehicleHandler(vehicles)

		vehicles.On("FindVehicleByID", mock.Anything, stored.ID.Hex()).Return(stored, nil)
		vehicles.On("DeleteVehicle", mock.Anything, stored.ID.Hex()).Return(nil)

		req := withClaims(httptest.NewRequest("DELETE", "/api/vehicles/"+stored.ID.Hex()+"?confirm=true", nil), "customer-1", models.RoleCustomer)
		req = mux.SetURLVars(req, map[string]string{"id": stored.ID.Hex()})
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		vehicles.AssertNumberOfCalls(t, "DeleteVehicle", 1)
	})
}
