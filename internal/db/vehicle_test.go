package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/autocarepro/autocare-server/internal/models"
)

func testVehicleCollection(t *testing.T) *MongoVehicleCollection {
	t.Helper()
	client, err := ConnectMongo()
	if err != nil {
		t.Skipf("failed to create client: %v, skipping integration test", err)
	}
	t.Cleanup(func() { client.Disconnect(context.Background()) })

	collection := client.Database("test_autocare").Collection(VehiclesCollection)
	collection.Drop(context.Background())
	return &MongoVehicleCollection{Collection: collection}
}

func TestMongoVehicleCollection_InsertAndFind(t *testing.T) {
	vehicles := testVehicleCollection(t)

	v := models.Vehicle{
		OwnerID:      "owner-1",
		Make:         "Honda",
		Model:        "Civic",
		Year:         2019,
		VIN:          "2HGFC2F59KH123456",
		LicensePlate: "KBZ 456C",
		Mileage:      61000,
	}
	err := vehicles.InsertVehicle(context.Background(), &v)
	require.NoError(t, err)
	require.False(t, v.ID.IsZero(), "insert should fill in the generated ID")
	assert.NotZero(t, v.CreatedAt)
	assert.NotZero(t, v.UpdatedAt)

	found, err := vehicles.FindVehicleByID(context.Background(), v.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, v.Make, found.Make)
	assert.Equal(t, v.Model, found.Model)
	assert.Equal(t, v.Year, found.Year)
	assert.Equal(t, v.VIN, found.VIN)
	assert.Equal(t, v.LicensePlate, found.LicensePlate)
	assert.Equal(t, v.Mileage, found.Mileage)
	assert.Nil(t, found.LastServiceDate)
}

func TestMongoVehicleCollection_FindVehiclesByOwner(t *testing.T) {
	vehicles := testVehicleCollection(t)

	for _, owner := range []string{"owner-1", "owner-1", "owner-2"} {
		v := models.Vehicle{
			OwnerID: owner, Make: "Ford", Model: "Ranger", Year: 2021,
			VIN: "VIN" + owner, LicensePlate: "PLATE " + owner,
		}
		require.NoError(t, vehicles.InsertVehicle(context.Background(), &v))
	}

	owned, err := vehicles.FindVehicles(context.Background(), bson.M{"owner_id": "owner-1"})
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	all, err := vehicles.FindVehicles(context.Background(), bson.M{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMongoVehicleCollection_Update(t *testing.T) {
	vehicles := testVehicleCollection(t)

	v := models.Vehicle{
		OwnerID: "owner-1", Make: "Toyota", Model: "Hilux", Year: 2018,
		VIN: "VIN-1", LicensePlate: "KCA 001A", Mileage: 90000,
	}
	require.NoError(t, vehicles.InsertVehicle(context.Background(), &v))

	serviced := time.Now().Truncate(time.Millisecond)
	v.Mileage = 95000
	v.LastServiceDate = &serviced
	require.NoError(t, vehicles.UpdateVehicle(context.Background(), v.ID.Hex(), v))

	found, err := vehicles.FindVehicleByID(context.Background(), v.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 95000.0, found.Mileage)
	require.NotNil(t, found.LastServiceDate)

	err = vehicles.UpdateVehicle(context.Background(), "ffffffffffffffffffffffff", v)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoVehicleCollection_Delete(t *testing.T) {
	vehicles := testVehicleCollection(t)

	v := models.Vehicle{
		OwnerID: "owner-1", Make: "Mazda", Model: "Demio", Year: 2015,
		VIN: "VIN-2", LicensePlate: "KCB 002B",
	}
	require.NoError(t, vehicles.InsertVehicle(context.Background(), &v))

	require.NoError(t, vehicles.DeleteVehicle(context.Background(), v.ID.Hex()))

	_, err := vehicles.FindVehicleByID(context.Background(), v.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	err = vehicles.DeleteVehicle(context.Background(), v.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}
