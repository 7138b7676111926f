// Copyright 2025 coldtrack
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shipment_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldtrack/coldtrack/engine/shipment"
)

func TestShipmentStatusChain(t *testing.T) {
	shp := shipment.New(uuid.New(), uuid.New(), uuid.New(), 100)
	assert.Equal(t, shipment.StatusCreated, shp.GetStatus())

	// Skipping a step is not allowed.
	assert.Error(t, shp.SetStatus(shipment.StatusInTransit))

	for _, status := range []shipment.Status{
		shipment.StatusDocked,
		shipment.StatusInTransit,
		shipment.StatusArrived,
		shipment.StatusDelivered,
	} {
		require.NoError(t, shp.SetStatus(status))
		assert.Equal(t, status, shp.GetStatus())
	}
	assert.True(t, shp.GetStatus().Terminal())
	assert.Error(t, shp.SetStatus(shipment.StatusCreated))
}

func TestShipmentReadings(t *testing.T) {
	shp := shipment.New(uuid.New(), uuid.New(), uuid.New(), 100)
	require.NoError(t, shp.AddReading(4.5))
	require.NoError(t, shp.SetStatus(shipment.StatusDocked))
	require.NoError(t, shp.AddReading(5.1))

	// Recording never changes the status.
	assert.Equal(t, shipment.StatusDocked, shp.GetStatus())
	assert.Equal(t, []float64{4.5, 5.1}, shp.GetReadings())
}

func TestShipmentReadingsAfterDelivery(t *testing.T) {
	shp := shipment.New(uuid.New(), uuid.New(), uuid.New(), 100)
	for _, status := range []shipment.Status{
		shipment.StatusDocked,
		shipment.StatusInTransit,
		shipment.StatusArrived,
		shipment.StatusDelivered,
	} {
		require.NoError(t, shp.SetStatus(status))
	}
	assert.Error(t, shp.AddReading(4.5))
	assert.Empty(t, shp.GetReadings())
}

func TestShipmentRoundTrip(t *testing.T) {
	arrival := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	shp := shipment.New(uuid.New(), uuid.New(), uuid.New(), 100)
	require.NoError(t, shp.AddReading(4.5))
	shp.SetArrival(arrival)

	b, err := shp.ToBytes()
	require.NoError(t, err)
	restored, err := shipment.FromBytes(b)
	require.NoError(t, err)

	assert.Equal(t, shp.GetID(), restored.GetID())
	assert.Equal(t, shipment.StatusCreated, restored.GetStatus())
	assert.Equal(t, []float64{4.5}, restored.GetReadings())
	assert.Equal(t, arrival, restored.GetArrival())
}
