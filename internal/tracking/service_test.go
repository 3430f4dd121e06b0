package tracking

import (
	"context"
	"testing"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrackingRepo struct {
	positions map[int64][2]float64
	active    []ActiveTruck
}

func (f *fakeTrackingRepo) UpdateTruckLocation(ctx context.Context, truckID int64, latitude, longitude float64) error {
	if _, ok := f.positions[truckID]; !ok {
		return ErrTruckNotFound
	}
	f.positions[truckID] = [2]float64{latitude, longitude}
	return nil
}

func (f *fakeTrackingRepo) ActiveTrucks(ctx context.Context) ([]ActiveTruck, error) {
	return f.active, nil
}

func TestUpdateLocationValidatesCoordinates(t *testing.T) {
	f := &fakeTrackingRepo{positions: map[int64][2]float64{1: {0, 0}}}
	svc := NewService(f, logger.NewLogger("test"))

	cases := []struct{ lat, lon float64 }{
		{91, 0}, {-91, 0}, {0, 181}, {0, -181},
	}
	for _, tc := range cases {
		_, err := svc.UpdateLocation(context.Background(), 1, tc.lat, tc.lon)
		assert.ErrorIs(t, err, ErrInvalidCoordinates, "lat=%f lon=%f", tc.lat, tc.lon)
	}
	assert.Equal(t, [2]float64{0, 0}, f.positions[1], "rejected reports never touch the stored position")
}

func TestUpdateLocationStoresAndSnapshots(t *testing.T) {
	f := &fakeTrackingRepo{
		positions: map[int64][2]float64{1: {0, 0}},
		active:    []ActiveTruck{{TruckID: 1, ShipmentID: 5}},
	}
	svc := NewService(f, logger.NewLogger("test"))

	trucks, err := svc.UpdateLocation(context.Background(), 1, 33.5, 36.3)
	require.NoError(t, err)

	assert.Equal(t, [2]float64{33.5, 36.3}, f.positions[1])
	require.Len(t, trucks, 1)
	assert.Equal(t, int64(5), trucks[0].ShipmentID)
}

func TestUpdateLocationUnknownTruck(t *testing.T) {
	f := &fakeTrackingRepo{positions: map[int64][2]float64{}}
	svc := NewService(f, logger.NewLogger("test"))

	_, err := svc.UpdateLocation(context.Background(), 9, 10, 10)
	assert.ErrorIs(t, err, ErrTruckNotFound)
}
