package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreateUC(t *testing.T, f *fakeBackend, now time.Time) in.CreateShipmentUseCase {
	t.Helper()
	uc := NewCreateShipmentUseCase(f, f, f, f, f, f, logger.NewLogger("test")).(*createShipmentUseCase)
	uc.now = func() time.Time { return now }
	return uc
}

func seedRefs(f *fakeBackend) {
	f.centers[10] = true
	f.centers[20] = true
	f.priorities[1] = true
}

func TestCreateShipmentRejectsSameCenter(t *testing.T) {
	f := newFakeBackend()
	seedRefs(f)
	f.addTruck(1, 10, true)
	uc := newCreateUC(t, f, time.Now().UTC())

	_, err := uc.Execute(context.Background(), in.CreateShipmentInput{
		TruckID: 1, ShipmentPriorityID: 1, SendCenter: 10, ReceiveCenter: 10,
	})
	assert.ErrorIs(t, err, domain.ErrSameCenter)
	assert.Empty(t, f.shipments)
}

func TestCreateShipmentRequiresReadyTruckAtSendCenter(t *testing.T) {
	f := newFakeBackend()
	seedRefs(f)
	f.addTruck(1, 10, false) // committed to another shipment
	f.addTruck(2, 20, true)  // sitting at the wrong center
	uc := newCreateUC(t, f, time.Now().UTC())

	cases := []struct {
		name    string
		truckID int64
	}{
		{"truck not ready", 1},
		{"truck at other center", 2},
		{"truck missing", 99},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), in.CreateShipmentInput{
				TruckID: tc.truckID, ShipmentPriorityID: 1, SendCenter: 10, ReceiveCenter: 20,
			})
			assert.ErrorIs(t, err, domain.ErrTruckNotAvailable)
		})
	}
	assert.Empty(t, f.shipments)
}

func TestCreateShipmentValidatesReferences(t *testing.T) {
	f := newFakeBackend()
	seedRefs(f)
	f.addTruck(1, 10, true)
	uc := newCreateUC(t, f, time.Now().UTC())

	_, err := uc.Execute(context.Background(), in.CreateShipmentInput{
		TruckID: 1, ShipmentPriorityID: 9, SendCenter: 10, ReceiveCenter: 20,
	})
	assert.ErrorIs(t, err, domain.ErrPriorityNotFound)

	_, err = uc.Execute(context.Background(), in.CreateShipmentInput{
		TruckID: 1, ShipmentPriorityID: 1, SendCenter: 10, ReceiveCenter: 99,
	})
	assert.ErrorIs(t, err, domain.ErrCenterNotFound)

	assert.Empty(t, f.shipments)
	assert.True(t, f.trucks[1].IsReady, "failed creation never reserves the truck")
}

func TestCreateShipmentHappyPath(t *testing.T) {
	f := newFakeBackend()
	seedRefs(f)
	f.addTruck(1, 10, true)
	now := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	uc := newCreateUC(t, f, now)

	shipment, err := uc.Execute(context.Background(), in.CreateShipmentInput{
		TruckID: 1, ShipmentPriorityID: 1, SendCenter: 10, ReceiveCenter: 20,
	})
	require.NoError(t, err)
	require.NotZero(t, shipment.ID)

	assert.False(t, f.trucks[1].IsReady, "the truck is reserved")

	require.Len(t, f.states, 1)
	assert.Equal(t, domain.StateLoading, f.states[0].StatesID)
	assert.Equal(t, shipment.ID, f.states[0].ShipmentID)
	assert.Equal(t, now, f.states[0].StartDate)
	assert.Nil(t, f.states[0].EndDate)

	assert.Contains(t, f.events, "created:1")
}

func TestCreateShipmentRollsBackWhenStateInsertFails(t *testing.T) {
	f := newFakeBackend()
	seedRefs(f)
	f.addTruck(1, 10, true)
	f.failInsertState = true
	uc := newCreateUC(t, f, time.Now().UTC())

	_, err := uc.Execute(context.Background(), in.CreateShipmentInput{
		TruckID: 1, ShipmentPriorityID: 1, SendCenter: 10, ReceiveCenter: 20,
	})
	require.Error(t, err)

	assert.Empty(t, f.shipments, "the shipment row is rolled back")
	assert.True(t, f.trucks[1].IsReady, "the truck reservation is rolled back")
	assert.Empty(t, f.states)
	assert.Empty(t, f.events)
}

func TestCreateThenAdvanceScenario(t *testing.T) {
	f := newFakeBackend()
	seedRefs(f)
	f.addTruck(5, 10, true)
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	createUC := newCreateUC(t, f, base)
	shipment, err := createUC.Execute(context.Background(), in.CreateShipmentInput{
		TruckID: 5, ShipmentPriorityID: 1, SendCenter: 10, ReceiveCenter: 20,
	})
	require.NoError(t, err)

	// the reserved truck cannot take a second shipment
	_, err = createUC.Execute(context.Background(), in.CreateShipmentInput{
		TruckID: 5, ShipmentPriorityID: 1, SendCenter: 10, ReceiveCenter: 20,
	})
	assert.ErrorIs(t, err, domain.ErrTruckNotAvailable)

	for i, target := range []int{2, 3, 4} {
		advUC := newAdvanceUC(t, f, base.Add(time.Duration(i+1)*time.Hour))
		_, err := advUC.Execute(context.Background(), in.AdvanceStateInput{
			ShipmentID: shipment.ID, StatesID: target,
		})
		require.NoError(t, err)
	}

	// after arrival the truck is free again, at the receive center
	truck := f.trucks[5]
	assert.True(t, truck.IsReady)
	require.NotNil(t, truck.CenterID)
	assert.Equal(t, int64(20), *truck.CenterID)

	createUC2 := newCreateUC(t, f, base.Add(5*time.Hour))
	_, err = createUC2.Execute(context.Background(), in.CreateShipmentInput{
		TruckID: 5, ShipmentPriorityID: 1, SendCenter: 20, ReceiveCenter: 10,
	})
	assert.NoError(t, err, "a released truck can start its next shipment")
}
