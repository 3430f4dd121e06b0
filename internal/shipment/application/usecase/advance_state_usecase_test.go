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

func newAdvanceUC(t *testing.T, f *fakeBackend, now time.Time) in.AdvanceStateUseCase {
	t.Helper()
	uc := NewAdvanceStateUseCase(f, f, f, f, f, logger.NewLogger("test")).(*advanceStateUseCase)
	uc.now = func() time.Time { return now }
	return uc
}

func TestAdvanceRejectsInvalidTarget(t *testing.T) {
	f := newFakeBackend()
	f.addTruck(1, 10, false)
	f.addShipment(1, 10, 20, 1)
	uc := newAdvanceUC(t, f, time.Now().UTC())

	for _, target := range []int{0, 5, -1} {
		_, err := uc.Execute(context.Background(), in.AdvanceStateInput{ShipmentID: 1, StatesID: target})
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	}
	assert.Len(t, f.states, 1, "no state rows may be written")
}

func TestAdvanceUnknownShipment(t *testing.T) {
	f := newFakeBackend()
	uc := newAdvanceUC(t, f, time.Now().UTC())

	_, err := uc.Execute(context.Background(), in.AdvanceStateInput{ShipmentID: 99, StatesID: 2})
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
}

func TestAdvanceRequiresAllPredecessors(t *testing.T) {
	f := newFakeBackend()
	f.addTruck(1, 10, false)
	f.addShipment(1, 10, 20, 1)
	uc := newAdvanceUC(t, f, time.Now().UTC())

	// skipping Ready to depart entirely
	_, err := uc.Execute(context.Background(), in.AdvanceStateInput{ShipmentID: 1, StatesID: 3})

	var missing *domain.MissingPredecessorStateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 2, missing.StateID, "the first gap is reported")
	assert.Len(t, f.states, 1, "failed transition writes nothing")
	assert.Nil(t, f.states[0].EndDate, "the open state stays open")
}

func TestAdvanceRejectsReentry(t *testing.T) {
	f := newFakeBackend()
	f.addTruck(1, 10, false)
	f.addShipment(1, 10, 20, 1, 2)
	uc := newAdvanceUC(t, f, time.Now().UTC())

	_, err := uc.Execute(context.Background(), in.AdvanceStateInput{ShipmentID: 1, StatesID: 2})
	assert.ErrorIs(t, err, domain.ErrStateAlreadyReached)
	assert.Len(t, f.states, 2)
}

func TestAdvanceClosesPreviousAndOpensNext(t *testing.T) {
	f := newFakeBackend()
	f.addTruck(1, 10, false)
	f.addShipment(1, 10, 20, 1)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := newAdvanceUC(t, f, now)

	created, err := uc.Execute(context.Background(), in.AdvanceStateInput{ShipmentID: 1, StatesID: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, created.StatesID)
	assert.Equal(t, now, created.StartDate)
	assert.Nil(t, created.EndDate, "non-terminal states stay open")

	require.Len(t, f.states, 2)
	require.NotNil(t, f.states[0].EndDate)
	assert.Equal(t, now, *f.states[0].EndDate, "previous state closes at the new state's start")

	assert.Contains(t, f.events, "state:1:2")
}

func TestAdvanceTerminalReleasesTruckAtReceiveCenter(t *testing.T) {
	f := newFakeBackend()
	f.addTruck(7, 10, false)
	f.addShipment(7, 10, 20, 1, 2, 3)
	now := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	uc := newAdvanceUC(t, f, now)

	created, err := uc.Execute(context.Background(), in.AdvanceStateInput{ShipmentID: 1, StatesID: 4})
	require.NoError(t, err)

	require.NotNil(t, created.EndDate)
	assert.Equal(t, created.StartDate, *created.EndDate, "the terminal state is closed at its own start")

	truck := f.trucks[7]
	assert.True(t, truck.IsReady)
	require.NotNil(t, truck.CenterID)
	assert.Equal(t, int64(20), *truck.CenterID, "the truck ends up at the receive center")

	assert.Contains(t, f.events, "state:1:4")
	assert.Contains(t, f.events, "arrived:1")
}

func TestAdvanceRollsBackWhenTruckReleaseFails(t *testing.T) {
	f := newFakeBackend()
	f.addTruck(7, 10, false)
	f.addShipment(7, 10, 20, 1, 2, 3)
	f.failRelease = true
	uc := newAdvanceUC(t, f, time.Now().UTC())

	_, err := uc.Execute(context.Background(), in.AdvanceStateInput{ShipmentID: 1, StatesID: 4})
	require.Error(t, err)

	assert.Len(t, f.states, 3, "the terminal state row is rolled back")
	assert.Nil(t, f.states[2].EndDate, "the in-transit state stays open")
	assert.False(t, f.trucks[7].IsReady)
	assert.Empty(t, f.events, "no events on a failed transition")
}

func TestAdvanceFullLifecycle(t *testing.T) {
	f := newFakeBackend()
	f.addTruck(3, 10, false)
	f.addShipment(3, 10, 20, 1)
	base := time.Date(2024, 4, 1, 6, 0, 0, 0, time.UTC)

	for i, target := range []int{2, 3, 4} {
		uc := newAdvanceUC(t, f, base.Add(time.Duration(i)*time.Hour))
		_, err := uc.Execute(context.Background(), in.AdvanceStateInput{ShipmentID: 1, StatesID: target})
		require.NoError(t, err, "target %d", target)
	}

	require.Len(t, f.states, 4)
	for i := 0; i < 3; i++ {
		require.NotNil(t, f.states[i].EndDate)
		assert.Equal(t, *f.states[i].EndDate, f.states[i+1].StartDate,
			"interval %d must end exactly where %d starts", i+1, i+2)
	}

	// a fifth transition has nowhere to go
	uc := newAdvanceUC(t, f, base.Add(4*time.Hour))
	_, err := uc.Execute(context.Background(), in.AdvanceStateInput{ShipmentID: 1, StatesID: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
