package usecase

import (
	"context"
	"testing"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadingReportKeepsOnlyLoadingLeg(t *testing.T) {
	f := newFakeBackend()
	f.addTruck(1, 10, false)
	f.addTruck(2, 10, false)
	f.addTruck(3, 10, false)
	f.addTruck(4, 10, false)

	loading := f.addShipment(1, 10, 20, 1)    // 1 state: loading leg
	f.addShipment(2, 10, 20, 1, 2)            // 2 states: departed
	f.addShipment(3, 10, 20, 1, 2, 3)         // 3 states: in transit
	f.addShipment(4, 10, 20, 1, 2, 3, 4)      // 4 states: arrived
	f.addShipment(1, 30, 10, 1)               // loading, but sent from elsewhere

	uc := NewLoadingReportUseCase(f, logger.NewLogger("test"))

	views, err := uc.Execute(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, views, 1)
	assert.Equal(t, loading.ID, views[0].ID)
	assert.Empty(t, views[0].Destination, "the report carries no direction marker")
}

func TestLoadingReportEmptyCenter(t *testing.T) {
	f := newFakeBackend()
	uc := NewLoadingReportUseCase(f, logger.NewLogger("test"))

	views, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, views)
}
