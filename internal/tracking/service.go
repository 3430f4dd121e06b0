package tracking

import (
	"context"
	"errors"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
)

var ErrInvalidCoordinates = errors.New("latitude and longitude are out of range")

// Service handles live truck position updates.
type Service struct {
	repo RepoInterface
	log  *logger.Logger
}

func NewService(repo RepoInterface, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// UpdateLocation persists a driver's position report and returns the fresh
// active-trucks snapshot for fan-out.
func (s *Service) UpdateLocation(ctx context.Context, truckID int64, latitude, longitude float64) ([]ActiveTruck, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, ErrInvalidCoordinates
	}

	if err := s.repo.UpdateTruckLocation(ctx, truckID, latitude, longitude); err != nil {
		return nil, err
	}

	s.log.Debug(logger.Entry{
		Action:  "truck_location_updated",
		Message: "position report stored",
		Additional: map[string]any{
			"truck_id":  truckID,
			"latitude":  latitude,
			"longitude": longitude,
		},
	})

	return s.repo.ActiveTrucks(ctx)
}

// Snapshot returns the current active-trucks view without a position update.
func (s *Service) Snapshot(ctx context.Context) ([]ActiveTruck, error) {
	return s.repo.ActiveTrucks(ctx)
}
