package fleet

import (
	"context"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
)

// Service covers truck and center management.
type Service struct {
	trucks  TruckRepoInterface
	centers CenterRepoInterface
	users   UserRoleChecker
	log     *logger.Logger
}

func NewService(trucks TruckRepoInterface, centers CenterRepoInterface, users UserRoleChecker, log *logger.Logger) *Service {
	return &Service{trucks: trucks, centers: centers, users: users, log: log}
}

type CreateTruckInput struct {
	Driver    int64
	Type      int
	Model     string
	CenterID  *int64
	Latitude  *float64
	Longitude *float64
}

// CreateTruck registers a truck. The driver must be a driver-role user that
// does not already own a truck, and the truck type must exist. New trucks
// start ready.
func (s *Service) CreateTruck(ctx context.Context, input CreateTruckInput) (*Truck, error) {
	if err := s.checkTruckRefs(ctx, input.Driver, input.Type, input.CenterID, 0); err != nil {
		return nil, err
	}

	truck := &Truck{
		Driver:    input.Driver,
		Type:      input.Type,
		Model:     input.Model,
		CenterID:  input.CenterID,
		IsReady:   true,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := s.trucks.Create(ctx, truck); err != nil {
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "truck_created",
		Message: "new truck added",
		Additional: map[string]any{
			"truck_id": truck.ID,
			"driver":   truck.Driver,
		},
	})
	return truck, nil
}

func (s *Service) ListTrucks(ctx context.Context, page, limit int) ([]TruckView, pagination.Meta, error) {
	total, err := s.trucks.Count(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	meta, offset, err := pagination.Paginate(page, limit, total)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	trucks, err := s.trucks.List(ctx, limit, offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return trucks, meta, nil
}

func (s *Service) GetTruck(ctx context.Context, id int64) (*TruckView, error) {
	return s.trucks.FindByID(ctx, id)
}

type UpdateTruckInput struct {
	Driver   int64
	Type     int
	Model    string
	CenterID *int64
}

func (s *Service) UpdateTruck(ctx context.Context, id int64, input UpdateTruckInput) error {
	current, err := s.trucks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkTruckRefs(ctx, input.Driver, input.Type, input.CenterID, id); err != nil {
		return err
	}

	truck := current.Truck
	truck.Driver = input.Driver
	truck.Type = input.Type
	truck.Model = input.Model
	truck.CenterID = input.CenterID
	return s.trucks.Update(ctx, &truck)
}

func (s *Service) DeleteTruck(ctx context.Context, id int64) error {
	return s.trucks.Delete(ctx, id)
}

func (s *Service) checkTruckRefs(ctx context.Context, driver int64, typeID int, centerID *int64, excludeTruckID int64) error {
	isDriver, err := s.users.UserHasType(ctx, driver, auth.RoleDriver)
	if err != nil {
		return err
	}
	if !isDriver {
		return ErrNotADriver
	}

	taken, err := s.trucks.DriverHasTruck(ctx, driver, excludeTruckID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDriverTaken
	}

	typeOK, err := s.trucks.TypeExists(ctx, typeID)
	if err != nil {
		return err
	}
	if !typeOK {
		return ErrTruckTypeNotFound
	}

	if centerID != nil {
		ok, err := s.centers.Exists(ctx, *centerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCenterNotFound
		}
	}
	return nil
}

type CenterInput struct {
	Manager   int64
	City      string
	Location  string
	Latitude  *float64
	Longitude *float64
}

// CreateCenter registers a center. The manager must be a manager-role user
// and the location must not already host a center.
func (s *Service) CreateCenter(ctx context.Context, input CenterInput) (*Center, error) {
	if err := s.checkCenterRefs(ctx, input, 0); err != nil {
		return nil, err
	}

	center := &Center{
		Manager:   input.Manager,
		City:      input.City,
		Location:  input.Location,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := s.centers.Create(ctx, center); err != nil {
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "center_created",
		Message: "new center added",
		Additional: map[string]any{
			"center_id": center.ID,
			"city":      center.City,
		},
	})
	return center, nil
}

func (s *Service) ListCenters(ctx context.Context, page, limit int) ([]Center, pagination.Meta, error) {
	total, err := s.centers.Count(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	meta, offset, err := pagination.Paginate(page, limit, total)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	centers, err := s.centers.List(ctx, limit, offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return centers, meta, nil
}

func (s *Service) GetCenter(ctx context.Context, id int64) (*Center, error) {
	return s.centers.FindByID(ctx, id)
}

func (s *Service) UpdateCenter(ctx context.Context, id int64, input CenterInput) error {
	if _, err := s.centers.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.checkCenterRefs(ctx, input, id); err != nil {
		return err
	}

	return s.centers.Update(ctx, &Center{
		ID:        id,
		Manager:   input.Manager,
		City:      input.City,
		Location:  input.Location,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	})
}

func (s *Service) DeleteCenter(ctx context.Context, id int64) error {
	return s.centers.Delete(ctx, id)
}

func (s *Service) checkCenterRefs(ctx context.Context, input CenterInput, excludeCenterID int64) error {
	isManager, err := s.users.UserHasType(ctx, input.Manager, auth.RoleManager)
	if err != nil {
		return err
	}
	if !isManager {
		return ErrNotAManager
	}

	taken, err := s.centers.LocationTaken(ctx, input.Location, excludeCenterID)
	if err != nil {
		return err
	}
	if taken {
		return ErrLocationTaken
	}
	return nil
}
