package fleet

import (
	"context"
	"testing"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTruckRepo struct {
	trucks map[int64]*Truck
	types  map[int]bool
	nextID int64
}

func newFakeTruckRepo() *fakeTruckRepo {
	return &fakeTruckRepo{trucks: make(map[int64]*Truck), types: make(map[int]bool), nextID: 1}
}

func (r *fakeTruckRepo) Create(ctx context.Context, t *Truck) error {
	t.ID = r.nextID
	r.nextID++
	cp := *t
	r.trucks[t.ID] = &cp
	return nil
}

func (r *fakeTruckRepo) List(ctx context.Context, limit, offset int) ([]TruckView, error) {
	var views []TruckView
	for id := int64(1); id < r.nextID; id++ {
		if t, ok := r.trucks[id]; ok {
			views = append(views, TruckView{Truck: *t, TypeName: "box truck"})
		}
	}
	return views, nil
}

func (r *fakeTruckRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.trucks)), nil
}

func (r *fakeTruckRepo) FindByID(ctx context.Context, id int64) (*TruckView, error) {
	t, ok := r.trucks[id]
	if !ok {
		return nil, ErrTruckNotFound
	}
	return &TruckView{Truck: *t, TypeName: "box truck"}, nil
}

func (r *fakeTruckRepo) Update(ctx context.Context, t *Truck) error {
	if _, ok := r.trucks[t.ID]; !ok {
		return ErrTruckNotFound
	}
	cp := *t
	r.trucks[t.ID] = &cp
	return nil
}

func (r *fakeTruckRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.trucks[id]; !ok {
		return ErrTruckNotFound
	}
	delete(r.trucks, id)
	return nil
}

func (r *fakeTruckRepo) DriverHasTruck(ctx context.Context, driverID, excludeTruckID int64) (bool, error) {
	for _, t := range r.trucks {
		if t.Driver == driverID && t.ID != excludeTruckID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTruckRepo) TypeExists(ctx context.Context, typeID int) (bool, error) {
	return r.types[typeID], nil
}

type fakeCenterRepo struct {
	centers map[int64]*Center
	nextID  int64
}

func newFakeCenterRepo() *fakeCenterRepo {
	return &fakeCenterRepo{centers: make(map[int64]*Center), nextID: 1}
}

func (r *fakeCenterRepo) Create(ctx context.Context, c *Center) error {
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.centers[c.ID] = &cp
	return nil
}

func (r *fakeCenterRepo) List(ctx context.Context, limit, offset int) ([]Center, error) {
	var centers []Center
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.centers[id]; ok {
			centers = append(centers, *c)
		}
	}
	return centers, nil
}

func (r *fakeCenterRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.centers)), nil
}

func (r *fakeCenterRepo) FindByID(ctx context.Context, id int64) (*Center, error) {
	c, ok := r.centers[id]
	if !ok {
		return nil, ErrCenterNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCenterRepo) Update(ctx context.Context, c *Center) error {
	if _, ok := r.centers[c.ID]; !ok {
		return ErrCenterNotFound
	}
	cp := *c
	r.centers[c.ID] = &cp
	return nil
}

func (r *fakeCenterRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.centers[id]; !ok {
		return ErrCenterNotFound
	}
	delete(r.centers, id)
	return nil
}

func (r *fakeCenterRepo) LocationTaken(ctx context.Context, location string, excludeCenterID int64) (bool, error) {
	for _, c := range r.centers {
		if c.Location == location && c.ID != excludeCenterID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCenterRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.centers[id]
	return ok, nil
}

// fakeRoleChecker maps user id to role id.
type fakeRoleChecker map[int64]int

func (f fakeRoleChecker) UserHasType(ctx context.Context, userID int64, typeID int) (bool, error) {
	return f[userID] == typeID, nil
}

func newFleetService() (*Service, *fakeTruckRepo, *fakeCenterRepo) {
	trucks := newFakeTruckRepo()
	trucks.types[1] = true
	centers := newFakeCenterRepo()
	roles := fakeRoleChecker{
		1: 1, // admin
		2: 2, // manager
		3: 3, // driver
		4: 3, // second driver
	}
	return NewService(trucks, centers, roles, logger.NewLogger("test")), trucks, centers
}

func TestCreateTruckRequiresDriverRole(t *testing.T) {
	svc, trucks, _ := newFleetService()

	for _, driver := range []int64{1, 2, 99} {
		_, err := svc.CreateTruck(context.Background(), CreateTruckInput{Driver: driver, Type: 1, Model: "volvo"})
		assert.ErrorIs(t, err, ErrNotADriver, "user %d", driver)
	}
	assert.Empty(t, trucks.trucks)
}

func TestCreateTruckOneTruckPerDriver(t *testing.T) {
	svc, _, _ := newFleetService()

	_, err := svc.CreateTruck(context.Background(), CreateTruckInput{Driver: 3, Type: 1, Model: "volvo"})
	require.NoError(t, err)

	_, err = svc.CreateTruck(context.Background(), CreateTruckInput{Driver: 3, Type: 1, Model: "scania"})
	assert.ErrorIs(t, err, ErrDriverTaken)
}

func TestCreateTruckValidatesTypeAndCenter(t *testing.T) {
	svc, _, centers := newFleetService()

	_, err := svc.CreateTruck(context.Background(), CreateTruckInput{Driver: 3, Type: 9, Model: "volvo"})
	assert.ErrorIs(t, err, ErrTruckTypeNotFound)

	missing := int64(7)
	_, err = svc.CreateTruck(context.Background(), CreateTruckInput{Driver: 3, Type: 1, Model: "volvo", CenterID: &missing})
	assert.ErrorIs(t, err, ErrCenterNotFound)

	centers.centers[7] = &Center{ID: 7, Manager: 2, City: "Homs", Location: "north gate"}
	truck, err := svc.CreateTruck(context.Background(), CreateTruckInput{Driver: 3, Type: 1, Model: "volvo", CenterID: &missing})
	require.NoError(t, err)
	assert.True(t, truck.IsReady, "new trucks start ready")
}

func TestUpdateTruckAllowsKeepingOwnDriver(t *testing.T) {
	svc, _, _ := newFleetService()

	truck, err := svc.CreateTruck(context.Background(), CreateTruckInput{Driver: 3, Type: 1, Model: "volvo"})
	require.NoError(t, err)

	// same driver on the same truck is not a conflict
	err = svc.UpdateTruck(context.Background(), truck.ID, UpdateTruckInput{Driver: 3, Type: 1, Model: "volvo fh16"})
	assert.NoError(t, err)

	// but stealing another truck's driver is
	_, err = svc.CreateTruck(context.Background(), CreateTruckInput{Driver: 4, Type: 1, Model: "scania"})
	require.NoError(t, err)
	err = svc.UpdateTruck(context.Background(), truck.ID, UpdateTruckInput{Driver: 4, Type: 1, Model: "volvo"})
	assert.ErrorIs(t, err, ErrDriverTaken)
}

func TestCreateCenterRequiresManagerRole(t *testing.T) {
	svc, _, centers := newFleetService()

	for _, manager := range []int64{1, 3, 99} {
		_, err := svc.CreateCenter(context.Background(), CenterInput{Manager: manager, City: "Damascus", Location: "airport road"})
		assert.ErrorIs(t, err, ErrNotAManager, "user %d", manager)
	}
	assert.Empty(t, centers.centers)
}

func TestCreateCenterUniqueLocation(t *testing.T) {
	svc, _, _ := newFleetService()

	first, err := svc.CreateCenter(context.Background(), CenterInput{Manager: 2, City: "Damascus", Location: "airport road"})
	require.NoError(t, err)

	_, err = svc.CreateCenter(context.Background(), CenterInput{Manager: 2, City: "Aleppo", Location: "airport road"})
	assert.ErrorIs(t, err, ErrLocationTaken)

	// updating a center with its own location is fine
	err = svc.UpdateCenter(context.Background(), first.ID, CenterInput{Manager: 2, City: "Damascus", Location: "airport road"})
	assert.NoError(t, err)
}

func TestGetTruckNotFound(t *testing.T) {
	svc, _, _ := newFleetService()

	_, err := svc.GetTruck(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTruckNotFound)
}
