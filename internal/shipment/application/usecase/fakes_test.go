package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"
)

// fakeBackend implements every out port over in-memory maps. RunInTx
// snapshots the whole store and restores it when the callback fails, so the
// tests observe real all-or-nothing semantics.
type fakeBackend struct {
	shipments  map[int64]*domain.Shipment
	states     []domain.ShipmentState
	trucks     map[int64]*out.TruckStatus
	centers    map[int64]bool
	priorities map[int64]bool

	nextShipmentID int64
	nextStateID    int64

	failInsertState bool
	failRelease     bool

	events []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		shipments:      make(map[int64]*domain.Shipment),
		trucks:         make(map[int64]*out.TruckStatus),
		centers:        make(map[int64]bool),
		priorities:     make(map[int64]bool),
		nextShipmentID: 1,
		nextStateID:    1,
	}
}

type fakeSnapshot struct {
	shipments map[int64]*domain.Shipment
	states    []domain.ShipmentState
	trucks    map[int64]*out.TruckStatus
}

func (f *fakeBackend) snapshot() fakeSnapshot {
	s := fakeSnapshot{
		shipments: make(map[int64]*domain.Shipment, len(f.shipments)),
		states:    append([]domain.ShipmentState(nil), f.states...),
		trucks:    make(map[int64]*out.TruckStatus, len(f.trucks)),
	}
	for id, sh := range f.shipments {
		cp := *sh
		s.shipments[id] = &cp
	}
	for id, t := range f.trucks {
		cp := *t
		if t.CenterID != nil {
			c := *t.CenterID
			cp.CenterID = &c
		}
		s.trucks[id] = &cp
	}
	return s
}

func (f *fakeBackend) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := f.snapshot()
	if err := fn(ctx); err != nil {
		f.shipments = saved.shipments
		f.states = saved.states
		f.trucks = saved.trucks
		return err
	}
	return nil
}

func (f *fakeBackend) Create(ctx context.Context, s *domain.Shipment) error {
	s.ID = f.nextShipmentID
	f.nextShipmentID++
	cp := *s
	f.shipments[s.ID] = &cp
	return nil
}

func (f *fakeBackend) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Shipment, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBackend) FindByID(ctx context.Context, id int64) (*domain.Shipment, error) {
	s, ok := f.shipments[id]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeBackend) Delete(ctx context.Context, id int64) error {
	if _, ok := f.shipments[id]; !ok {
		return domain.ErrShipmentNotFound
	}
	delete(f.shipments, id)
	return nil
}

func (f *fakeBackend) Count(ctx context.Context) (int64, error) {
	return int64(len(f.shipments)), nil
}

func (f *fakeBackend) CountByCenter(ctx context.Context, centerID int64, dir in.CenterDirection) (int64, error) {
	var n int64
	for _, s := range f.shipments {
		if f.matches(s, centerID, dir) {
			n++
		}
	}
	return n, nil
}

func (f *fakeBackend) matches(s *domain.Shipment, centerID int64, dir in.CenterDirection) bool {
	switch dir {
	case in.DirectionSent:
		return s.SendCenter == centerID
	case in.DirectionReceived:
		return s.ReceiveCenter == centerID
	default:
		return s.SendCenter == centerID || s.ReceiveCenter == centerID
	}
}

func (f *fakeBackend) ListViews(ctx context.Context, centerID int64, dir in.CenterDirection, limit, offset int) ([]in.ShipmentView, error) {
	var views []in.ShipmentView
	for id := int64(1); id < f.nextShipmentID; id++ {
		s, ok := f.shipments[id]
		if !ok {
			continue
		}
		if centerID != 0 && !f.matches(s, centerID, dir) {
			continue
		}
		v := in.ShipmentView{
			ID:      s.ID,
			TruckID: s.TruckID,
			Send:    in.CenterSummary{ID: s.SendCenter},
			Receive: in.CenterSummary{ID: s.ReceiveCenter},
		}
		if centerID != 0 {
			if s.SendCenter == centerID {
				v.Destination = "send"
			} else {
				v.Destination = "receive"
			}
		}
		for _, st := range f.states {
			if st.ShipmentID == s.ID {
				v.States = append(v.States, in.StateInterval{
					State:     domain.StateLabel(st.StatesID),
					StatesID:  st.StatesID,
					StartDate: st.StartDate,
					EndDate:   st.EndDate,
				})
			}
		}
		views = append(views, v)
	}
	return views, nil
}

func (f *fakeBackend) GetView(ctx context.Context, id int64) (*in.ShipmentView, error) {
	if _, ok := f.shipments[id]; !ok {
		return nil, domain.ErrShipmentNotFound
	}
	views, _ := f.ListViews(ctx, 0, in.DirectionAny, 0, 0)
	for i := range views {
		if views[i].ID == id {
			return &views[i], nil
		}
	}
	return nil, domain.ErrShipmentNotFound
}

func (f *fakeBackend) Exists(ctx context.Context, shipmentID int64, statesID int) (bool, error) {
	for _, st := range f.states {
		if st.ShipmentID == shipmentID && st.StatesID == statesID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBackend) Close(ctx context.Context, shipmentID int64, statesID int, endDate time.Time) error {
	for i := range f.states {
		if f.states[i].ShipmentID == shipmentID && f.states[i].StatesID == statesID {
			end := endDate
			f.states[i].EndDate = &end
			return nil
		}
	}
	return &domain.MissingPredecessorStateError{StateID: statesID}
}

func (f *fakeBackend) Insert(ctx context.Context, s *domain.ShipmentState) error {
	if f.failInsertState {
		return fmt.Errorf("state insert failed")
	}
	s.ID = f.nextStateID
	f.nextStateID++
	f.states = append(f.states, *s)
	return nil
}

func (f *fakeBackend) ListByShipment(ctx context.Context, shipmentID int64) ([]in.StateInterval, error) {
	var intervals []in.StateInterval
	for _, st := range f.states {
		if st.ShipmentID == shipmentID {
			intervals = append(intervals, in.StateInterval{
				State:     domain.StateLabel(st.StatesID),
				StatesID:  st.StatesID,
				StartDate: st.StartDate,
				EndDate:   st.EndDate,
			})
		}
	}
	return intervals, nil
}

func (f *fakeBackend) FindForUpdate(ctx context.Context, truckID int64) (*out.TruckStatus, error) {
	t, ok := f.trucks[truckID]
	if !ok {
		return nil, domain.ErrTruckNotAvailable
	}
	cp := *t
	if t.CenterID != nil {
		c := *t.CenterID
		cp.CenterID = &c
	}
	return &cp, nil
}

func (f *fakeBackend) Reserve(ctx context.Context, truckID int64) error {
	t, ok := f.trucks[truckID]
	if !ok {
		return domain.ErrTruckNotAvailable
	}
	t.IsReady = false
	return nil
}

func (f *fakeBackend) Release(ctx context.Context, truckID int64, centerID int64) error {
	if f.failRelease {
		return fmt.Errorf("truck release failed")
	}
	t, ok := f.trucks[truckID]
	if !ok {
		return domain.ErrTruckNotAvailable
	}
	t.IsReady = true
	c := centerID
	t.CenterID = &c
	return nil
}

func (f *fakeBackend) CenterExists(ctx context.Context, id int64) (bool, error) {
	return f.centers[id], nil
}

func (f *fakeBackend) PriorityExists(ctx context.Context, id int64) (bool, error) {
	return f.priorities[id], nil
}

func (f *fakeBackend) ShipmentCreated(ctx context.Context, s *domain.Shipment) {
	f.events = append(f.events, fmt.Sprintf("created:%d", s.ID))
}

func (f *fakeBackend) StateChanged(ctx context.Context, state *domain.ShipmentState) {
	f.events = append(f.events, fmt.Sprintf("state:%d:%d", state.ShipmentID, state.StatesID))
}

func (f *fakeBackend) ShipmentArrived(ctx context.Context, s *domain.Shipment, at time.Time) {
	f.events = append(f.events, fmt.Sprintf("arrived:%d", s.ID))
}

// addTruck seeds a truck sitting ready at a center.
func (f *fakeBackend) addTruck(id int64, centerID int64, ready bool) {
	c := centerID
	f.trucks[id] = &out.TruckStatus{ID: id, IsReady: ready, CenterID: &c}
}

// addShipment seeds a shipment with its state history already at the given
// states, in order, each state closed by the next one's start.
func (f *fakeBackend) addShipment(truckID, send, receive int64, stateIDs ...int) *domain.Shipment {
	s := &domain.Shipment{
		ID:                 f.nextShipmentID,
		TruckID:            truckID,
		ShipmentPriorityID: 1,
		SendCenter:         send,
		ReceiveCenter:      receive,
	}
	f.nextShipmentID++
	f.shipments[s.ID] = s

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, stateID := range stateIDs {
		st := domain.ShipmentState{
			ID:         f.nextStateID,
			ShipmentID: s.ID,
			StatesID:   stateID,
			StartDate:  base.Add(time.Duration(i) * time.Hour),
		}
		f.nextStateID++
		if i < len(stateIDs)-1 {
			end := base.Add(time.Duration(i+1) * time.Hour)
			st.EndDate = &end
		}
		f.states = append(f.states, st)
	}
	return s
}
