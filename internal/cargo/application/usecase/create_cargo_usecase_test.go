package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	in "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/in"
	"github.com/ibrahimalsalim/tracker-api/internal/cargo/domain"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cargoFake backs every out port with in-memory maps and gives RunInTx real
// rollback semantics via snapshots.
type cargoFake struct {
	cargos       map[int64]*domain.Cargo
	contents     []domain.CargoContent
	clients      map[string]*domain.Client // keyed by national id
	shipments    map[int64]bool
	contentTypes map[int]bool

	nextCargoID  int64
	nextClientID int64

	failInsertContents bool

	events []int64
}

func newCargoFake() *cargoFake {
	return &cargoFake{
		cargos:       make(map[int64]*domain.Cargo),
		clients:      make(map[string]*domain.Client),
		shipments:    make(map[int64]bool),
		contentTypes: make(map[int]bool),
		nextCargoID:  1,
		nextClientID: 1,
	}
}

func (f *cargoFake) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	savedCargos := make(map[int64]*domain.Cargo, len(f.cargos))
	for id, c := range f.cargos {
		cp := *c
		savedCargos[id] = &cp
	}
	savedContents := append([]domain.CargoContent(nil), f.contents...)
	savedClients := make(map[string]*domain.Client, len(f.clients))
	for nid, c := range f.clients {
		cp := *c
		savedClients[nid] = &cp
	}

	if err := fn(ctx); err != nil {
		f.cargos = savedCargos
		f.contents = savedContents
		f.clients = savedClients
		return err
	}
	return nil
}

func (f *cargoFake) Create(ctx context.Context, c *domain.Cargo) error {
	c.ID = f.nextCargoID
	f.nextCargoID++
	cp := *c
	f.cargos[c.ID] = &cp
	return nil
}

func (f *cargoFake) InsertContents(ctx context.Context, contents []domain.CargoContent) error {
	if f.failInsertContents {
		return fmt.Errorf("content insert failed")
	}
	f.contents = append(f.contents, contents...)
	return nil
}

func (f *cargoFake) Count(ctx context.Context) (int64, error) {
	return int64(len(f.cargos)), nil
}

func (f *cargoFake) ListViews(ctx context.Context, limit, offset int) ([]in.CargoView, error) {
	var views []in.CargoView
	for id := int64(1); id < f.nextCargoID; id++ {
		if _, ok := f.cargos[id]; ok {
			v, _ := f.GetView(ctx, id)
			views = append(views, *v)
		}
	}
	return views, nil
}

func (f *cargoFake) ListViewsByShipment(ctx context.Context, shipmentID int64) ([]in.CargoView, error) {
	all, _ := f.ListViews(ctx, 0, 0)
	var views []in.CargoView
	for _, v := range all {
		if v.ShipmentID == shipmentID {
			views = append(views, v)
		}
	}
	return views, nil
}

func (f *cargoFake) GetView(ctx context.Context, id int64) (*in.CargoView, error) {
	c, ok := f.cargos[id]
	if !ok {
		return nil, domain.ErrCargoNotFound
	}

	v := in.CargoView{ID: c.ID, ShipmentID: c.ShipmentID, State: c.State}
	for _, cl := range f.clients {
		summary := in.ClientSummary{
			ID:          cl.ID,
			NationalID:  cl.NationalID,
			FirstName:   cl.FirstName,
			LastName:    cl.LastName,
			PhoneNumber: cl.PhoneNumber,
		}
		if cl.ID == c.SenderID {
			v.Sender = summary
		}
		if cl.ID == c.ReceiverID {
			v.Receiver = summary
		}
	}
	for _, line := range f.contents {
		if line.CargoID == c.ID {
			v.Contents = append(v.Contents, in.ContentLine{
				ContentTypeID: line.ContentTypeID,
				Quantity:      line.Quantity,
				Weight:        line.Weight,
			})
		}
	}
	return &v, nil
}

func (f *cargoFake) UpdateState(ctx context.Context, id int64, state string) error {
	c, ok := f.cargos[id]
	if !ok {
		return domain.ErrCargoNotFound
	}
	c.State = state
	return nil
}

func (f *cargoFake) Delete(ctx context.Context, id int64) error {
	if _, ok := f.cargos[id]; !ok {
		return domain.ErrCargoNotFound
	}
	delete(f.cargos, id)
	return nil
}

func (f *cargoFake) FindOrCreate(ctx context.Context, c *domain.Client) error {
	if existing, ok := f.clients[c.NationalID]; ok {
		*c = *existing
		return nil
	}
	c.ID = f.nextClientID
	f.nextClientID++
	cp := *c
	f.clients[c.NationalID] = &cp
	return nil
}

func (f *cargoFake) CreateClient(ctx context.Context, c *domain.Client) error {
	if _, ok := f.clients[c.NationalID]; ok {
		return domain.ErrNationalIDTaken
	}
	c.ID = f.nextClientID
	f.nextClientID++
	cp := *c
	f.clients[c.NationalID] = &cp
	return nil
}

func (f *cargoFake) FindByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	c, ok := f.clients[nationalID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *cargoFake) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	return nil, nil
}

func (f *cargoFake) CountClients(ctx context.Context) (int64, error) {
	return int64(len(f.clients)), nil
}

func (f *cargoFake) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (f *cargoFake) Update(ctx context.Context, c *domain.Client) error {
	return nil
}

func (f *cargoFake) DeleteClient(ctx context.Context, id int64) error {
	return nil
}

func (f *cargoFake) ShipmentExists(ctx context.Context, id int64) (bool, error) {
	return f.shipments[id], nil
}

func (f *cargoFake) ContentTypeExists(ctx context.Context, id int) (bool, error) {
	return f.contentTypes[id], nil
}

func (f *cargoFake) CargoCreated(ctx context.Context, view *in.CargoView) {
	f.events = append(f.events, view.ID)
}

// clientRepoAdapter maps the interface methods whose names collide on
// cargoFake (Count/Delete exist for both repos).
type clientRepoAdapter struct{ f *cargoFake }

func (a clientRepoAdapter) FindOrCreate(ctx context.Context, c *domain.Client) error {
	return a.f.FindOrCreate(ctx, c)
}
func (a clientRepoAdapter) Create(ctx context.Context, c *domain.Client) error {
	return a.f.CreateClient(ctx, c)
}
func (a clientRepoAdapter) FindByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	return a.f.FindByNationalID(ctx, nationalID)
}
func (a clientRepoAdapter) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	return a.f.List(ctx, limit, offset)
}
func (a clientRepoAdapter) Count(ctx context.Context) (int64, error) {
	return a.f.CountClients(ctx)
}
func (a clientRepoAdapter) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	return a.f.FindByID(ctx, id)
}
func (a clientRepoAdapter) Update(ctx context.Context, c *domain.Client) error {
	return a.f.Update(ctx, c)
}
func (a clientRepoAdapter) Delete(ctx context.Context, id int64) error {
	return a.f.DeleteClient(ctx, id)
}

func testClient(nationalID, first string) in.ClientInput {
	return in.ClientInput{
		NationalID:  nationalID,
		FirstName:   first,
		LastName:    "Tester",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Address:     "somewhere",
		PhoneNumber: "0912345678",
	}
}

func validInput() in.CreateCargoInput {
	return in.CreateCargoInput{
		ShipmentID: 1,
		Sender:     testClient("A-100", "Sami"),
		Receiver:   testClient("B-200", "Rana"),
		Contents: []in.ContentInput{
			{ContentTypeID: 1, Quantity: 3, Weight: 12.5},
			{ContentTypeID: 2, Quantity: 1, Weight: 4},
		},
	}
}

func newCargoUC(f *cargoFake) in.CreateCargoUseCase {
	return NewCreateCargoUseCase(f, f, clientRepoAdapter{f}, f, f, logger.NewLogger("test"))
}

func TestCreateCargoRejectsSameClient(t *testing.T) {
	f := newCargoFake()
	uc := newCargoUC(f)

	input := validInput()
	input.Receiver.NationalID = input.Sender.NationalID

	_, err := uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrSameClient)
	assert.Empty(t, f.cargos)
	assert.Empty(t, f.clients)
}

func TestCreateCargoRejectsEmptyContents(t *testing.T) {
	f := newCargoFake()
	uc := newCargoUC(f)

	input := validInput()
	input.Contents = nil

	_, err := uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrEmptyContents)
}

func TestCreateCargoRequiresShipment(t *testing.T) {
	f := newCargoFake()
	f.contentTypes[1] = true
	f.contentTypes[2] = true
	uc := newCargoUC(f)

	_, err := uc.Execute(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
	assert.Empty(t, f.clients, "no client rows survive a failed intake")
}

func TestCreateCargoRequiresContentTypes(t *testing.T) {
	f := newCargoFake()
	f.shipments[1] = true
	f.contentTypes[1] = true // type 2 missing
	uc := newCargoUC(f)

	_, err := uc.Execute(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrUnknownContentType)
	assert.Empty(t, f.cargos)
	assert.Empty(t, f.clients)
}

func TestCreateCargoHappyPath(t *testing.T) {
	f := newCargoFake()
	f.shipments[1] = true
	f.contentTypes[1] = true
	f.contentTypes[2] = true
	uc := newCargoUC(f)

	view, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, domain.CargoStateNotReceived, view.State)
	assert.Equal(t, "A-100", view.Sender.NationalID)
	assert.Equal(t, "B-200", view.Receiver.NationalID)
	assert.Len(t, view.Contents, 2)

	assert.Len(t, f.clients, 2)
	assert.Len(t, f.contents, 2)
	assert.Equal(t, []int64{view.ID}, f.events)
}

func TestCreateCargoReusesExistingClientNonDestructively(t *testing.T) {
	f := newCargoFake()
	f.shipments[1] = true
	f.contentTypes[1] = true
	f.contentTypes[2] = true
	f.clients["A-100"] = &domain.Client{
		ID:          41,
		NationalID:  "A-100",
		FirstName:   "Original",
		LastName:    "Name",
		DateOfBirth: time.Date(1980, 6, 15, 0, 0, 0, 0, time.UTC),
		Address:     "old address",
		PhoneNumber: "0999999999",
	}
	f.nextClientID = 42
	uc := newCargoUC(f)

	input := validInput()
	input.Sender.FirstName = "Impostor"

	view, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(41), view.Sender.ID, "the existing client is matched by national id")
	assert.Equal(t, "Original", f.clients["A-100"].FirstName, "stored client fields are never overwritten")
	assert.Len(t, f.clients, 2, "only the receiver is new")
}

func TestCreateCargoRollsBackOnContentFailure(t *testing.T) {
	f := newCargoFake()
	f.shipments[1] = true
	f.contentTypes[1] = true
	f.contentTypes[2] = true
	f.failInsertContents = true
	uc := newCargoUC(f)

	_, err := uc.Execute(context.Background(), validInput())
	require.Error(t, err)

	assert.Empty(t, f.cargos, "the cargo row is rolled back")
	assert.Empty(t, f.clients, "freshly created clients are rolled back")
	assert.Empty(t, f.events)
}
