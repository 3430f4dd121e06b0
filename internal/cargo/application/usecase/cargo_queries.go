package usecase

import (
	"context"

	in "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
)

type cargoQueries struct {
	cargos out.CargoRepository
	refs   out.ReferenceChecker
}

func NewCargoQueries(cargos out.CargoRepository, refs out.ReferenceChecker) in.CargoQueries {
	return &cargoQueries{cargos: cargos, refs: refs}
}

func (q *cargoQueries) List(ctx context.Context, page, limit int) ([]in.CargoView, pagination.Meta, error) {
	total, err := q.cargos.Count(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	meta, offset, err := pagination.Paginate(page, limit, total)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	views, err := q.cargos.ListViews(ctx, limit, offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return views, meta, nil
}

func (q *cargoQueries) GetByID(ctx context.Context, id int64) (*in.CargoView, error) {
	return q.cargos.GetView(ctx, id)
}

func (q *cargoQueries) ListByShipment(ctx context.Context, shipmentID int64) ([]in.CargoView, error) {
	return q.cargos.ListViewsByShipment(ctx, shipmentID)
}

func (q *cargoQueries) UpdateState(ctx context.Context, id int64, state string) error {
	return q.cargos.UpdateState(ctx, id, state)
}

func (q *cargoQueries) Delete(ctx context.Context, id int64) error {
	return q.cargos.Delete(ctx, id)
}
