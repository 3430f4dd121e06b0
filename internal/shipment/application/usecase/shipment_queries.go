package usecase

import (
	"context"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
	in "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"
)

type shipmentQueries struct {
	shipments out.ShipmentRepository
	states    out.ShipmentStateRepository
}

func NewShipmentQueries(shipments out.ShipmentRepository, states out.ShipmentStateRepository) in.ShipmentQueries {
	return &shipmentQueries{shipments: shipments, states: states}
}

func (q *shipmentQueries) List(ctx context.Context, page, limit int) ([]in.ShipmentView, pagination.Meta, error) {
	total, err := q.shipments.Count(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	meta, offset, err := pagination.Paginate(page, limit, total)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	views, err := q.shipments.ListViews(ctx, 0, in.DirectionAny, limit, offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return views, meta, nil
}

func (q *shipmentQueries) GetByID(ctx context.Context, id int64) (*in.ShipmentView, error) {
	return q.shipments.GetView(ctx, id)
}

func (q *shipmentQueries) ListByCenter(ctx context.Context, centerID int64, dir in.CenterDirection, page, limit int) ([]in.ShipmentView, pagination.Meta, error) {
	total, err := q.shipments.CountByCenter(ctx, centerID, dir)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	meta, offset, err := pagination.Paginate(page, limit, total)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	views, err := q.shipments.ListViews(ctx, centerID, dir, limit, offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return views, meta, nil
}

func (q *shipmentQueries) StateHistory(ctx context.Context, shipmentID int64) ([]in.StateInterval, error) {
	if _, err := q.shipments.FindByID(ctx, shipmentID); err != nil {
		return nil, err
	}
	return q.states.ListByShipment(ctx, shipmentID)
}

func (q *shipmentQueries) Delete(ctx context.Context, id int64) error {
	return q.shipments.Delete(ctx, id)
}
