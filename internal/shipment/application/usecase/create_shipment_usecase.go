package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	in "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"
)

type createShipmentUseCase struct {
	tx        out.TxManager
	shipments out.ShipmentRepository
	states    out.ShipmentStateRepository
	trucks    out.TruckGate
	refs      out.ReferenceChecker
	events    out.EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

func NewCreateShipmentUseCase(
	tx out.TxManager,
	shipments out.ShipmentRepository,
	states out.ShipmentStateRepository,
	trucks out.TruckGate,
	refs out.ReferenceChecker,
	events out.EventPublisher,
	log *logger.Logger,
) in.CreateShipmentUseCase {
	return &createShipmentUseCase{
		tx:        tx,
		shipments: shipments,
		states:    states,
		trucks:    trucks,
		refs:      refs,
		events:    events,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute creates a shipment. A truck can only start a shipment from the
// center it is currently sitting at, and only while idle. The shipment row,
// the truck reservation and the initial Loading state row are written in one
// transaction: a crash can never leave a reserved truck without a shipment
// or a shipment without its first state.
func (uc *createShipmentUseCase) Execute(ctx context.Context, input in.CreateShipmentInput) (*domain.Shipment, error) {
	if input.SendCenter == input.ReceiveCenter {
		return nil, domain.ErrSameCenter
	}

	now := uc.now()
	shipment := &domain.Shipment{
		TruckID:            input.TruckID,
		ShipmentPriorityID: input.ShipmentPriorityID,
		SendCenter:         input.SendCenter,
		ReceiveCenter:      input.ReceiveCenter,
	}

	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		truck, err := uc.trucks.FindForUpdate(ctx, input.TruckID)
		if err != nil {
			return err
		}
		if !truck.IsReady || truck.CenterID == nil || *truck.CenterID != input.SendCenter {
			return domain.ErrTruckNotAvailable
		}

		ok, err := uc.refs.PriorityExists(ctx, input.ShipmentPriorityID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrPriorityNotFound
		}

		for _, centerID := range []int64{input.SendCenter, input.ReceiveCenter} {
			ok, err := uc.refs.CenterExists(ctx, centerID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrCenterNotFound
			}
		}

		if err := uc.shipments.Create(ctx, shipment); err != nil {
			return err
		}

		if err := uc.trucks.Reserve(ctx, input.TruckID); err != nil {
			return err
		}

		// Every shipment is born already loading.
		return uc.states.Insert(ctx, &domain.ShipmentState{
			ShipmentID: shipment.ID,
			StatesID:   domain.StateLoading,
			StartDate:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info(logger.Entry{
		Action:     "shipment_created",
		Message:    "new shipment added",
		ShipmentID: formatID(shipment.ID),
		Additional: map[string]any{
			"truck_id":       shipment.TruckID,
			"send_center":    shipment.SendCenter,
			"receive_center": shipment.ReceiveCenter,
		},
	})

	uc.events.ShipmentCreated(ctx, shipment)

	return shipment, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
