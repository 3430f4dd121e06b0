package usecase

import (
	"context"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	in "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"
)

type advanceStateUseCase struct {
	tx        out.TxManager
	shipments out.ShipmentRepository
	states    out.ShipmentStateRepository
	trucks    out.TruckGate
	events    out.EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

func NewAdvanceStateUseCase(
	tx out.TxManager,
	shipments out.ShipmentRepository,
	states out.ShipmentStateRepository,
	trucks out.TruckGate,
	events out.EventPublisher,
	log *logger.Logger,
) in.AdvanceStateUseCase {
	return &advanceStateUseCase{
		tx:        tx,
		shipments: shipments,
		states:    states,
		trucks:    trucks,
		events:    events,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute advances the shipment to input.StatesID. States complete strictly
// in order 1..4; the whole check-then-write sequence runs in one transaction
// so concurrent calls for the same shipment serialize on the shipment row
// lock and the second one fails its precondition.
func (uc *advanceStateUseCase) Execute(ctx context.Context, input in.AdvanceStateInput) (*domain.ShipmentState, error) {
	if !domain.ValidStateID(input.StatesID) {
		return nil, domain.ErrInvalidState
	}

	// One timestamp per request: the closed row's end_date and the new
	// row's start_date must be equal, leaving no gap between intervals.
	now := uc.now()

	var (
		created  *domain.ShipmentState
		shipment *domain.Shipment
	)

	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		shipment, err = uc.shipments.FindByIDForUpdate(ctx, input.ShipmentID)
		if err != nil {
			return err
		}

		for i := 1; i < input.StatesID; i++ {
			exists, err := uc.states.Exists(ctx, input.ShipmentID, i)
			if err != nil {
				return err
			}
			if !exists {
				return &domain.MissingPredecessorStateError{StateID: i}
			}
		}

		exists, err := uc.states.Exists(ctx, input.ShipmentID, input.StatesID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrStateAlreadyReached
		}

		if input.StatesID > domain.StateLoading {
			if err := uc.states.Close(ctx, input.ShipmentID, input.StatesID-1, now); err != nil {
				return err
			}
		}

		created = &domain.ShipmentState{
			ShipmentID: input.ShipmentID,
			StatesID:   input.StatesID,
			StartDate:  now,
		}
		if input.StatesID == domain.StateArrived {
			end := now
			created.EndDate = &end
		}
		if err := uc.states.Insert(ctx, created); err != nil {
			return err
		}

		// Terminal state: the truck goes back to the available pool at the
		// receiving center, in the same transaction as the state row.
		if input.StatesID == domain.StateArrived {
			if err := uc.trucks.Release(ctx, shipment.TruckID, shipment.ReceiveCenter); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info(logger.Entry{
		Action:     "shipment_state_advanced",
		Message:    domain.StateLabel(input.StatesID),
		ShipmentID: formatID(input.ShipmentID),
		Additional: map[string]any{"states_id": input.StatesID},
	})

	uc.events.StateChanged(ctx, created)
	if input.StatesID == domain.StateArrived {
		uc.events.ShipmentArrived(ctx, shipment, now)
	}

	return created, nil
}
