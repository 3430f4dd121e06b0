package usecase

import (
	"context"
	"strconv"

	in "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/cargo/domain"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
)

type createCargoUseCase struct {
	tx      out.TxManager
	cargos  out.CargoRepository
	clients out.ClientRepository
	refs    out.ReferenceChecker
	events  out.EventPublisher
	log     *logger.Logger
}

func NewCreateCargoUseCase(
	tx out.TxManager,
	cargos out.CargoRepository,
	clients out.ClientRepository,
	refs out.ReferenceChecker,
	events out.EventPublisher,
	log *logger.Logger,
) in.CreateCargoUseCase {
	return &createCargoUseCase{
		tx:      tx,
		cargos:  cargos,
		clients: clients,
		refs:    refs,
		events:  events,
		log:     log,
	}
}

// Execute registers a cargo on a shipment. Sender and receiver are matched
// by national id and created only when absent; the client rows, the cargo
// and all content lines commit or roll back together.
func (uc *createCargoUseCase) Execute(ctx context.Context, input in.CreateCargoInput) (*in.CargoView, error) {
	if input.Sender.NationalID == input.Receiver.NationalID {
		return nil, domain.ErrSameClient
	}
	if len(input.Contents) == 0 {
		return nil, domain.ErrEmptyContents
	}

	var view *in.CargoView

	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		ok, err := uc.refs.ShipmentExists(ctx, input.ShipmentID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrShipmentNotFound
		}

		for _, line := range input.Contents {
			ok, err := uc.refs.ContentTypeExists(ctx, line.ContentTypeID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrUnknownContentType
			}
		}

		sender := clientFromInput(input.Sender)
		if err := uc.clients.FindOrCreate(ctx, sender); err != nil {
			return err
		}
		receiver := clientFromInput(input.Receiver)
		if err := uc.clients.FindOrCreate(ctx, receiver); err != nil {
			return err
		}

		cargo := &domain.Cargo{
			ShipmentID: input.ShipmentID,
			SenderID:   sender.ID,
			ReceiverID: receiver.ID,
			State:      domain.CargoStateNotReceived,
		}
		if err := uc.cargos.Create(ctx, cargo); err != nil {
			return err
		}

		contents := make([]domain.CargoContent, 0, len(input.Contents))
		for _, line := range input.Contents {
			contents = append(contents, domain.CargoContent{
				CargoID:       cargo.ID,
				ContentTypeID: line.ContentTypeID,
				Quantity:      line.Quantity,
				Weight:        line.Weight,
			})
		}
		if err := uc.cargos.InsertContents(ctx, contents); err != nil {
			return err
		}

		view, err = uc.cargos.GetView(ctx, cargo.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info(logger.Entry{
		Action:     "cargo_created",
		Message:    "new cargo added",
		ShipmentID: strconv.FormatInt(view.ShipmentID, 10),
		Additional: map[string]any{
			"cargo_id": view.ID,
			"contents": len(view.Contents),
		},
	})

	uc.events.CargoCreated(ctx, view)

	return view, nil
}

func clientFromInput(c in.ClientInput) *domain.Client {
	return &domain.Client{
		NationalID:  c.NationalID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DateOfBirth: c.DateOfBirth,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
	}
}
