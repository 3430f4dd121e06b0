package amqp

import (
	"context"
	"encoding/json"

	in "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/mq"
)

type eventPublisher struct {
	mq  *mq.RabbitMQ
	log *logger.Logger
}

// NewEventPublisher emits cargo intake events. Best effort: broker failures
// are logged, never surfaced.
func NewEventPublisher(rabbit *mq.RabbitMQ, log *logger.Logger) out.EventPublisher {
	return &eventPublisher{mq: rabbit, log: log}
}

func (p *eventPublisher) CargoCreated(ctx context.Context, view *in.CargoView) {
	body, err := json.Marshal(map[string]any{
		"cargo_id":    view.ID,
		"shipment_id": view.ShipmentID,
		"sender_id":   view.Sender.ID,
		"receiver_id": view.Receiver.ID,
		"contents":    len(view.Contents),
	})
	if err != nil {
		p.log.Error(logger.Entry{
			Action:  "event_marshal_failed",
			Message: mq.KeyCargoCreated,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	if err := p.mq.Publish(ctx, mq.ShipmentExchange, mq.KeyCargoCreated, body); err != nil {
		p.log.Error(logger.Entry{
			Action:  "event_publish_failed",
			Message: mq.KeyCargoCreated,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
}
