package amqp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/mq"
	out "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"
)

type eventPublisher struct {
	mq  *mq.RabbitMQ
	log *logger.Logger
}

// NewEventPublisher emits shipment lifecycle events on the shipment exchange.
// Publishing is best effort: a broker failure is logged, never surfaced.
func NewEventPublisher(rabbit *mq.RabbitMQ, log *logger.Logger) out.EventPublisher {
	return &eventPublisher{mq: rabbit, log: log}
}

func (p *eventPublisher) ShipmentCreated(ctx context.Context, s *domain.Shipment) {
	p.publish(ctx, mq.KeyShipmentCreated, map[string]any{
		"shipment_id":    s.ID,
		"truck_id":       s.TruckID,
		"send_center":    s.SendCenter,
		"receive_center": s.ReceiveCenter,
	})
}

func (p *eventPublisher) StateChanged(ctx context.Context, state *domain.ShipmentState) {
	p.publish(ctx, mq.KeyShipmentStateChanged, map[string]any{
		"shipment_id": state.ShipmentID,
		"states_id":   state.StatesID,
		"state":       domain.StateLabel(state.StatesID),
		"start_date":  state.StartDate,
	})
}

func (p *eventPublisher) ShipmentArrived(ctx context.Context, s *domain.Shipment, at time.Time) {
	p.publish(ctx, mq.KeyShipmentArrived, map[string]any{
		"shipment_id":    s.ID,
		"truck_id":       s.TruckID,
		"receive_center": s.ReceiveCenter,
		"arrived_at":     at,
	})
}

func (p *eventPublisher) publish(ctx context.Context, key string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Error(logger.Entry{
			Action:     "event_marshal_failed",
			Message:    key,
			Error:      &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{"routing_key": key},
		})
		return
	}

	if err := p.mq.Publish(ctx, mq.ShipmentExchange, key, body); err != nil {
		p.log.Error(logger.Entry{
			Action:     "event_publish_failed",
			Message:    key,
			Error:      &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{"routing_key": key},
		})
	}
}
