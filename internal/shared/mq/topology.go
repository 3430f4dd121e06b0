package mq

import (
	"fmt"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
)

// ShipmentExchange carries shipment lifecycle and cargo intake events.
const ShipmentExchange = "shipment_topic"

// Routing keys double as queue names.
const (
	KeyShipmentCreated      = "shipment.created"
	KeyShipmentStateChanged = "shipment.state_changed"
	KeyShipmentArrived      = "shipment.arrived"
	KeyCargoCreated         = "cargo.created"
)

// SetupTopology declares the exchange, queues and bindings. Declarations are
// idempotent so every instance can run this at startup.
func SetupTopology(mq *RabbitMQ, log *logger.Logger) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	if err := ch.ExchangeDeclare(
		ShipmentExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare %s: %w", ShipmentExchange, err)
	}

	queues := []string{
		KeyShipmentCreated,
		KeyShipmentStateChanged,
		KeyShipmentArrived,
		KeyCargoCreated,
	}
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
		if err := ch.QueueBind(q, q, ShipmentExchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", q, err)
		}
	}

	log.Info(logger.Entry{
		Action:  "topology_setup_complete",
		Message: "exchange and queues declared",
	})

	return nil
}
