package tracking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/ws"
)

const (
	msgUpdateLocation = "updateLocation"
	msgTrucksData     = "trucksData"
)

type updateLocationPayload struct {
	TruckID   int64   `json:"truck_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewMessageHandler routes inbound live-location messages. Drivers push
// updateLocation; everyone connected receives the trucksData broadcast.
func NewMessageHandler(service *Service, hub *ws.Hub, log *logger.Logger) ws.MessageHandler {
	return func(client *ws.Client, messageType string, data json.RawMessage) error {
		switch messageType {
		case msgUpdateLocation:
			if !auth.Allowed(auth.OpLocationPush, client.UserType, false) {
				return client.SendJSON(map[string]string{"error": "you are not allowed"})
			}

			var payload updateLocationPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return client.SendJSON(map[string]string{"error": "invalid updateLocation payload"})
			}

			trucks, err := service.UpdateLocation(context.Background(), payload.TruckID, payload.Latitude, payload.Longitude)
			if err != nil {
				return client.SendJSON(map[string]string{"error": err.Error()})
			}

			return hub.BroadcastJSON(map[string]any{
				"type": msgTrucksData,
				"data": trucks,
			})

		default:
			return fmt.Errorf("unknown message type %q", messageType)
		}
	}
}
