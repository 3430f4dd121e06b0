package usecase

import (
	"context"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	in "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/shipment/domain"
)

type loadingReportUseCase struct {
	shipments out.ShipmentRepository
	log       *logger.Logger
}

func NewLoadingReportUseCase(shipments out.ShipmentRepository, log *logger.Logger) in.LoadingReportUseCase {
	return &loadingReportUseCase{shipments: shipments, log: log}
}

// Execute lists the center's outgoing shipments that are currently in their
// loading leg, classified by the size of the raw state history (see
// domain.InLoadingLeg).
func (uc *loadingReportUseCase) Execute(ctx context.Context, centerID int64) ([]in.ShipmentView, error) {
	views, err := uc.shipments.ListViews(ctx, centerID, in.DirectionSent, 0, 0)
	if err != nil {
		return nil, err
	}

	loading := make([]in.ShipmentView, 0, len(views))
	for _, v := range views {
		if domain.InLoadingLeg(len(v.States)) {
			v.Destination = ""
			loading = append(loading, v)
		}
	}

	uc.log.Debug(logger.Entry{
		Action:  "loading_report_built",
		Message: "loading shipments filtered",
		Additional: map[string]any{
			"center_id": centerID,
			"total":     len(views),
			"loading":   len(loading),
		},
	})

	return loading, nil
}
