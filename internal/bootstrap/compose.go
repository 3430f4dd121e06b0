package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	cargotransport "github.com/ibrahimalsalim/tracker-api/internal/cargo/adapters/in/transport"
	cargoamqp "github.com/ibrahimalsalim/tracker-api/internal/cargo/adapters/out/amqp"
	cargorepo "github.com/ibrahimalsalim/tracker-api/internal/cargo/adapters/out/repo"
	cargousecase "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/usecase"
	"github.com/ibrahimalsalim/tracker-api/internal/catalog"
	"github.com/ibrahimalsalim/tracker-api/internal/fleet"
	"github.com/ibrahimalsalim/tracker-api/internal/identity"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/config"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/db"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/mq"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/ws"
	shipmenttransport "github.com/ibrahimalsalim/tracker-api/internal/shipment/adapters/in/transport"
	shipmentamqp "github.com/ibrahimalsalim/tracker-api/internal/shipment/adapters/out/amqp"
	shipmentrepo "github.com/ibrahimalsalim/tracker-api/internal/shipment/adapters/out/repo"
	shipmentusecase "github.com/ibrahimalsalim/tracker-api/internal/shipment/application/usecase"
	"github.com/ibrahimalsalim/tracker-api/internal/tracking"

	"github.com/jackc/pgx/v5/pgxpool"
)

// App holds the composed service and its shared resources.
type App struct {
	Server *http.Server
	Hub    *ws.Hub

	pool   *pgxpool.Pool
	rabbit *mq.RabbitMQ
	log    *logger.Logger
}

// Compose wires configuration, infrastructure and every bounded context
// into one HTTP server.
func Compose(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	if err := db.Migrate(cfg.Database); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info(logger.Entry{Action: "migrations_applied", Message: "database schema up to date"})

	pool, err := db.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	rabbit, err := mq.NewRabbitMQ(ctx, cfg.RabbitMQ, log)
	if err != nil {
		db.Close(pool, log)
		return nil, err
	}
	if err := mq.SetupTopology(rabbit, log); err != nil {
		rabbit.Close()
		db.Close(pool, log)
		return nil, err
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	middleware := auth.NewMiddleware(jwtService, log)
	txManager := db.NewTxManager(pool)

	mux := http.NewServeMux()

	// shipment context
	shipments := shipmentrepo.NewShipmentPgRepository(pool)
	shipmentStates := shipmentrepo.NewShipmentStatePgRepository(pool)
	truckGate := shipmentrepo.NewTruckGatePg(pool)
	shipmentRefs := shipmentrepo.NewReferenceCheckerPg(pool)
	shipmentEvents := shipmentamqp.NewEventPublisher(rabbit, log)

	shipmentHandler := shipmenttransport.NewHandler(
		shipmentusecase.NewCreateShipmentUseCase(txManager, shipments, shipmentStates, truckGate, shipmentRefs, shipmentEvents, log),
		shipmentusecase.NewAdvanceStateUseCase(txManager, shipments, shipmentStates, truckGate, shipmentEvents, log),
		shipmentusecase.NewShipmentQueries(shipments, shipmentStates),
		shipmentusecase.NewLoadingReportUseCase(shipments, log),
		log,
	)
	shipmenttransport.RegisterRoutes(mux, shipmentHandler, middleware)

	// cargo context
	cargos := cargorepo.NewCargoPgRepository(pool)
	clients := cargorepo.NewClientPgRepository(pool)
	cargoRefs := cargorepo.NewReferenceCheckerPg(pool)
	cargoEvents := cargoamqp.NewEventPublisher(rabbit, log)

	cargoHandler := cargotransport.NewHandler(
		cargousecase.NewCreateCargoUseCase(txManager, cargos, clients, cargoRefs, cargoEvents, log),
		cargousecase.NewCargoQueries(cargos, cargoRefs),
		cargousecase.NewClientQueries(clients),
		log,
	)
	cargotransport.RegisterRoutes(mux, cargoHandler, middleware)

	// fleet context
	fleetService := fleet.NewService(
		fleet.NewTruckRepo(pool),
		fleet.NewCenterRepo(pool),
		fleet.NewUserRoleCheckerPg(pool),
		log,
	)
	fleet.RegisterRoutes(mux, fleet.NewHandler(fleetService, log), middleware)

	// identity context
	identityService := identity.NewService(identity.NewUserRepo(pool), jwtService, log)
	identity.RegisterRoutes(mux, identity.NewHandler(identityService, log), middleware)

	// catalog context
	labelTables := []struct {
		prefix string
		table  string
		column string
		noun   string
	}{
		{"/api/usertypes", "user_types", "type", "user type"},
		{"/api/states", "states", "state", "state"},
		{"/api/shipmentpriorities", "shipment_priorities", "priority", "shipment priority"},
		{"/api/trucktypes", "truck_types", "type", "truck type"},
	}
	for _, t := range labelTables {
		handler := catalog.NewLabelHandler(catalog.NewLabelRepo(pool, t.table, t.column), t.column, t.noun, log)
		catalog.RegisterLabelRoutes(mux, t.prefix, handler, middleware)
	}
	catalog.RegisterContentTypeRoutes(mux, catalog.NewContentTypeHandler(catalog.NewContentTypeRepo(pool), log), middleware)

	// live-location channel
	hub := ws.NewHub(func(token string) (int64, int, error) {
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			return 0, 0, err
		}
		return claims.UserID, claims.Type, nil
	}, log)

	trackingService := tracking.NewService(tracking.NewRepo(pool), log)
	hub.SetMessageHandler(tracking.NewMessageHandler(trackingService, hub, log))
	mux.HandleFunc("GET /ws/location", hub.ServeWS)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: auth.RequestID(mux),
	}

	return &App{
		Server: server,
		Hub:    hub,
		pool:   pool,
		rabbit: rabbit,
		log:    log,
	}, nil
}

// Close releases the app's shared resources.
func (a *App) Close() {
	if a.rabbit != nil {
		a.rabbit.Close()
	}
	db.Close(a.pool, a.log)
}
