package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/bootstrap"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/config"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
)

func main() {
	log := logger.NewLogger("tracker-api")
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Compose(ctx, cfg, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "startup_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer app.Close()

	go app.Hub.Run(ctx)

	go func() {
		log.Info(logger.Entry{
			Action:  "server_started",
			Message: "listening on " + app.Server.Addr,
		})
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(logger.Entry{
				Action:  "server_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()
	log.Info(logger.Entry{Action: "shutdown_started", Message: "signal received"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "shutdown_error",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	log.Info(logger.Entry{Action: "shutdown_complete", Message: "server stopped"})
}
