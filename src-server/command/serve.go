package command

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rebelcal/src-server/metric"
	"rebelcal/src-server/route"
	"rebelcal/src-server/scheduler"

	"github.com/urfave/cli"
)

const shutdownTimeout = 10 * time.Second

var Serve = cli.Command{
	Name:  "serve",
	Usage: "Serves the HTTP API and scrapes on the configured schedule",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "scrape-now",
			Usage: "Run one scrape cycle right after startup",
		},
	},
	Action: serve,
}

func serve(c *cli.Context) error {
	as, err := bootstrap()
	if err != nil {
		return err
	}
	defer as.GracefulShutdown()

	go metric.Init(as)

	runner := scheduler.NewRunner(as, scheduler.DefaultScrapers())
	stopScheduler, err := runner.Start()
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	// runs before as.GracefulShutdown closes the database
	defer stopScheduler()
	if c.Bool("scrape-now") {
		go func() {
			if _, err := runner.RunCycle(context.Background()); err != nil {
				slog.Error("startup scrape failed", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:    ":" + as.Config.GetPort(),
		Handler: route.NewHandler(as, runner),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())
	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan

	slog.Info("Gracefully shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
