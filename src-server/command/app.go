package command

import (
	"fmt"
	"log/slog"

	"rebelcal/src-server/utils"

	"github.com/urfave/cli"
)

const AppName = "rebelcal"

var AppVersion = "(unknown)"

func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Scrapes UNLV event listings into one calendar API"
	app.Version = AppVersion
	app.Commands = []cli.Command{
		Serve,
		Scrape,
		Purge,
	}
	return app
}

// bootstrap opens the database and the scrape journal. Callers own the
// returned state and must GracefulShutdown it.
func bootstrap() (*utils.AppState, error) {
	cfg := utils.NewConfig()
	sources, err := utils.LoadSources(cfg.GetSourcesFile())
	if err != nil {
		return nil, err
	}

	rawDb, err := utils.OpenDatabase(cfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}
	as, err := utils.NewAppState(cfg, sources, rawDb)
	if err != nil {
		rawDb.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	if err := as.OpenJournal(); err != nil {
		slog.Warn("scrape journal unavailable, runs will not be recorded", "path", cfg.GetJournalPath(), "error", err)
	}
	return as, nil
}
