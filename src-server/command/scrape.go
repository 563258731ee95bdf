package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rebelcal/src-server/scheduler"
	"rebelcal/src-server/utils"

	"github.com/urfave/cli"
)

var Scrape = cli.Command{
	Name:      "scrape",
	Usage:     "Runs one scrape cycle and exits",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "source",
			Usage: fmt.Sprintf("Which sources to scrape, any of %v; all enabled ones when omitted", utils.SourceOrder),
		},
	},
	Action: scrape,
}

func scrape(c *cli.Context) error {
	as, err := bootstrap()
	if err != nil {
		return err
	}
	defer as.GracefulShutdown()

	// Ctrl+C stops before the next source
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	runner := scheduler.NewRunner(as, scheduler.DefaultScrapers())
	runs, err := runner.RunCycle(ctx, c.StringSlice("source")...)
	if err != nil {
		return err
	}

	failed := 0
	for _, run := range runs {
		status := "ok"
		if run.Failed() {
			status = "failed: " + run.Error
			failed++
		}
		fmt.Printf("%-14s inserted %4d  duplicates %4d  skipped %4d  %s\n",
			run.Source, run.Inserted, run.Duplicates, run.Skipped, status)
	}
	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d sources failed", failed, len(runs)), 1)
	}
	return nil
}
