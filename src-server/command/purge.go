package command

import (
	"context"
	"fmt"
	"time"

	"rebelcal/src-server/model"

	"github.com/urfave/cli"
)

var Purge = cli.Command{
	Name:  "purge",
	Usage: "Deletes past events, or every event with --all",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "category",
			Usage: "Category name or slug to purge; every category when omitted",
		},
		&cli.StringFlag{
			Name:  "before",
			Usage: `Delete events starting before this date: YYYY-MM-DD or text like "last monday"; today when omitted`,
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "Delete every event of the category, ignoring --before",
		},
	},
	Action: purge,
}

func purge(c *cli.Context) error {
	categories := model.Categories
	if names := c.StringSlice("category"); len(names) > 0 {
		categories = nil
		for _, name := range names {
			category, err := model.ParseCategory(name)
			if err != nil {
				return err
			}
			categories = append(categories, category)
		}
	}

	as, err := bootstrap()
	if err != nil {
		return err
	}
	defer as.GracefulShutdown()

	before, err := as.ParseBefore(c.String("before"), time.Now())
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, category := range categories {
		var n int64
		if c.Bool("all") {
			n, err = as.Events.DeleteAll(ctx, category)
		} else {
			n, err = as.Events.DeletePast(ctx, category, before)
		}
		if err != nil {
			return fmt.Errorf("purge %s: %w", category, err)
		}
		fmt.Printf("%-20s deleted %d\n", category, n)
	}
	return nil
}
