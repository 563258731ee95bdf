package metric

import (
	"context"
	"time"

	"rebelcal/src-server/model"
	"rebelcal/src-server/utils"
)

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	databaseEmptyRead(as, &tickerInterval)
	databaseRead(as, &clearTickerInterval)
	databaseWrite(as, &clearTickerInterval)
	scrapeRecords(as)
}

// latency of a query that matches nothing, timed on the bare connection so
// it never shows up as an observed read
func probeDatabase(as *utils.AppState) (time.Duration, error) {
	start := time.Now()
	if _, err := as.BunDB.NewSelect().
		Model((*model.Event)(nil)).
		Where("start_date < ?", "0001-01-02").
		Exists(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
