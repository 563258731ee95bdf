package metric

import (
	"rebelcal/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var scrapeRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rebelcal_scrape_records_total",
	Help: "Scraped records by source and outcome (inserted, duplicate, skipped, failed)",
}, []string{"source", "outcome"})

func scrapeRecords(as *utils.AppState) {
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				return
			case o := <-as.MetricChans.ScrapeRecords:
				scrapeRecordsTotal.WithLabelValues(o.Source, o.Outcome).Add(float64(o.Count))
			}
		}
	}()
}
