package metric

import (
	"log/slog"
	"time"

	"rebelcal/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func register(c prometheus.Collector, name string) bool {
	if err := prometheus.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register metric", "metric", name, "error", err)
			return false
		}
	}
	slog.Debug("metric registered", "metric", name)
	return true
}

func unregister(c prometheus.Collector, name string) {
	switch prometheus.Unregister(c) {
	case true:
		slog.Debug("metric unregistered", "metric", name)
	case false:
		slog.Warn("metric not registered", "metric", name)
	}
}

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	const name = "rebelcal_database_empty_read_microsec"
	databaseEmptyRead := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: "The latency of an empty database read in microseconds",
	})
	if register(databaseEmptyRead, name) {
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(databaseEmptyRead, name)
				return
			case latency := <-as.MetricChans.DatabaseEmptyRead:
				databaseEmptyRead.Set(latency)
			case <-ticker.C:
				latency, err := probeDatabase(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func databaseRead(as *utils.AppState, clearTickerInterval *time.Duration) {
	latencyGauge(as, "rebelcal_database_read_microsec", "The latency of a database read in microseconds", as.MetricChans.DatabaseRead, clearTickerInterval)
}

func databaseWrite(as *utils.AppState, clearTickerInterval *time.Duration) {
	latencyGauge(as, "rebelcal_database_write_microsec", "The latency of a database write in microseconds", as.MetricChans.DatabaseWrite, clearTickerInterval)
}

// gauge holding the last sample, reset to 0 when no sample arrives for a
// while
func latencyGauge(as *utils.AppState, name, help string, samples chan float64, clearTickerInterval *time.Duration) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	if register(gauge, name) {
		gauge.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(gauge, name)
				return
			case latency := <-samples:
				gauge.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}
