package store

import "time"

// Observer receives query timings. utils.Metric implements it.
type Observer interface {
	ObserveDatabaseRead(time.Duration)
	ObserveDatabaseEmptyRead(time.Duration)
	ObserveDatabaseWrite(time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveDatabaseRead(time.Duration)      {}
func (nopObserver) ObserveDatabaseEmptyRead(time.Duration) {}
func (nopObserver) ObserveDatabaseWrite(time.Duration)     {}

func observeRead(obs Observer, start time.Time, n int) {
	if n == 0 {
		obs.ObserveDatabaseEmptyRead(time.Since(start))
		return
	}
	obs.ObserveDatabaseRead(time.Since(start))
}
