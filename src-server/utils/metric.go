package utils

import "time"

// ScrapeOutcome is one batch of records with the same fate.
type ScrapeOutcome struct {
	Source  string
	Outcome string // inserted, duplicate, skipped, failed
	Count   int
}

// Metric carries measurements to the metric package. Sends never block;
// a full channel drops the sample.
type Metric struct {
	DatabaseRead      chan float64
	DatabaseEmptyRead chan float64
	DatabaseWrite     chan float64
	ScrapeRecords     chan ScrapeOutcome
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:      make(chan float64, 64),
		DatabaseEmptyRead: make(chan float64, 64),
		DatabaseWrite:     make(chan float64, 64),
		ScrapeRecords:     make(chan ScrapeOutcome, 64),
	}
}

func (m *Metric) ObserveDatabaseRead(d time.Duration) {
	send(m.DatabaseRead, float64(d.Microseconds()))
}

func (m *Metric) ObserveDatabaseEmptyRead(d time.Duration) {
	send(m.DatabaseEmptyRead, float64(d.Microseconds()))
}

func (m *Metric) ObserveDatabaseWrite(d time.Duration) {
	send(m.DatabaseWrite, float64(d.Microseconds()))
}

func (m *Metric) ObserveScrape(source, outcome string, count int) {
	if count == 0 {
		return
	}
	send(m.ScrapeRecords, ScrapeOutcome{Source: source, Outcome: outcome, Count: count})
}

func send[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}
