package utils

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"rebelcal/src-server/journal"
	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"
	"rebelcal/src-server/store"

	"github.com/go-ap/errors"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppState struct {
	Config  *Config
	Sources *SourcesConfig
	RawDb   *sql.DB
	BunDB   *bun.DB
	When    *when.Parser

	Events        *store.EventStore
	Organizations *store.OrganizationStore
	// nil when no journal is open
	Journal *journal.Journal

	MetricChans *Metric

	AppCloseSignalChan chan os.Signal

	shutdownMu         sync.Mutex
	gracefulShutdownCh []*chan struct{}
}

// OpenDatabase opens the sqlite file, creating it when missing.
func OpenDatabase(path string) (*sql.DB, error) {
	rawDb, err := sql.Open(sqliteshim.ShimName, path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("OpenDatabase: %w", err)
	}
	rawDb.SetMaxIdleConns(8)
	return rawDb, nil
}

// NewAppState wires stores and helpers around rawDb and creates the schema.
func NewAppState(cfg *Config, sources *SourcesConfig, rawDb *sql.DB) (*AppState, error) {
	as := &AppState{
		Config:             cfg,
		Sources:            sources,
		RawDb:              rawDb,
		MetricChans:        NewMetric(),
		AppCloseSignalChan: make(chan os.Signal, 1),
	}
	if as.Sources == nil {
		as.Sources = DefaultSourcesConfig()
	}

	// date parser
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	as.BunDB = bun.NewDB(as.RawDb, sqlitedialect.New())
	as.BunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))
	if err := model.CreateSchema(context.Background(), as.BunDB); err != nil {
		return nil, fmt.Errorf("NewAppState: %w", err)
	}

	as.Events = store.NewEventStore(as.BunDB, as.MetricChans)
	as.Organizations = store.NewOrganizationStore(as.BunDB, as.MetricChans)

	return as, nil
}

// OpenJournal opens the scrape journal at JOURNAL_PATH.
func (as *AppState) OpenJournal() error {
	j, err := journal.Open(as.Config.GetJournalPath())
	if err != nil {
		return err
	}
	as.Journal = j
	return nil
}

// ParseBefore reads the cutoff of a delete-past: YYYY-MM-DD, or natural
// language ("last monday", "in 2 weeks") relative to now.
func (as *AppState) ParseBefore(raw string, now time.Time) (normalize.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return normalize.DateOf(now.In(as.Config.GetLocation())), nil
	}
	if d, err := normalize.ParseISODate(raw); err == nil {
		return d, nil
	}
	result, err := as.When.Parse(raw, now.In(as.Config.GetLocation()))
	if err != nil {
		return normalize.Date{}, errors.BadRequestf("can't parse date %q: %s", raw, err)
	}
	if result == nil {
		return normalize.Date{}, errors.BadRequestf("can't parse date %q", raw)
	}
	return normalize.DateOf(result.Time.In(as.Config.GetLocation())), nil
}

// CreateGracefulShutdownChan returns a channel closed by GracefulShutdown.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.shutdownMu.Lock()
	defer as.shutdownMu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownCh = append(as.gracefulShutdownCh, &ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.shutdownMu.Lock()
	for _, ch := range as.gracefulShutdownCh {
		close(*ch)
	}
	as.gracefulShutdownCh = nil
	as.shutdownMu.Unlock()

	if err := as.Journal.Close(); err != nil {
		slog.Warn("can't close journal", "error", err)
	}
	if err := as.BunDB.Close(); err != nil {
		slog.Warn("can't close database", "error", err)
	}
}
