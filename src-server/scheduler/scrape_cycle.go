package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"rebelcal/src-server/journal"
	"rebelcal/src-server/mapper"
	"rebelcal/src-server/model"
	"rebelcal/src-server/scraper"
	"rebelcal/src-server/utils"

	"github.com/go-ap/errors"
)

// Scrapers fetch the raw records of each source. Tests swap them for fakes.
type Scrapers struct {
	Academic      func(context.Context, *scraper.Session, string) ([]mapper.AcademicRecord, error)
	Involvement   func(context.Context, *scraper.Session, string) ([]mapper.InvolvementRecord, error)
	Athletics     func(context.Context, *scraper.Session, string) ([]mapper.AthleticsRecord, error)
	Campus        func(context.Context, *scraper.Session, string) ([]mapper.CampusRecord, error)
	Organizations func(context.Context, *scraper.Session, string) ([]mapper.OrganizationRecord, error)
}

func DefaultScrapers() Scrapers {
	return Scrapers{
		Academic:      scraper.Academic,
		Involvement:   scraper.Involvement,
		Athletics:     scraper.Athletics,
		Campus:        scraper.Campus,
		Organizations: scraper.Organizations,
	}
}

// Runner runs scrape cycles: scrape, map, guard, insert. Only one cycle runs
// at a time.
type Runner struct {
	as       *utils.AppState
	scrapers Scrapers
	mu       sync.Mutex
}

func NewRunner(as *utils.AppState, scrapers Scrapers) *Runner {
	return &Runner{as: as, scrapers: scrapers}
}

// RunCycle scrapes the named sources, or every enabled source when none is
// named, one after another in the fixed source order. A source that fails
// does not stop the others, and rows it inserted before failing stay.
func (r *Runner) RunCycle(ctx context.Context, names ...string) ([]*journal.Run, error) {
	for _, name := range names {
		if !slices.Contains(utils.SourceOrder, name) {
			return nil, errors.BadRequestf("unknown source %q", name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sess := scraper.NewSession(scraper.Options{
		Timeout:   r.as.Config.GetScrapeTimeout(),
		UserAgent: r.as.Config.GetUserAgent(),
	})
	defer sess.Close()
	slog.Info("scrape cycle started", "session", sess.ID, "sources", names)

	runs := make([]*journal.Run, 0, len(utils.SourceOrder))
	for _, name := range utils.SourceOrder {
		src := r.as.Sources.Sources[name]
		if len(names) == 0 && !src.IsEnabled() {
			continue
		}
		if len(names) > 0 && !slices.Contains(names, name) {
			continue
		}
		if ctx.Err() != nil {
			return runs, ctx.Err()
		}

		run := r.runSource(ctx, sess, name, src.URL)
		if r.as.Journal != nil {
			if err := r.as.Journal.Record(run); err != nil {
				slog.Warn("can't journal scrape run", "source", name, "error", err)
			}
		}
		runs = append(runs, run)
	}

	slog.Info("scrape cycle finished", "session", sess.ID, "runs", len(runs))
	return runs, nil
}

func (r *Runner) runSource(ctx context.Context, sess *scraper.Session, name, url string) *journal.Run {
	run := &journal.Run{
		SessionID: sess.ID.String(),
		Source:    name,
		StartedAt: time.Now(),
	}

	var err error
	switch name {
	case utils.SourceAcademic:
		err = ingestEvents(ctx, r, run, sess, url, r.scrapers.Academic, mapper.Academic)
	case utils.SourceInvolvement:
		err = ingestEvents(ctx, r, run, sess, url, r.scrapers.Involvement, mapper.Involvement)
	case utils.SourceAthletics:
		err = ingestEvents(ctx, r, run, sess, url, r.scrapers.Athletics, mapper.Athletics)
	case utils.SourceCampus:
		err = ingestEvents(ctx, r, run, sess, url, r.scrapers.Campus, mapper.Campus)
	case utils.SourceOrganizations:
		err = r.ingestOrganizations(ctx, run, sess, url)
	}
	run.FinishedAt = time.Now()

	if err != nil {
		run.Error = err.Error()
		slog.Error("scrape aborted", "source", name, "url", url, "error", err)
		r.as.MetricChans.ObserveScrape(name, "failed", 1)
	} else {
		slog.Info("scrape done",
			"source", name,
			"inserted", run.Inserted,
			"duplicates", run.Duplicates,
			"skipped", run.Skipped,
			"took", run.FinishedAt.Sub(run.StartedAt),
		)
	}
	r.as.MetricChans.ObserveScrape(name, "inserted", run.Inserted)
	r.as.MetricChans.ObserveScrape(name, "duplicate", run.Duplicates)
	r.as.MetricChans.ObserveScrape(name, "skipped", run.Skipped)
	return run
}

func ingestEvents[R any](
	ctx context.Context,
	r *Runner,
	run *journal.Run,
	sess *scraper.Session,
	url string,
	scrape func(context.Context, *scraper.Session, string) ([]R, error),
	toEvent func(R) (*model.Event, error),
) error {
	records, err := scrape(ctx, sess, url)
	if err != nil {
		return err
	}

	for _, rec := range records {
		e, err := toEvent(rec)
		if err != nil {
			slog.Warn("skipping malformed record", "source", run.Source, "record", fmt.Sprintf("%+v", rec), "error", err)
			run.Skipped++
			continue
		}
		switch err := r.as.Events.Insert(ctx, e); {
		case err == nil:
			run.Inserted++
		case errors.IsConflict(err):
			run.Duplicates++
		case errors.IsBadRequest(err):
			slog.Warn("skipping rejected record", "source", run.Source, "event", e, "error", err)
			run.Skipped++
		default:
			return fmt.Errorf("ingestEvents: %w", err)
		}
	}
	return nil
}

func (r *Runner) ingestOrganizations(ctx context.Context, run *journal.Run, sess *scraper.Session, url string) error {
	records, err := r.scrapers.Organizations(ctx, sess, url)
	if err != nil {
		return err
	}

	for _, rec := range records {
		org, err := mapper.Organization(rec)
		if err != nil {
			slog.Warn("skipping malformed record", "source", run.Source, "name", rec.Name, "error", err)
			run.Skipped++
			continue
		}
		switch err := r.as.Organizations.Insert(ctx, org); {
		case err == nil:
			run.Inserted++
		case errors.IsConflict(err):
			run.Duplicates++
		default:
			return fmt.Errorf("(*Runner).ingestOrganizations: %w", err)
		}
	}
	return nil
}
