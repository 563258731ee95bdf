package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"

	"github.com/go-ap/errors"
	"github.com/uptrace/bun"
)

// EventStore is the events table, one partition per category.
type EventStore struct {
	db  bun.IDB
	obs Observer
}

func NewEventStore(db bun.IDB, obs Observer) *EventStore {
	if obs == nil {
		obs = nopObserver{}
	}
	return &EventStore{db: db, obs: obs}
}

// Insert stores a mapped event. A duplicate key is a Conflict, whether the
// guard or the unique index catches it.
func (s *EventStore) Insert(ctx context.Context, e *model.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	exists, err := keyExists(ctx, s.db, e.Category, e.Name, e.StartDate, e.StartTime)
	if err != nil {
		return fmt.Errorf("(*EventStore).Insert: %w", err)
	}
	if exists {
		return duplicateError(e.Category, e.Name, e.StartDate)
	}
	return s.insert(ctx, e)
}

// Create stores an event submitted with raw dates in the category's layout.
// The draft is validated before the duplicate lookup, so a malformed draft is
// a BadRequest even when its key is taken.
func (s *EventStore) Create(ctx context.Context, category model.Category, d model.Draft) (*model.Event, error) {
	start, end, err := parseRange(category, d.StartDate, d.EndDate)
	if err != nil {
		return nil, err
	}
	startTime, err := normalize.FormatTimePtr(d.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := normalize.FormatTimePtr(d.EndTime)
	if err != nil {
		return nil, err
	}

	e := &model.Event{
		Category:      category,
		Name:          normalize.Text(d.Name),
		StartDate:     start,
		StartTime:     startTime,
		EndDate:       end,
		EndTime:       endTime,
		Location:      d.Location,
		Organization:  d.Organization,
		EventCategory: d.Category,
		Sport:         d.Sport,
		Link:          d.Link,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if _, _, err := CheckDuplicate(ctx, s.db, category, d.StartDate, d.EndDate, e.Name, d.StartTime); err != nil {
		return nil, err
	}
	if err := s.insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventStore) insert(ctx context.Context, e *model.Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	start := time.Now()
	if _, err := s.db.NewInsert().
		Model(e).
		Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return duplicateError(e.Category, e.Name, e.StartDate)
		}
		return fmt.Errorf("(*EventStore).insert: %w", err)
	}
	s.obs.ObserveDatabaseWrite(time.Since(start))
	return nil
}

func (s *EventStore) Get(ctx context.Context, category model.Category, id int64) (*model.Event, error) {
	start := time.Now()
	e := new(model.Event)
	if err := s.db.NewSelect().
		Model(e).
		Where("category = ?", category).
		Where("id = ?", id).
		Scan(ctx); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			observeRead(s.obs, start, 0)
			return nil, errors.NotFoundf("could not find %s event with id %d", category.Source().Label(), id)
		}
		return nil, fmt.Errorf("(*EventStore).Get: %w", err)
	}
	observeRead(s.obs, start, 1)
	return e, nil
}

// List returns every event of the category, earliest first.
func (s *EventStore) List(ctx context.Context, category model.Category) ([]*model.Event, error) {
	return s.selectEvents(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("category = ?", category)
	})
}

// ListAll returns the events of every category, earliest first.
func (s *EventStore) ListAll(ctx context.Context) ([]*model.Event, error) {
	return s.selectEvents(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q
	})
}

func (s *EventStore) selectEvents(ctx context.Context, filter func(*bun.SelectQuery) *bun.SelectQuery) ([]*model.Event, error) {
	start := time.Now()
	events := []*model.Event{}
	if err := filter(s.db.NewSelect().Model(&events)).
		Order("start_date ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*EventStore).selectEvents: %w", err)
	}
	observeRead(s.obs, start, len(events))
	return events, nil
}

// DeleteAll empties the category. Zero rows is a normal result.
func (s *EventStore) DeleteAll(ctx context.Context, category model.Category) (int64, error) {
	return s.delete(ctx, func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("category = ?", category)
	})
}

// DeletePast removes events of the category starting strictly before the
// given date.
func (s *EventStore) DeletePast(ctx context.Context, category model.Category, before normalize.Date) (int64, error) {
	return s.delete(ctx, func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("category = ?", category).Where("start_date < ?", before.String())
	})
}

func (s *EventStore) delete(ctx context.Context, filter func(*bun.DeleteQuery) *bun.DeleteQuery) (int64, error) {
	start := time.Now()
	res, err := filter(s.db.NewDelete().Model((*model.Event)(nil))).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("(*EventStore).delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("(*EventStore).delete: %w", err)
	}
	s.obs.ObserveDatabaseWrite(time.Since(start))
	return n, nil
}
