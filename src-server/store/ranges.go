package store

import (
	"context"

	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"

	"github.com/go-ap/errors"
	"github.com/uptrace/bun"
)

// WeekLength is the size of a weekly window. Windows start at the caller's
// anchor, not at a calendar week boundary.
const WeekLength = 7

// Between returns events with from <= start_date < to, earliest first.
func (s *EventStore) Between(ctx context.Context, category model.Category, from, to normalize.Date) ([]*model.Event, error) {
	return s.selectEvents(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("category = ?", category).
			Where("start_date >= ?", from.String()).
			Where("start_date < ?", to.String())
	})
}

// Daily takes a YYYY-MM-DD day. An empty result is not an error here.
func (s *EventStore) Daily(ctx context.Context, category model.Category, day string) ([]*model.Event, error) {
	d, err := parseAnchor(day)
	if err != nil {
		return nil, err
	}
	return s.Between(ctx, category, d, d.AddDays(1))
}

// Weekly takes the YYYY-MM-DD anchor of a half-open seven day window.
func (s *EventStore) Weekly(ctx context.Context, category model.Category, anchor string) ([]*model.Event, error) {
	d, err := parseAnchor(anchor)
	if err != nil {
		return nil, err
	}
	return s.Between(ctx, category, d, d.AddDays(WeekLength))
}

// Monthly takes a YYYY-MM month.
func (s *EventStore) Monthly(ctx context.Context, category model.Category, month string) ([]*model.Event, error) {
	m, err := normalize.ParseMonth(month)
	if err != nil {
		return nil, errors.BadRequestf("invalid month %q, expected YYYY-MM", month)
	}
	return s.Between(ctx, category, m.First(), m.End())
}

func parseAnchor(raw string) (normalize.Date, error) {
	d, err := normalize.ParseISODate(raw)
	if err != nil {
		return normalize.Date{}, errors.BadRequestf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return d, nil
}
