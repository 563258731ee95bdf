package store

import (
	"context"
	"fmt"
	"time"

	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"
)

// Grouped is the combined view: period key (week label or YYYY-MM-DD), then
// category label, then events.
type Grouped map[string]map[string][]*model.Event

func (g Grouped) add(key string, e *model.Event) {
	byCategory, ok := g[key]
	if !ok {
		byCategory = map[string][]*model.Event{}
		g[key] = byCategory
	}
	label := e.Category.Source().Label()
	byCategory[label] = append(byCategory[label], e)
}

// WeekStart is the Monday on or before d.
func WeekStart(d normalize.Date) normalize.Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// WeekLabel names the Monday-start week containing d, e.g.
// "Mar 24 – 30, 2025", "Mar 31 – Apr 06, 2025" or
// "Dec 29, 2025 – Jan 04, 2026".
func WeekLabel(d normalize.Date) string {
	start := WeekStart(d)
	end := start.AddDays(6)
	switch {
	case start.Year != end.Year:
		return fmt.Sprintf("%s – %s", start.Format("Jan 02, 2006"), end.Format("Jan 02, 2006"))
	case start.Month != end.Month:
		return fmt.Sprintf("%s – %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	default:
		return fmt.Sprintf("%s – %s", start.Format("Jan 02"), end.Format("02, 2006"))
	}
}

func GroupByWeek(events []*model.Event) Grouped {
	g := Grouped{}
	for _, e := range events {
		g.add(WeekLabel(e.StartDate), e)
	}
	return g
}

func GroupByDay(events []*model.Event) Grouped {
	g := Grouped{}
	for _, e := range events {
		g.add(e.StartDate.String(), e)
	}
	return g
}

// Overview is recomputed from the table on every call.
type Overview struct {
	Weekly Grouped `json:"weekly"`
	Daily  Grouped `json:"daily"`
}

func (s *EventStore) Overview(ctx context.Context) (Overview, error) {
	events, err := s.ListAll(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("(*EventStore).Overview: %w", err)
	}
	return Overview{Weekly: GroupByWeek(events), Daily: GroupByDay(events)}, nil
}

// ByWeek groups every category's events in the Monday-start week holding
// anchor. The label is always present, even with no events.
func (s *EventStore) ByWeek(ctx context.Context, anchor normalize.Date) (Grouped, error) {
	start := WeekStart(anchor)
	events, err := s.allBetween(ctx, start, start.AddDays(WeekLength))
	if err != nil {
		return nil, fmt.Errorf("(*EventStore).ByWeek: %w", err)
	}
	g := GroupByWeek(events)
	if _, ok := g[WeekLabel(anchor)]; !ok {
		g[WeekLabel(anchor)] = map[string][]*model.Event{}
	}
	return g, nil
}

func (s *EventStore) ByDay(ctx context.Context, day normalize.Date) (Grouped, error) {
	events, err := s.allBetween(ctx, day, day.AddDays(1))
	if err != nil {
		return nil, fmt.Errorf("(*EventStore).ByDay: %w", err)
	}
	g := GroupByDay(events)
	if _, ok := g[day.String()]; !ok {
		g[day.String()] = map[string][]*model.Event{}
	}
	return g, nil
}

func (s *EventStore) allBetween(ctx context.Context, from, to normalize.Date) ([]*model.Event, error) {
	start := time.Now()
	events := []*model.Event{}
	if err := s.db.NewSelect().
		Model(&events).
		Where("start_date >= ?", from.String()).
		Where("start_date < ?", to.String()).
		Order("start_date ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	observeRead(s.obs, start, len(events))
	return events, nil
}
