package mapper

import (
	"fmt"

	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"
	"rebelcal/src-server/utils"
)

// AthleticsRecord is one match row of the athletics coverage table. Date
// comes from the weekday header row above it.
type AthleticsRecord struct {
	Date  string  `json:"date"` // MM/DD/YYYY
	Text  string  `json:"text"` // row text, may span several lines
	Sport *string `json:"sport"`
	Time  *string `json:"time"` // "12:00 PM PST", "TBA"
	Link  *string `json:"link"`
}

func Athletics(rec AthleticsRecord) (*model.Event, error) {
	date, err := model.RebelCoverage.Source().ParseDate(rec.Date)
	if err != nil {
		return nil, fmt.Errorf("Athletics: %w", err)
	}

	// no time cell means no time, never a zero placeholder
	clock, err := normalize.FormatTimePtr(rec.Time)
	if err != nil {
		return nil, fmt.Errorf("Athletics: %w", err)
	}

	var sport *string
	if rec.Sport != nil && utils.CleanupString(*rec.Sport) != "" {
		s := utils.TitleCase(*rec.Sport)
		sport = &s
	}

	e := &model.Event{
		Category:  model.RebelCoverage,
		Name:      utils.CleanupString(rec.Text),
		StartDate: date,
		StartTime: clock,
		EndDate:   date,
		EndTime:   clock,
		Sport:     sport,
		Link:      utils.CleanupOptional(rec.Link),
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("Athletics: %w", err)
	}
	return e, nil
}
