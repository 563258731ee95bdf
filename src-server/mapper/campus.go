package mapper

import (
	"fmt"

	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"
	"rebelcal/src-server/utils"
)

// CampusRecord is one listing of the general campus calendar.
type CampusRecord struct {
	Date     string  `json:"date"` // "Tuesday, March 25, 2025"
	Title    string  `json:"title"`
	Time     *string `json:"time"` // "10:00 am - 11:30 am", "All Day"
	Location *string `json:"location"`
	Link     *string `json:"link"`
	Category *string `json:"category"`
}

func Campus(rec CampusRecord) (*model.Event, error) {
	date, err := model.UNLVCalendar.Source().ParseDate(rec.Date)
	if err != nil {
		return nil, fmt.Errorf("Campus: %w", err)
	}

	var startTime, endTime *string
	if raw := utils.CleanupOptional(rec.Time); raw != nil {
		start, end := normalize.SplitTimeRange(*raw)
		if startTime, err = normalize.FormatTimePtr(&start); err != nil {
			return nil, fmt.Errorf("Campus: start: %w", err)
		}
		if endTime, err = normalize.FormatTimePtr(&end); err != nil {
			return nil, fmt.Errorf("Campus: end: %w", err)
		}
		if endTime == nil {
			endTime = startTime
		}
	}

	e := &model.Event{
		Category:      model.UNLVCalendar,
		Name:          utils.CleanupString(rec.Title),
		StartDate:     date,
		StartTime:     startTime,
		EndDate:       date,
		EndTime:       endTime,
		Location:      utils.CleanupOptional(rec.Location),
		EventCategory: utils.CleanupOptional(rec.Category),
		Link:          utils.CleanupOptional(rec.Link),
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("Campus: %w", err)
	}
	return e, nil
}
