package mapper

import (
	"fmt"

	"rebelcal/src-server/model"
	"rebelcal/src-server/utils"
)

// AcademicRecord is one row of the academic catalog calendar.
type AcademicRecord struct {
	Date  string `json:"Date"`  // "Monday, March 17, 2025"
	Event string `json:"Event"` // title
}

func Academic(rec AcademicRecord) (*model.Event, error) {
	date, err := model.AcademicCalendar.Source().ParseDate(rec.Date)
	if err != nil {
		return nil, fmt.Errorf("Academic: %w", err)
	}

	e := &model.Event{
		Category:  model.AcademicCalendar,
		Name:      utils.CleanupString(rec.Event),
		StartDate: date,
		EndDate:   date,
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("Academic: %w", err)
	}
	return e, nil
}
