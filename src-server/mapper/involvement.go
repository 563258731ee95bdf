package mapper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"
	"rebelcal/src-server/utils"
)

const involvementEventURL = "https://involvementcenter.unlv.edu/event/"

// InvolvementRecord is one element of the involvement center's
// `/api/discovery/event/search` response.
type InvolvementRecord struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	StartsOn         string  `json:"startsOn"` // ISO-8601, usually with offset
	EndsOn           string  `json:"endsOn"`
	Location         *string `json:"location"`
	OrganizationName *string `json:"organizationName"`
}

func Involvement(rec InvolvementRecord) (*model.Event, error) {
	startDate, startTime, err := involvementStamp(rec.StartsOn)
	if err != nil {
		return nil, fmt.Errorf("Involvement: start: %w", err)
	}

	endDate, endTime := startDate, startTime
	if strings.TrimSpace(rec.EndsOn) != "" {
		endDate, endTime, err = involvementStamp(rec.EndsOn)
		if err != nil {
			return nil, fmt.Errorf("Involvement: end: %w", err)
		}
	}

	e := &model.Event{
		Category:     model.InvolvementCenter,
		Name:         utils.CleanupString(rec.Name),
		StartDate:    startDate,
		StartTime:    startTime,
		EndDate:      endDate,
		EndTime:      endTime,
		Location:     utils.CleanupOptional(rec.Location),
		Organization: utils.CleanupOptional(rec.OrganizationName),
	}
	if rec.ID != 0 {
		link := involvementEventURL + strconv.FormatInt(rec.ID, 10)
		e.Link = &link
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("Involvement: %w", err)
	}
	return e, nil
}

// splits an ISO timestamp into a Pacific date and a display time; a bare
// date has no time
func involvementStamp(raw string) (normalize.Date, *string, error) {
	t, hasClock, err := normalize.ParseISOTimestamp(raw, normalize.Pacific)
	if err != nil {
		var dfe *normalize.DateFormatError
		if errors.As(err, &dfe) {
			dfe.Source = string(model.InvolvementCenter)
		}
		return normalize.Date{}, nil, err
	}
	date := normalize.DateOf(t)
	if !hasClock {
		return date, nil, nil
	}
	clock, err := normalize.FormatTime(t.Format(time.TimeOnly))
	if err != nil {
		return normalize.Date{}, nil, err
	}
	return date, &clock, nil
}
