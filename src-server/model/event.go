package model

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"rebelcal/src-server/normalize"

	"github.com/go-ap/errors"
	"github.com/uptrace/bun"
)

// Event is the canonical, store-ready shape shared by every category. Only
// the classification column matching the category's ClassField may be set.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID       int64    `bun:"id,pk,autoincrement"`
	Category Category `bun:"category,notnull,type:varchar"` // required
	Name     string   `bun:"name,notnull"`                  // required

	StartDate normalize.Date `bun:"start_date,notnull,type:varchar"` // required
	StartTime *string        `bun:"start_time"`
	EndDate   normalize.Date `bun:"end_date,notnull,type:varchar"`   // required
	EndTime   *string        `bun:"end_time"`

	Location      *string `bun:"location"`
	Organization  *string `bun:"organization"`
	EventCategory *string `bun:"event_category"`
	Sport         *string `bun:"sport"`
	Link          *string `bun:"link"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Validate checks the record before it reaches the store. Failures are
// BadRequest-class errors.
func (e *Event) Validate() error {
	src, ok := sources[e.Category]
	switch {
	case !ok:
		return errors.BadRequestf("unknown category %q", string(e.Category))
	case strings.TrimSpace(e.Name) == "":
		return errors.BadRequestf("name is blank")
	case e.StartDate.IsZero():
		return errors.BadRequestf("start date is blank")
	case e.EndDate.IsZero():
		return errors.BadRequestf("end date is blank")
	case e.EndDate.Before(e.StartDate):
		return errors.BadRequestf("end date %s is before start date %s", e.EndDate, e.StartDate)
	case !src.HasTimes() && (e.StartTime != nil || e.EndTime != nil):
		return errors.BadRequestf("%s events carry no times", src.Label())
	case e.Organization != nil && src.ClassField() != ClassOrganization,
		e.EventCategory != nil && src.ClassField() != ClassCategory,
		e.Sport != nil && src.ClassField() != ClassSport:
		return errors.BadRequestf("%s events only take the %q classification", src.Label(), string(src.ClassField()))
	case e.Link != nil:
		if _, err := url.ParseRequestURI(*e.Link); err != nil {
			return errors.BadRequestf("link is invalid: %s", err)
		}
	}
	return nil
}

// Classification returns whichever of organization/category/sport is set.
func (e *Event) Classification() *string {
	switch e.Category.Source().ClassField() {
	case ClassOrganization:
		return e.Organization
	case ClassCategory:
		return e.EventCategory
	case ClassSport:
		return e.Sport
	}
	return nil
}

// MarshalJSON writes every column the category owns, absent ones as null,
// and leaves out the classification columns of other categories.
func (e Event) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":        e.ID,
		"name":      e.Name,
		"startDate": e.StartDate,
		"startTime": e.StartTime,
		"endDate":   e.EndDate,
		"endTime":   e.EndTime,
		"location":  e.Location,
		"link":      e.Link,
	}
	if src, ok := sources[e.Category]; ok && src.ClassField() != ClassNone {
		out[string(src.ClassField())] = e.Classification()
	}
	return json.Marshal(out)
}

func (e *Event) String() string {
	if e.StartTime != nil {
		return fmt.Sprintf("%s %q @ %s %s", e.Category, e.Name, e.StartDate, *e.StartTime)
	}
	return fmt.Sprintf("%s %q @ %s", e.Category, e.Name, e.StartDate)
}

// Draft is an event as submitted over the API: dates are still raw text in
// the category's own layout.
type Draft struct {
	Name      string  `json:"name"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`

	Location     *string `json:"location"`
	Organization *string `json:"organization"`
	Category     *string `json:"category"`
	Sport        *string `json:"sport"`
	Link         *string `json:"link"`
}
