package model

import (
	"errors"
	"fmt"

	"rebelcal/src-server/normalize"
)

// Category is the source an event was scraped from. Each category lives in
// its own partition of the events table.
type Category string

const (
	AcademicCalendar  Category = "academic_calendar"
	InvolvementCenter Category = "involvement_center"
	RebelCoverage     Category = "rebel_coverage"
	UNLVCalendar      Category = "unlv_calendar"
)

// Categories in the order scrapes and aggregated views walk them.
var Categories = []Category{AcademicCalendar, InvolvementCenter, RebelCoverage, UNLVCalendar}

// Which optional classification column a category fills.
type ClassField string

const (
	ClassNone         ClassField = ""
	ClassOrganization ClassField = "organization"
	ClassCategory     ClassField = "category"
	ClassSport        ClassField = "sport"
)

// Source holds everything that differs between categories.
type Source interface {
	Category() Category
	// URL prefix of the category's routes, e.g. "academiccalendar".
	Slug() string
	// Human label used as key in aggregated views.
	Label() string
	// ParseDate accepts exactly one layout; there is no fallback to the
	// layouts of other categories.
	ParseDate(raw string) (normalize.Date, error)
	// Whether start time is part of the duplicate key.
	KeyHasTime() bool
	// Whether events of this category may carry start/end times at all.
	HasTimes() bool
	ClassField() ClassField
}

type academicSource struct{}

func (academicSource) Category() Category     { return AcademicCalendar }
func (academicSource) Slug() string           { return "academiccalendar" }
func (academicSource) Label() string          { return "Academic Calendar" }
func (academicSource) KeyHasTime() bool       { return false }
func (academicSource) HasTimes() bool         { return false }
func (academicSource) ClassField() ClassField { return ClassNone }
func (academicSource) ParseDate(raw string) (normalize.Date, error) {
	return withSource(normalize.ParseLongDate(raw))(AcademicCalendar)
}

type involvementSource struct{}

func (involvementSource) Category() Category     { return InvolvementCenter }
func (involvementSource) Slug() string           { return "involvementcenter" }
func (involvementSource) Label() string          { return "Involvement Center" }
func (involvementSource) KeyHasTime() bool       { return true }
func (involvementSource) HasTimes() bool         { return true }
func (involvementSource) ClassField() ClassField { return ClassOrganization }
func (involvementSource) ParseDate(raw string) (normalize.Date, error) {
	return withSource(normalize.ParseISODateIn(raw, normalize.Pacific))(InvolvementCenter)
}

type rebelCoverageSource struct{}

func (rebelCoverageSource) Category() Category     { return RebelCoverage }
func (rebelCoverageSource) Slug() string           { return "rebelcoverage" }
func (rebelCoverageSource) Label() string          { return "Rebel Coverage" }
func (rebelCoverageSource) KeyHasTime() bool       { return true }
func (rebelCoverageSource) HasTimes() bool         { return true }
func (rebelCoverageSource) ClassField() ClassField { return ClassSport }
func (rebelCoverageSource) ParseDate(raw string) (normalize.Date, error) {
	return withSource(normalize.ParseSlashDate(raw))(RebelCoverage)
}

type unlvCalendarSource struct{}

func (unlvCalendarSource) Category() Category     { return UNLVCalendar }
func (unlvCalendarSource) Slug() string           { return "unlvcalendar" }
func (unlvCalendarSource) Label() string          { return "UNLV Calendar" }
func (unlvCalendarSource) KeyHasTime() bool       { return true }
func (unlvCalendarSource) HasTimes() bool         { return true }
func (unlvCalendarSource) ClassField() ClassField { return ClassCategory }
func (unlvCalendarSource) ParseDate(raw string) (normalize.Date, error) {
	return withSource(normalize.ParseLongDate(raw))(UNLVCalendar)
}

var sources = map[Category]Source{
	AcademicCalendar:  academicSource{},
	InvolvementCenter: involvementSource{},
	RebelCoverage:     rebelCoverageSource{},
	UNLVCalendar:      unlvCalendarSource{},
}

// Source panics on an unknown category; use ParseCategory for untrusted input.
func (c Category) Source() Source {
	src, ok := sources[c]
	if !ok {
		panic(fmt.Sprintf("model: unknown category %q", string(c)))
	}
	return src
}

func (c Category) Valid() bool {
	_, ok := sources[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory accepts either the category name or its slug.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s || c.Source().Slug() == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("ParseCategory: unknown category %q", s)
}

// tag the parse error with the category that rejected it
func withSource(d normalize.Date, err error) func(Category) (normalize.Date, error) {
	return func(c Category) (normalize.Date, error) {
		var dfe *normalize.DateFormatError
		if errors.As(err, &dfe) {
			dfe.Source = string(c)
		}
		return d, err
	}
}
