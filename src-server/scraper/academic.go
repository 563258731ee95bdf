package scraper

import (
	"context"
	"strings"

	"rebelcal/src-server/mapper"
	"rebelcal/src-server/utils"

	"github.com/PuerkitoBio/goquery"
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func hasWeekday(s string) bool {
	lower := strings.ToLower(s)
	for _, day := range weekdays {
		if strings.Contains(lower, day) {
			return true
		}
	}
	return false
}

// Academic scrapes the catalog's academic calendar page.
func Academic(ctx context.Context, s *Session, url string) ([]mapper.AcademicRecord, error) {
	doc, err := s.FetchDocument(ctx, url)
	if err != nil {
		return nil, unreachable(utils.SourceAcademic, err)
	}
	return parseAcademic(doc), nil
}

// Each calendar row holds an event cell and a long-form date cell, in either
// order. Rows without a date cell are headings.
func parseAcademic(doc *goquery.Document) []mapper.AcademicRecord {
	var records []mapper.AcademicRecord
	doc.Find("td.block_content tr").Each(func(_ int, row *goquery.Selection) {
		var date, event string
		row.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			text := utils.CleanupString(cell.Text())
			switch {
			case text == "":
			case date == "" && hasWeekday(text):
				date = text
			case event == "":
				event = text
			}
		})
		if date == "" || event == "" {
			return
		}
		records = append(records, mapper.AcademicRecord{Date: date, Event: event})
	})
	return records
}
