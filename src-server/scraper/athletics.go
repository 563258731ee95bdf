package scraper

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"rebelcal/src-server/mapper"
	"rebelcal/src-server/utils"

	"github.com/PuerkitoBio/goquery"
)

var (
	clockRe      = regexp.MustCompile(`(?i)\b\d{1,2}(:\d{2})?\s*[ap]\.?m\.?`)
	placeholders = map[string]bool{"TBA": true, "TBD": true, "ALL DAY": true}

	headerLayouts = []string{"Monday, January 2, 2006", "Monday, January 2", "Monday, Jan 2", "Mon, Jan 2"}
)

// Athletics renders the coverage page, whose schedule table is built client
// side.
func Athletics(ctx context.Context, s *Session, pageURL string) ([]mapper.AthleticsRecord, error) {
	doc, err := s.RenderDocument(ctx, pageURL, "table", "")
	if err != nil {
		return nil, unreachable(utils.SourceAthletics, err)
	}
	return parseAthletics(doc, pageURL, s.Now()), nil
}

// The coverage table interleaves weekday header rows ("SATURDAY, DECEMBER 27")
// with match rows belonging to the header above them.
func parseAthletics(doc *goquery.Document, pageURL string, now time.Time) []mapper.AthleticsRecord {
	base, _ := url.Parse(pageURL)
	var records []mapper.AthleticsRecord
	var date string

	doc.Find("table").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		text := utils.CleanupString(row.Text())
		if text == "" {
			return
		}
		if hasWeekday(text) {
			date = headerDate(text, now)
			return
		}
		if date == "" {
			// column headings
			return
		}

		rec := mapper.AthleticsRecord{Date: date}
		var parts []string
		row.Find("td").Each(func(j int, cell *goquery.Selection) {
			cellText := utils.CleanupString(cell.Text())
			switch {
			case cellText == "":
			case rec.Time == nil && placeholders[strings.ToUpper(cellText)]:
				rec.Time = &cellText
			case rec.Time == nil && clockRe.MatchString(cellText) && len(cellText) < 20:
				clock := clockRe.FindString(cellText)
				rec.Time = &clock
			case rec.Sport == nil && j == 0:
				rec.Sport = &cellText
			default:
				parts = append(parts, cellText)
			}
		})
		rec.Text = strings.Join(parts, " ")
		if rec.Text == "" {
			rec.Text = text
		}
		if href, ok := row.Find("a[href]").First().Attr("href"); ok && base != nil {
			if ref, err := base.Parse(href); err == nil {
				link := ref.String()
				rec.Link = &link
			}
		}
		records = append(records, rec)
	})
	return records
}

// headerDate turns a header into MM/DD/YYYY. Headers usually lack the year,
// so the one putting the date closest to now wins. Unknown shapes are passed
// through for the mapper to reject.
func headerDate(header string, now time.Time) string {
	for _, layout := range headerLayouts {
		// month and weekday names match case-insensitively
		t, err := time.Parse(layout, header)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = closestYear(t, now)
		}
		return t.Format("01/02/2006")
	}
	return header
}

func closestYear(t, now time.Time) time.Time {
	best := t.AddDate(now.Year(), 0, 0)
	for _, year := range []int{now.Year() - 1, now.Year() + 1} {
		candidate := t.AddDate(year, 0, 0)
		if absDuration(candidate.Sub(now)) < absDuration(best.Sub(now)) {
			best = candidate
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
