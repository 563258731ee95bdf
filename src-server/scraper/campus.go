package scraper

import (
	"context"
	"net/url"

	"rebelcal/src-server/mapper"
	"rebelcal/src-server/utils"

	"github.com/PuerkitoBio/goquery"
)

// Campus scrapes the general campus calendar listing.
func Campus(ctx context.Context, s *Session, pageURL string) ([]mapper.CampusRecord, error) {
	doc, err := s.FetchDocument(ctx, pageURL)
	if err != nil {
		return nil, unreachable(utils.SourceCampus, err)
	}
	return parseCampus(doc, pageURL), nil
}

// Listings sit under day headings. Each one is a col-sm-10 block with the
// title link, followed by col-sm-2 (time) and col-sm-12 text-sm (location)
// siblings.
func parseCampus(doc *goquery.Document, pageURL string) []mapper.CampusRecord {
	base, _ := url.Parse(pageURL)
	var records []mapper.CampusRecord
	var date string

	// selection order is document order
	doc.Find("h2, h3, div.col-sm-10").Each(func(_ int, sel *goquery.Selection) {
		if !sel.Is("div") {
			if text := utils.CleanupString(sel.Text()); hasWeekday(text) {
				date = text
			}
			return
		}

		title := sel.Find("a").First()
		name := utils.CleanupString(title.Text())
		if name == "" || date == "" {
			return
		}
		rec := mapper.CampusRecord{Date: date, Title: name}
		if href, ok := title.Attr("href"); ok && base != nil {
			if ref, err := base.Parse(href); err == nil {
				link := ref.String()
				rec.Link = &link
			}
		}
		rec.Time = siblingText(sel, "div.col-sm-2")
		rec.Location = siblingText(sel, "div.col-sm-12.text-sm")
		records = append(records, rec)
	})
	return records
}

func siblingText(sel *goquery.Selection, selector string) *string {
	sibling := sel.NextAllFiltered(selector).First()
	if sibling.Length() == 0 {
		return nil
	}
	text := sibling.Text()
	return utils.CleanupOptional(&text)
}
