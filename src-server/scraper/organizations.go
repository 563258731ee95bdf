package scraper

import (
	"context"
	"slices"

	"rebelcal/src-server/mapper"
	"rebelcal/src-server/utils"

	"github.com/PuerkitoBio/goquery"
)

// Organizations renders the directory and presses "Load More" until every
// organization is listed.
func Organizations(ctx context.Context, s *Session, pageURL string) ([]mapper.OrganizationRecord, error) {
	doc, err := s.RenderDocument(ctx, pageURL, "#org-search-results", "Load More")
	if err != nil {
		return nil, unreachable(utils.SourceOrganizations, err)
	}
	return parseOrganizations(doc), nil
}

// sorted, unique names
func parseOrganizations(doc *goquery.Document) []mapper.OrganizationRecord {
	var names []string
	doc.Find(`#org-search-results a[href*="/organization/"]`).Each(func(_ int, link *goquery.Selection) {
		name := utils.CleanupString(link.Find(`div[style*="font-weight: 600"]`).First().Text())
		if name != "" {
			names = append(names, name)
		}
	})
	slices.Sort(names)
	names = slices.Compact(names)

	records := make([]mapper.OrganizationRecord, len(names))
	for i, name := range names {
		records[i] = mapper.OrganizationRecord{Name: name}
	}
	return records
}
