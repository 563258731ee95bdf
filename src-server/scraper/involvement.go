package scraper

import (
	"context"
	"fmt"
	"net/url"

	"rebelcal/src-server/mapper"
	"rebelcal/src-server/normalize"
	"rebelcal/src-server/utils"
)

const involvementPageSize = 200

type involvementResponse struct {
	Value []mapper.InvolvementRecord `json:"value"`
}

// Involvement queries the involvement center's event search API for approved
// events that have not ended yet.
func Involvement(ctx context.Context, s *Session, endpoint string) ([]mapper.InvolvementRecord, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("Involvement: %w", err)
	}
	query := u.Query()
	query.Set("endsAfter", normalize.DateOf(s.Now().In(normalize.Pacific)).String())
	query.Set("orderByField", "endsOn")
	query.Set("orderByDirection", "ascending")
	query.Set("status", "Approved")
	query.Set("take", fmt.Sprint(involvementPageSize))
	u.RawQuery = query.Encode()

	var resp involvementResponse
	if err := s.FetchJSON(ctx, u.String(), &resp); err != nil {
		return nil, unreachable(utils.SourceInvolvement, err)
	}
	return resp.Value, nil
}
