package normalize

import (
	"log/slog"
	"time"
	_ "time/tzdata"
)

// PacificZone is the zone every scraped timestamp is converted to.
const PacificZone = "America/Los_Angeles"

var Pacific = func() *time.Location {
	loc, err := time.LoadLocation(PacificZone)
	if err != nil {
		slog.Warn("can't load Pacific zone, using fixed offset", "error", err)
		return time.FixedZone("PST", -8*60*60)
	}
	return loc
}()
