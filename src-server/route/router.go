package route

import (
	"net/http"

	"rebelcal/src-server/scheduler"
	"rebelcal/src-server/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler builds the whole HTTP surface.
func NewHandler(as *utils.AppState, runner *scheduler.Runner) http.Handler {
	muxer := http.NewServeMux()
	muxer.Handle("GET /metrics", promhttp.Handler())
	Events(muxer, as)
	Organizations(muxer, as)
	Calendar(muxer, as)
	Scrape(muxer, as, runner)
	return LogMiddleware(muxer)
}
