package api

import (
	"fmt"
	"net/http"

	"github.com/tomnetutc/tmd-sub000/config"
	"github.com/tomnetutc/tmd-sub000/dataset"
)

// AnalysisAPI exposes the aggregation engine over HTTP. Handlers resolve catalog
// selections, pre-filter rows through the segment predicate, and hand the
// filtered rows to the aggregators; they hold no state beyond the dataset store.
type AnalysisAPI struct {
	datasets *dataset.Store
	router   *http.ServeMux
	config   config.API
}

func NewAnalysisAPI(
	datasets *dataset.Store,
	router *http.ServeMux,
	config config.API,
) AnalysisAPI {
	api := AnalysisAPI{datasets: datasets, router: router, config: config}

	api.router.HandleFunc("/catalog", api.GetCatalog)
	api.router.HandleFunc("/between-years", api.BetweenYears)
	api.router.HandleFunc("/cross-segments", api.CrossSegments)
	api.router.HandleFunc("/trip-level", api.TripLevel)
	api.router.HandleFunc("/day-patterns", api.DayPatterns)

	return api
}

// Router exposes the underlying handler, for serving through a custom server or
// in tests.
func (api AnalysisAPI) Router() *http.ServeMux {
	return api.router
}

func (api AnalysisAPI) ListenAndServe() error {
	return http.ListenAndServe(fmt.Sprintf(":%s", api.config.Port), api.router)
}
