package controllers

import (
	"net/http"
	"strings"

	"github.com/madhavavarma/storeadminnom/api/responses"
	"github.com/madhavavarma/storeadminnom/api/validators"
	"github.com/madhavavarma/storeadminnom/internal/dashboard"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
	"github.com/madhavavarma/storeadminnom/pkg/timerange"
)

// DashboardSummary serves the aggregated dashboard for a reporting window.
// The window comes from the "range" query parameter; custom ranges take
// end-inclusive "from"/"to" dates.
func DashboardSummary(svc *dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		selector := timerange.SelectorToday
		if raw := strings.TrimSpace(r.URL.Query().Get("range")); raw != "" {
			parsed, ok := timerange.ParseSelector(raw)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown range selector").WithDetails(map[string]any{"range": raw}))
				return
			}
			selector = parsed
		}

		query := dashboard.Query{Selector: selector}
		if selector == timerange.SelectorCustom {
			from, err := validators.ParseQueryDate(r, "from")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			to, err := validators.ParseQueryDate(r, "to")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			query.CustomFrom = from
			query.CustomTo = to
		}

		summary, err := svc.Summary(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
