package controllers

import (
	"net/http"

	"github.com/madhavavarma/storeadminnom/api/responses"
	"github.com/madhavavarma/storeadminnom/api/validators"
	"github.com/madhavavarma/storeadminnom/internal/checkoutform"
	"github.com/madhavavarma/storeadminnom/internal/settings"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
)

func CheckoutSchemaGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}
		schema, err := svc.GetCheckoutSchema(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, schema)
	}
}

// CheckoutSchemaPut replaces the whole checkout form definition. The
// schema is validated before it is stored; a rejected schema leaves the
// stored one untouched.
func CheckoutSchemaPut(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var schema checkoutform.Schema
		if err := validators.DecodeJSONBody(r, &schema); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stored, err := svc.PutCheckoutSchema(r.Context(), schema)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stored)
	}
}
