package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/madhavavarma/storeadminnom/api/responses"
	"github.com/madhavavarma/storeadminnom/api/validators"
	"github.com/madhavavarma/storeadminnom/internal/orders"
	"github.com/madhavavarma/storeadminnom/internal/pricing"
	"github.com/madhavavarma/storeadminnom/pkg/enums"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
	"github.com/madhavavarma/storeadminnom/pkg/pagination"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

type orderLineRequest struct {
	ProductID uuid.UUID         `json:"product_id" validate:"required"`
	Selection pricing.Selection `json:"selection"`
	Quantity  int               `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	CustomerID   string             `json:"customer_id" validate:"required"`
	Lines        []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
	CheckoutData types.JSONMap      `json:"checkout_data"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type updateCheckoutDataRequest struct {
	CheckoutData types.JSONMap `json:"checkout_data" validate:"required"`
}

type updateItemsRequest struct {
	Lines []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		filter := orders.ListFilter{
			CustomerID: validators.SanitizeString(r.URL.Query().Get("customer_id"), 200),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").WithDetails(map[string]any{"status": raw}))
				return
			}
			filter.Status = &status
		}

		list, err := svc.List(r.Context(), filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func OrdersDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrdersCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.CreateOrderInput{
			CustomerID:   validators.SanitizeString(req.CustomerID, 200),
			Lines:        toLineInputs(req.Lines),
			CheckoutData: req.CheckoutData,
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrdersAdvance moves an order one step along the fulfilment flow.
func OrdersAdvance(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Advance(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrdersSetStatus jumps an order to any valid status, including Cancelled
// and Returned.
func OrdersSetStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").WithDetails(map[string]any{"status": req.Status}))
			return
		}

		order, err := svc.SetStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrdersUpdateCheckoutData(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateCheckoutDataRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, fieldErrors, err := svc.UpdateCheckoutData(r.Context(), orderID, req.CheckoutData)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(fieldErrors) > 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "checkout data invalid").WithDetails(fieldErrors))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrdersUpdateItems(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateItemsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.UpdateItems(r.Context(), orderID, toLineInputs(req.Lines))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrdersDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	return parsePathUUID(r, "orderId")
}

// toLineInputs converts wire lines into typed inputs. The selection
// snapshots are validated against the live catalog by the service.
func toLineInputs(reqLines []orderLineRequest) []orders.LineInput {
	lines := make([]orders.LineInput, 0, len(reqLines))
	for _, line := range reqLines {
		lines = append(lines, orders.LineInput{
			ProductID: line.ProductID,
			Selection: line.Selection,
			Quantity:  line.Quantity,
		})
	}
	return lines
}
