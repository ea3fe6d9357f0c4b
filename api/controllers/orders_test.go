package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/madhavavarma/storeadminnom/internal/orders"
	"github.com/madhavavarma/storeadminnom/pkg/enums"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/pagination"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

type stubOrdersService struct {
	orders.Service

	listFilter   orders.ListFilter
	listParams   pagination.Params
	advanced     []uuid.UUID
	setStatuses  []enums.OrderStatus
	advanceErr   error
	fieldErrors  map[string]string
	deleted      []uuid.UUID
	createdInput *orders.CreateOrderInput
}

func (s *stubOrdersService) List(_ context.Context, filter orders.ListFilter, params pagination.Params) (*orders.OrderListResult, error) {
	s.listFilter = filter
	s.listParams = params
	return &orders.OrderListResult{Orders: []orders.OrderDTO{{ID: uuid.New()}}}, nil
}

func (s *stubOrdersService) Create(_ context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
	s.createdInput = &input
	return &orders.OrderDTO{ID: uuid.New(), CustomerID: input.CustomerID, Status: string(enums.OrderStatusPending)}, nil
}

func (s *stubOrdersService) Advance(_ context.Context, orderID uuid.UUID) (*orders.OrderDTO, error) {
	if s.advanceErr != nil {
		return nil, s.advanceErr
	}
	s.advanced = append(s.advanced, orderID)
	return &orders.OrderDTO{ID: orderID, Status: string(enums.OrderStatusConfirmed)}, nil
}

func (s *stubOrdersService) SetStatus(_ context.Context, orderID uuid.UUID, status enums.OrderStatus) (*orders.OrderDTO, error) {
	s.setStatuses = append(s.setStatuses, status)
	return &orders.OrderDTO{ID: orderID, Status: string(status)}, nil
}

func (s *stubOrdersService) UpdateCheckoutData(_ context.Context, orderID uuid.UUID, raw types.JSONMap) (*orders.OrderDTO, map[string]string, error) {
	if len(s.fieldErrors) > 0 {
		return nil, s.fieldErrors, nil
	}
	return &orders.OrderDTO{ID: orderID, CheckoutData: raw}, nil, nil
}

func (s *stubOrdersService) Delete(_ context.Context, orderID uuid.UUID) error {
	s.deleted = append(s.deleted, orderID)
	return nil
}

func routeWithOrderID(handler http.HandlerFunc, method, target string, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	switch method {
	case http.MethodGet:
		r.Get("/orders/{orderId}", handler)
	case http.MethodPost:
		r.Post("/orders/{orderId}", handler)
	case http.MethodPut:
		r.Put("/orders/{orderId}", handler)
	case http.MethodDelete:
		r.Delete("/orders/{orderId}", handler)
	}

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestOrdersListParsesFilters(t *testing.T) {
	svc := &stubOrdersService{}
	handler := OrdersList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders?status=Pending&customer_id=abc&limit=10&cursor=xyz", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.listFilter.Status == nil || *svc.listFilter.Status != enums.OrderStatusPending {
		t.Fatalf("status filter = %v", svc.listFilter.Status)
	}
	if svc.listFilter.CustomerID != "abc" {
		t.Fatalf("customer filter = %q", svc.listFilter.CustomerID)
	}
	if svc.listParams.Limit != 10 || svc.listParams.Cursor != "xyz" {
		t.Fatalf("params = %+v", svc.listParams)
	}
}

func TestOrdersListRejectsUnknownStatus(t *testing.T) {
	handler := OrdersList(&stubOrdersService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders?status=Bogus", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersCreate(t *testing.T) {
	svc := &stubOrdersService{}
	handler := OrdersCreate(svc, nil)

	productID := uuid.New()
	body := `{"customer_id":"9876543210","lines":[{"product_id":"` + productID.String() + `","quantity":2}],"checkout_data":{"name":"Asha"}}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.createdInput == nil || svc.createdInput.CustomerID != "9876543210" {
		t.Fatalf("input = %+v", svc.createdInput)
	}
	if len(svc.createdInput.Lines) != 1 || svc.createdInput.Lines[0].Quantity != 2 {
		t.Fatalf("lines = %+v", svc.createdInput.Lines)
	}
}

func TestOrdersCreateRejectsEmptyLines(t *testing.T) {
	handler := OrdersCreate(&stubOrdersService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"customer_id":"abc","lines":[]}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersAdvance(t *testing.T) {
	svc := &stubOrdersService{}
	orderID := uuid.New()

	resp := routeWithOrderID(OrdersAdvance(svc, nil), http.MethodPost, "/orders/"+orderID.String(), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.advanced) != 1 || svc.advanced[0] != orderID {
		t.Fatalf("advanced = %v", svc.advanced)
	}
}

func TestOrdersAdvanceConflictSurfacesAs422(t *testing.T) {
	svc := &stubOrdersService{advanceErr: pkgerrors.New(pkgerrors.CodeStateConflict, "order is terminal")}
	orderID := uuid.New()

	resp := routeWithOrderID(OrdersAdvance(svc, nil), http.MethodPost, "/orders/"+orderID.String(), "")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestOrdersAdvanceRejectsBadID(t *testing.T) {
	resp := routeWithOrderID(OrdersAdvance(&stubOrdersService{}, nil), http.MethodPost, "/orders/not-a-uuid", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersSetStatus(t *testing.T) {
	svc := &stubOrdersService{}
	orderID := uuid.New()

	resp := routeWithOrderID(OrdersSetStatus(svc, nil), http.MethodPut, "/orders/"+orderID.String(), `{"status":"Cancelled"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.setStatuses) != 1 || svc.setStatuses[0] != enums.OrderStatusCancelled {
		t.Fatalf("statuses = %v", svc.setStatuses)
	}
}

func TestOrdersSetStatusRejectsUnknown(t *testing.T) {
	orderID := uuid.New()
	resp := routeWithOrderID(OrdersSetStatus(&stubOrdersService{}, nil), http.MethodPut, "/orders/"+orderID.String(), `{"status":"Teleported"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersUpdateCheckoutDataFieldErrors(t *testing.T) {
	svc := &stubOrdersService{fieldErrors: map[string]string{"phone": "invalid format"}}
	orderID := uuid.New()

	resp := routeWithOrderID(OrdersUpdateCheckoutData(svc, nil), http.MethodPut, "/orders/"+orderID.String(), `{"checkout_data":{"phone":"bad"}}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error.Details["phone"] != "invalid format" {
		t.Fatalf("details = %v", body.Error.Details)
	}
}

func TestOrdersDelete(t *testing.T) {
	svc := &stubOrdersService{}
	orderID := uuid.New()

	resp := routeWithOrderID(OrdersDelete(svc, nil), http.MethodDelete, "/orders/"+orderID.String(), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.deleted) != 1 {
		t.Fatalf("deleted = %v", svc.deleted)
	}
}
