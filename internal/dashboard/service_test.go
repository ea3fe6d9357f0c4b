package dashboard

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/madhavavarma/storeadminnom/internal/checkoutform"
	"github.com/madhavavarma/storeadminnom/pkg/config"
	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	"github.com/madhavavarma/storeadminnom/pkg/enums"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
	redisclient "github.com/madhavavarma/storeadminnom/pkg/redis"
	"github.com/madhavavarma/storeadminnom/pkg/timerange"
	"github.com/madhavavarma/storeadminnom/pkg/types"
)

type stubOrders struct {
	orders []models.Order
	err    error
	calls  int
}

func (s *stubOrders) ListAll(_ context.Context) ([]models.Order, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

type stubSchemas struct {
	schema checkoutform.Schema
}

func (s *stubSchemas) GetCheckoutSchema(_ context.Context) (checkoutform.Schema, error) {
	return s.schema, nil
}

type stubCache struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newStubCache() *stubCache {
	return &stubCache{data: map[string]string{}}
}

func (s *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value.(string)
	s.sets++
	return nil
}

func (s *stubCache) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	if !ok {
		return "", redisclient.ErrNotFound
	}
	return raw, nil
}

func (s *stubCache) DashboardSummaryKey(rangeKey string) string {
	return "dashboard:summary:" + rangeKey
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: zerolog.ErrorLevel})
}

func serviceFixture(t *testing.T, orders []models.Order) (*Service, *stubOrders, *stubCache) {
	t.Helper()
	lister := &stubOrders{orders: orders}
	cache := newStubCache()
	schemas := &stubSchemas{schema: checkoutform.Schema{Sections: []checkoutform.Section{{
		Title: "Contact",
		Fields: []checkoutform.Field{
			{Name: "name", Label: "Name", Type: enums.FieldTypeText, ShowOnOrders: true},
		},
	}}}}

	svc, err := NewService(lister, schemas, cache, config.DashboardConfig{CacheTTL: time.Minute, Timezone: "UTC"}, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.now = func() time.Time {
		return time.Date(2024, 3, 5, 16, 0, 0, 0, time.UTC)
	}
	return svc, lister, cache
}

func summaryOrders() []models.Order {
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	return []models.Order{
		{
			CustomerID:   "A",
			Status:       enums.OrderStatusPending,
			TotalPrice:   decimal.NewFromInt(100),
			CheckoutData: types.JSONMap{"name": "Asha"},
			CreatedAt:    day,
		},
		{
			CustomerID: "B",
			Status:     enums.OrderStatusDelivered,
			TotalPrice: decimal.NewFromInt(30),
			CreatedAt:  day.Add(-48 * time.Hour),
		},
	}
}

func TestSummaryComputesWindow(t *testing.T) {
	svc, _, _ := serviceFixture(t, summaryOrders())

	summary, err := svc.Summary(context.Background(), Query{Selector: timerange.SelectorToday})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalOrders != 1 {
		t.Fatalf("total orders = %d, want 1", summary.TotalOrders)
	}
	if !summary.Revenue.Current.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("current revenue = %s", summary.Revenue.Current)
	}
	if len(summary.Customers) != 1 || summary.Customers[0].DisplayName != "Asha" {
		t.Fatalf("customers = %+v", summary.Customers)
	}
	if summary.StatusCounts["Pending"] != 1 {
		t.Fatalf("status counts = %v", summary.StatusCounts)
	}
	if len(summary.DailySeries) != 1 || summary.DailySeries[0].Date != "2024-03-05" {
		t.Fatalf("daily series = %+v", summary.DailySeries)
	}
}

func TestSummaryServesFromCache(t *testing.T) {
	svc, lister, cache := serviceFixture(t, summaryOrders())

	if _, err := svc.Summary(context.Background(), Query{Selector: timerange.SelectorToday}); err != nil {
		t.Fatalf("first Summary: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache writes = %d, want 1", cache.sets)
	}

	summary, err := svc.Summary(context.Background(), Query{Selector: timerange.SelectorToday})
	if err != nil {
		t.Fatalf("second Summary: %v", err)
	}
	if lister.calls != 1 {
		t.Fatalf("order loads = %d, want 1 when cache is warm", lister.calls)
	}
	if summary.TotalOrders != 1 {
		t.Fatalf("cached total orders = %d", summary.TotalOrders)
	}
}

func TestRecomputeBypassesCache(t *testing.T) {
	svc, lister, cache := serviceFixture(t, summaryOrders())

	if _, err := svc.Recompute(context.Background(), Query{Selector: timerange.SelectorToday}, "interval", nil); err != nil {
		t.Fatalf("first Recompute: %v", err)
	}
	if _, err := svc.Recompute(context.Background(), Query{Selector: timerange.SelectorToday}, "signal", nil); err != nil {
		t.Fatalf("second Recompute: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("order loads = %d, want 2", lister.calls)
	}
	if cache.sets != 2 {
		t.Fatalf("cache writes = %d, want 2", cache.sets)
	}
}

func TestRecomputeSupersededDiscardsResult(t *testing.T) {
	svc, lister, cache := serviceFixture(t, summaryOrders())

	superseded := func() bool { return false }
	summary, err := svc.Recompute(context.Background(), Query{Selector: timerange.SelectorToday}, "signal", superseded)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if summary == nil {
		t.Fatal("superseded recompute should still return its summary")
	}
	if lister.calls != 1 {
		t.Fatalf("order loads = %d, want 1", lister.calls)
	}
	if cache.sets != 0 {
		t.Fatalf("cache writes = %d, want 0 for a superseded run", cache.sets)
	}

	if _, err := svc.Recompute(context.Background(), Query{Selector: timerange.SelectorToday}, "signal", func() bool { return true }); err != nil {
		t.Fatalf("current Recompute: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache writes = %d, want 1 for a current run", cache.sets)
	}
}

func TestSummaryCountsSkippedRecords(t *testing.T) {
	orders := append(summaryOrders(), models.Order{CustomerID: "Z", TotalPrice: decimal.NewFromInt(5)})
	svc, _, _ := serviceFixture(t, orders)

	summary, err := svc.Summary(context.Background(), Query{Selector: timerange.SelectorToday})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.SkippedRecords != 1 {
		t.Fatalf("skipped = %d, want 1", summary.SkippedRecords)
	}
}

func TestSummaryCustomRangeKeying(t *testing.T) {
	svc, _, cache := serviceFixture(t, summaryOrders())

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Summary(context.Background(), Query{Selector: timerange.SelectorCustom, CustomFrom: &from, CustomTo: &to}); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if _, ok := cache.data["dashboard:summary:custom:20240301:20240306"]; !ok {
		t.Fatalf("cache keys = %v", cache.data)
	}
}
