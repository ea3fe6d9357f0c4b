package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/madhavavarma/storeadminnom/internal/checkoutform"
	"github.com/madhavavarma/storeadminnom/pkg/config"
	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
	"github.com/madhavavarma/storeadminnom/pkg/metrics"
	redisclient "github.com/madhavavarma/storeadminnom/pkg/redis"
	"github.com/madhavavarma/storeadminnom/pkg/timerange"
)

// Query selects the reporting window for a summary.
type Query struct {
	Selector   timerange.Selector
	CustomFrom *time.Time
	CustomTo   *time.Time
}

// Summary is the full dashboard payload.
type Summary struct {
	Range          RangeDTO          `json:"range"`
	TotalOrders    int               `json:"total_orders"`
	Revenue        RevenueDelta      `json:"revenue"`
	StatusCounts   map[string]int    `json:"status_counts"`
	DailySeries    []DailyPoint      `json:"daily_series"`
	Customers      []CustomerSummary `json:"customers"`
	SkippedRecords int               `json:"skipped_records,omitempty"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// RangeDTO echoes the resolved bounds back to the client.
type RangeDTO struct {
	Selector string     `json:"selector"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

type orderLister interface {
	ListAll(ctx context.Context) ([]models.Order, error)
}

type schemaLoader interface {
	GetCheckoutSchema(ctx context.Context) (checkoutform.Schema, error)
}

type summaryCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	DashboardSummaryKey(rangeKey string) string
}

// Service computes and caches dashboard summaries. It is the only
// consumer-facing entrypoint of this package.
type Service struct {
	orders  orderLister
	schemas schemaLoader
	cache   summaryCache
	cfg     config.DashboardConfig
	metrics *metrics.DashboardMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds a dashboard service with the required dependencies.
func NewService(orders orderLister, schemas schemaLoader, cache summaryCache, cfg config.DashboardConfig, m *metrics.DashboardMetrics, logg *logger.Logger) (*Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order lister required")
	}
	if schemas == nil {
		return nil, fmt.Errorf("schema loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		orders:  orders,
		schemas: schemas,
		cache:   cache,
		cfg:     cfg,
		metrics: m,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// Summary returns the dashboard for the query's window, serving from
// the cache when a fresh copy exists.
func (s *Service) Summary(ctx context.Context, query Query) (*Summary, error) {
	key := ""
	if s.cache != nil {
		key = s.cache.DashboardSummaryKey(cacheKey(query))
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var summary Summary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		} else if !errors.Is(err, redisclient.ErrNotFound) {
			s.logg.Warn(ctx, "dashboard cache read failed: "+err.Error())
		}
	}

	summary, err := s.compute(ctx, query, "request")
	if err != nil {
		return nil, err
	}

	if s.cache != nil && key != "" {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), s.cfg.CacheTTL); err != nil {
				s.logg.Warn(ctx, "dashboard cache write failed: "+err.Error())
			}
		}
	}
	return summary, nil
}

// Recompute rebuilds and caches the summary for the query regardless of
// cache state. The refresher uses it to keep hot windows warm. When
// current is non-nil it is consulted again after the computation: a
// result that is no longer current is returned but never cached, so a
// newer run's output cannot be overwritten by a stale one.
func (s *Service) Recompute(ctx context.Context, query Query, trigger string, current func() bool) (*Summary, error) {
	summary, err := s.compute(ctx, query, trigger)
	if err != nil {
		return nil, err
	}
	if current != nil && !current() {
		return summary, nil
	}
	if s.cache != nil {
		key := s.cache.DashboardSummaryKey(cacheKey(query))
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), s.cfg.CacheTTL); err != nil {
				s.logg.Warn(ctx, "dashboard cache write failed: "+err.Error())
			}
		}
	}
	return summary, nil
}

func (s *Service) compute(ctx context.Context, query Query, trigger string) (*Summary, error) {
	started := s.now()

	allOrders, err := s.orders.ListAll(ctx)
	if err != nil {
		s.metrics.IncRefreshFailure(trigger)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading orders")
	}
	schema, err := s.schemas.GetCheckoutSchema(ctx)
	if err != nil {
		s.metrics.IncRefreshFailure(trigger)
		return nil, err
	}

	r := timerange.Resolve(query.Selector, s.now().In(s.location()), query.CustomFrom, query.CustomTo)
	filtered, skipped := FilterByRange(allOrders, r)
	s.metrics.AddSkippedRecords(skipped)

	customers := CustomerRollup(filtered)
	attachDisplayNames(customers, filtered, schema)

	summary := &Summary{
		Range: RangeDTO{
			Selector: string(query.Selector),
			From:     r.From,
			To:       r.To,
		},
		TotalOrders:    len(filtered),
		Revenue:        ComputeRevenueDelta(allOrders, r),
		StatusCounts:   StatusHistogram(filtered),
		DailySeries:    DailySeries(filtered, s.location()),
		Customers:      customers,
		SkippedRecords: skipped,
		GeneratedAt:    s.now().UTC(),
	}

	s.metrics.ObserveRefresh(trigger, s.now().Sub(started))
	s.metrics.IncRefreshSuccess(trigger)
	return summary, nil
}

// attachDisplayNames resolves each customer's label from their most
// recent order's checkout data.
func attachDisplayNames(customers []CustomerSummary, orders []models.Order, schema checkoutform.Schema) {
	latest := map[string]models.Order{}
	for _, order := range orders {
		current, ok := latest[order.CustomerID]
		if !ok || order.CreatedAt.After(current.CreatedAt) {
			latest[order.CustomerID] = order
		}
	}
	for i := range customers {
		order, ok := latest[customers[i].CustomerID]
		if !ok {
			customers[i].DisplayName = UnknownBucket
			continue
		}
		customers[i].DisplayName = CustomerDisplayName(order, schema)
	}
}

func (s *Service) location() *time.Location {
	if s.cfg.Timezone == "" || strings.EqualFold(s.cfg.Timezone, "Local") {
		return time.Local
	}
	loc, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func cacheKey(query Query) string {
	parts := []string{string(query.Selector)}
	if query.CustomFrom != nil {
		parts = append(parts, query.CustomFrom.UTC().Format("20060102"))
	}
	if query.CustomTo != nil {
		parts = append(parts, query.CustomTo.UTC().Format("20060102"))
	}
	return strings.Join(parts, ":")
}
