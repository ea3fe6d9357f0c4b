package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/madhavavarma/storeadminnom/internal/orders"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
	"github.com/madhavavarma/storeadminnom/pkg/metrics"
	redisclient "github.com/madhavavarma/storeadminnom/pkg/redis"
	"github.com/madhavavarma/storeadminnom/pkg/timerange"
)

type recomputer interface {
	Recompute(ctx context.Context, query Query, trigger string, current func() bool) (*Summary, error)
}

// Refresher keeps the cached summaries warm. It recomputes on a fixed
// interval and whenever a change signal arrives, whichever comes first.
// Each trigger bumps a generation counter; an in-flight recompute that
// observes a newer generation stops, since its output would be stale
// before it lands.
type Refresher struct {
	svc      recomputer
	interval time.Duration
	signals  <-chan struct{}
	queries  []Query
	metrics  *metrics.DashboardMetrics
	logg     *logger.Logger

	generation atomic.Uint64
	wg         sync.WaitGroup
}

// HotQueries are the windows the refresher precomputes. Custom ranges
// are computed on demand only.
func HotQueries() []Query {
	return []Query{
		{Selector: timerange.SelectorToday},
		{Selector: timerange.SelectorWeek},
		{Selector: timerange.SelectorMonth},
		{Selector: timerange.SelectorYear},
	}
}

// NewRefresher wires a refresher over the dashboard service. The signal
// channel may be nil, in which case only the interval drives refreshes.
func NewRefresher(svc recomputer, interval time.Duration, signals <-chan struct{}, m *metrics.DashboardMetrics, logg *logger.Logger) *Refresher {
	return &Refresher{
		svc:      svc,
		interval: interval,
		signals:  signals,
		queries:  HotQueries(),
		metrics:  m,
		logg:     logg,
	}
}

// Run blocks until the context is cancelled, then waits for any
// in-flight recompute to wind down.
func (r *Refresher) Run(ctx context.Context) {
	r.kick(ctx, "startup")

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			r.wg.Wait()
			return
		case <-tick:
			r.kick(ctx, "interval")
		case _, ok := <-r.signals:
			if !ok {
				r.signals = nil
				continue
			}
			r.kick(ctx, "signal")
		}
	}
}

func (r *Refresher) kick(ctx context.Context, trigger string) {
	gen := r.generation.Add(1)
	current := func() bool { return r.generation.Load() == gen }
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for _, query := range r.queries {
			if ctx.Err() != nil {
				return
			}
			if !current() {
				r.metrics.IncSuperseded()
				return
			}
			if _, err := r.svc.Recompute(ctx, query, trigger, current); err != nil {
				r.logg.Error(ctx, "dashboard refresh failed", err)
			}
		}
	}()
}

// ListenSignals subscribes to the namespaced change channel and forwards
// each message as an empty struct. The returned channel closes when the
// context is cancelled or the subscription drops.
func ListenSignals(ctx context.Context, client *redisclient.Client, channel string, logg *logger.Logger) (<-chan struct{}, error) {
	sub, err := client.Subscribe(ctx, channel)
	if err != nil {
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer func() {
			if err := sub.Close(); err != nil {
				logg.Warn(ctx, "closing change subscription: "+err.Error())
			}
		}()
		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				_ = msg
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

// DefaultSignalChannel is the channel order mutations are announced on.
const DefaultSignalChannel = orders.OrdersChangedChannel
