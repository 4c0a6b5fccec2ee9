package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	SheetFetchSec    *prometheus.HistogramVec
	SheetFetchErrors *prometheus.CounterVec
	MenusServed      prometheus.Counter

	OrdersSubmitted     prometheus.Counter
	OrdersPersistFailed prometheus.Counter

	FlagEvents *prometheus.CounterVec

	OfflineCache *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	sheetFetch := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cardapio_sheet_fetch_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"sheet"})
	sheetErrors := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cardapio_sheet_fetch_errors_total"}, []string{"sheet"})
	menus := prometheus.NewCounter(prometheus.CounterOpts{Name: "cardapio_menus_served_total"})

	submitted := prometheus.NewCounter(prometheus.CounterOpts{Name: "cardapio_orders_submitted_total"})
	persistFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "cardapio_orders_persist_failed_total"})

	// result: queued, applied, failed
	flagEvents := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cardapio_item_flag_events_total"}, []string{"result"})

	// result: hit, miss, bypass, error
	offline := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cardapio_offline_cache_requests_total"}, []string{"result"})

	r.MustRegister(sheetFetch, sheetErrors, menus, submitted, persistFailed, flagEvents, offline)
	return &Registry{
		reg:                 r,
		SheetFetchSec:       sheetFetch,
		SheetFetchErrors:    sheetErrors,
		MenusServed:         menus,
		OrdersSubmitted:     submitted,
		OrdersPersistFailed: persistFailed,
		FlagEvents:          flagEvents,
		OfflineCache:        offline,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
