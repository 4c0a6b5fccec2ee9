package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/samia-cardapio/cardapio-api/docs"
	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/metrics"
	"github.com/samia-cardapio/cardapio-api/internal/offline"
	"github.com/samia-cardapio/cardapio-api/internal/queue"
	"github.com/samia-cardapio/cardapio-api/internal/ratelimiter"
	"github.com/samia-cardapio/cardapio-api/internal/service"
	"github.com/samia-cardapio/cardapio-api/internal/worker"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config       config
	logger       *zap.SugaredLogger
	rateLimiter  ratelimiter.Limiter
	metrics      *metrics.Registry
	store        *stores
	broker       queue.Broker
	menuService  *service.MenuService
	orderService *service.OrderService
	itemService  *service.ItemService
	flagWorker   *worker.ItemFlagWorker
	offline      *offline.Cache
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	store       storeConfig
	broker      brokerConfig
	source      sourceConfig
	order       service.OrderConfig
	offline     offlineConfig
}

type storeConfig struct {
	kind       string
	mongo      mongoConfig
	sqlitePath string
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type brokerConfig struct {
	kind     string
	rabbitMQ rabbitMQConfig
	kafka    kafkaConfig
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type kafkaConfig struct {
	Brokers []string
	GroupID string
}

type sourceConfig struct {
	kind          string
	spreadsheetID string
	gids          map[domain.SheetType]string
	ranges        map[domain.SheetType]string
	timeout       time.Duration
	googleCreds   string
	xlsxPath      string
}

type offlineConfig struct {
	origin   string
	dir      string
	name     string
	precache []string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", app.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(app.RateLimiterMiddleware)

		r.Get("/health", app.healthCheckHandler)

		r.With(cacheControl(menuCacheControl)).Get("/menu", app.getMenuHandler)

		r.Route("/orders", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
				AllowedHeaders: []string{"Content-Type"},
			}))
			r.Post("/", app.createOrderHandler)
		})

		r.Route("/items/{item_id}", func(r chi.Router) {
			r.Patch("/flags", app.updateItemFlagHandler)
			r.Get("/audit", app.getItemAuditHandler)
		})

		r.Get("/overlays/{key}", app.getOverlayHandler)

		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/api/v1/swagger/doc.json")))
	})

	if app.offline != nil {
		r.Handle("/*", app.offline.Handler())
	}

	return r
}

// warmOffline precaches the storefront shell, then drops older generations.
func (app *application) warmOffline(ctx context.Context) {
	if err := app.offline.Install(ctx, app.config.offline.precache); err != nil {
		app.logger.Warnw("offline precache failed", "name", app.offline.Name(), "error", err)
		return
	}
	if _, err := app.offline.Activate(); err != nil {
		app.logger.Warnw("offline cache activation failed", "name", app.offline.Name(), "error", err)
	}
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Cardápio Samia"
	docs.SwaggerInfo.Description = "Menu and ordering API"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.flagWorker != nil {
		if err := app.flagWorker.Start(); err != nil {
			return fmt.Errorf("failed to start item flag worker: %w", err)
		}
	}

	if app.offline != nil {
		go app.warmOffline(context.Background())
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)

		if app.flagWorker != nil {
			app.flagWorker.Stop()
		}

		if app.offline != nil {
			if err := app.offline.Close(); err != nil {
				app.logger.Errorw("error closing offline cache", "error", err)
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing broker", "broker", app.config.broker.kind, "error", err)
			} else {
				app.logger.Infow("broker closed gracefully", "broker", app.config.broker.kind)
			}
		}

		if app.store != nil {
			if err := app.store.close(ctx); err != nil {
				app.logger.Errorw("error closing store", "store", app.config.store.kind, "error", err)
			} else {
				app.logger.Infow("store closed gracefully", "store", app.config.store.kind)
			}
		}

		shutdown <- err
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
