package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/queue"
	"github.com/samia-cardapio/cardapio-api/internal/repo"
	"github.com/samia-cardapio/cardapio-api/internal/source"
	"github.com/samia-cardapio/cardapio-api/internal/store/mongo"
	"github.com/samia-cardapio/cardapio-api/internal/store/sqlite"
	"go.uber.org/zap"
)

// stores is the repository set of the configured backend.
type stores struct {
	overlays repo.OverlayRepository
	orders   repo.OrderRepository
	audit    repo.ItemFlagAuditRepository
	tx       repo.Transactor
	ping     func(ctx context.Context) error
	close    func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg storeConfig, logger *zap.SugaredLogger) (*stores, error) {
	switch cfg.kind {
	case "mongo":
		storage, err := mongo.New(mongo.Config{
			URI:      cfg.mongo.URI,
			Database: cfg.mongo.Database,
			Timeout:  cfg.mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("connected to MongoDB")

		if err := storage.CreateIndexes(ctx); err != nil {
			logger.Warnw("failed to create indexes", "error", err)
		} else {
			logger.Info("MongoDB indexes created successfully")
		}

		db := storage.Database()
		return &stores{
			overlays: mongo.NewOverlayRepository(db),
			orders:   mongo.NewOrderRepository(db),
			audit:    mongo.NewItemFlagAuditRepository(db),
			tx:       storage,
			ping:     storage.Ping,
			close:    storage.Close,
		}, nil

	case "sqlite":
		storage, err := sqlite.Open(cfg.sqlitePath)
		if err != nil {
			return nil, err
		}
		logger.Infow("opened SQLite database", "path", cfg.sqlitePath)

		return &stores{
			overlays: storage.OverlayRepository(),
			orders:   storage.OrderRepository(),
			audit:    storage.ItemFlagAuditRepository(),
			tx:       storage,
			ping:     storage.Ping,
			close:    func(context.Context) error { return storage.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.kind)
	}
}

func openBroker(cfg brokerConfig) (queue.Broker, error) {
	switch cfg.kind {
	case "rabbitmq":
		return queue.NewRabbitMQBroker(queue.Config{
			URL:           cfg.rabbitMQ.URL,
			MaxRetries:    cfg.rabbitMQ.MaxRetries,
			RetryDelay:    cfg.rabbitMQ.RetryDelay,
			PrefetchCount: cfg.rabbitMQ.PrefetchCount,
		})
	case "kafka":
		return queue.NewKafkaBroker(queue.KafkaConfig{
			Brokers:    cfg.kafka.Brokers,
			GroupID:    cfg.kafka.GroupID,
			MaxRetries: cfg.rabbitMQ.MaxRetries,
			RetryDelay: cfg.rabbitMQ.RetryDelay,
		})
	case "none":
		return queue.NewMemoryBroker(), nil
	default:
		return nil, fmt.Errorf("unknown broker %q", cfg.kind)
	}
}

// openSource returns the sheet source and the sheet list it reads.
func openSource(ctx context.Context, cfg sourceConfig) (source.Source, []domain.Sheet, error) {
	sheets := make([]domain.Sheet, 0, len(domain.SheetTypes))
	for _, t := range domain.SheetTypes {
		sheet := domain.Sheet{Type: t, Range: cfg.ranges[t]}
		if gid := cfg.gids[t]; gid != "" {
			sheet.URL = source.ExportURL(cfg.spreadsheetID, gid)
		}
		sheets = append(sheets, sheet)
	}

	switch cfg.kind {
	case "csv":
		return source.NewHTTPSource(source.HTTPConfig{Timeout: cfg.timeout}), sheets, nil

	case "sheets":
		credsJSON, err := os.ReadFile(cfg.googleCreds)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read Google credentials: %w", err)
		}
		src, err := source.NewSheetsSource(ctx, source.SheetsConfig{
			CredentialsJSON: credsJSON,
			SpreadsheetID:   cfg.spreadsheetID,
		})
		if err != nil {
			return nil, nil, err
		}
		return src, sheets, nil

	case "xlsx":
		if strings.TrimSpace(cfg.xlsxPath) == "" {
			return nil, nil, fmt.Errorf("XLSX_PATH is required for the xlsx source")
		}
		return source.NewXLSXSource(cfg.xlsxPath, nil), sheets, nil

	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.kind)
	}
}
