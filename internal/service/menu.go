package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/metrics"
	"github.com/samia-cardapio/cardapio-api/internal/overlay"
	"github.com/samia-cardapio/cardapio-api/internal/parser"
	"github.com/samia-cardapio/cardapio-api/internal/repo"
	"github.com/samia-cardapio/cardapio-api/internal/source"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type MenuService struct {
	source   source.Source
	sheets   []domain.Sheet
	overlays repo.OverlayRepository
	options  parser.Options
	metrics  *metrics.Registry
	logger   *zap.SugaredLogger
}

func NewMenuService(
	src source.Source,
	sheets []domain.Sheet,
	overlays repo.OverlayRepository,
	options parser.Options,
	metrics *metrics.Registry,
	logger *zap.SugaredLogger,
) *MenuService {
	return &MenuService{
		source:   src,
		sheets:   sheets,
		overlays: overlays,
		options:  options,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetMenu reads every sheet and the overlay documents concurrently. Any
// failure fails the whole menu.
func (s *MenuService) GetMenu(ctx context.Context) (*domain.Menu, error) {
	records, err := s.fetchSheets(ctx)
	if err != nil {
		return nil, err
	}

	flags, err := s.loadFlags(ctx)
	if err != nil {
		return nil, err
	}

	menu := &domain.Menu{
		Cardapio:               overlay.Apply(records[domain.SheetCardapio], flags),
		Promocoes:              records[domain.SheetPromocoes],
		DeliveryFees:           records[domain.SheetDelivery],
		IngredientesHamburguer: records[domain.SheetBurgerIngredients],
		IngredientesPizza:      records[domain.SheetPizzaIngredients],
		Contact:                records[domain.SheetContact],
	}

	s.metrics.MenusServed.Inc()

	return menu, nil
}

func (s *MenuService) fetchSheets(ctx context.Context) (map[domain.SheetType][]domain.Record, error) {
	results := make([][]domain.Record, len(s.sheets))

	g, gctx := errgroup.WithContext(ctx)
	for i, sheet := range s.sheets {
		i, sheet := i, sheet
		g.Go(func() error {
			start := time.Now()
			rows, err := s.source.Rows(gctx, sheet)
			s.metrics.SheetFetchSec.WithLabelValues(string(sheet.Type)).Observe(time.Since(start).Seconds())
			if err != nil {
				s.metrics.SheetFetchErrors.WithLabelValues(string(sheet.Type)).Inc()
				s.logger.Errorw("failed to fetch sheet", "sheet", sheet.Type, "error", err)
				return fmt.Errorf("failed to fetch sheet %s: %w", sheet.Type, err)
			}

			parsed, err := parser.ParseRows(rows, sheet.Type, s.options)
			if err != nil {
				s.logger.Errorw("failed to parse sheet", "sheet", sheet.Type, "error", err)
				return fmt.Errorf("failed to parse sheet %s: %w", sheet.Type, err)
			}

			results[i] = parsed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make(map[domain.SheetType][]domain.Record, len(s.sheets))
	for i, sheet := range s.sheets {
		records[sheet.Type] = results[i]
	}

	// unconfigured sheets are served as empty lists
	for _, t := range domain.SheetTypes {
		if records[t] == nil {
			records[t] = []domain.Record{}
		}
	}

	return records, nil
}

func (s *MenuService) loadFlags(ctx context.Context) (overlay.Flags, error) {
	maps := make([]map[string]bool, len(domain.OverlayKeys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range domain.OverlayKeys {
		i, key := i, key
		g.Go(func() error {
			m, err := s.overlays.Get(gctx, key)
			if err != nil {
				s.logger.Errorw("failed to read overlay", "overlay", key, "error", err)
				return fmt.Errorf("failed to read overlay %s: %w", key, err)
			}
			maps[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return overlay.Flags{}, err
	}

	var flags overlay.Flags
	for i, key := range domain.OverlayKeys {
		flags.Set(key, maps[i])
	}

	return flags, nil
}
