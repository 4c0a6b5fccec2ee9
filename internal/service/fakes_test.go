package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/parser"
)

type fakeSource struct {
	sheets map[domain.SheetType]string
	fail   domain.SheetType
}

func (f *fakeSource) Rows(_ context.Context, sheet domain.Sheet) ([][]string, error) {
	if sheet.Type == f.fail {
		return nil, fmt.Errorf("status 500")
	}
	return parser.SplitRows(f.sheets[sheet.Type]), nil
}

type fakeOverlays struct {
	mu     sync.Mutex
	docs   map[domain.OverlayKey]map[string]bool
	err    error
	setErr error
}

func newFakeOverlays() *fakeOverlays {
	return &fakeOverlays{docs: map[domain.OverlayKey]map[string]bool{}}
}

func (f *fakeOverlays) Get(_ context.Context, key domain.OverlayKey) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]bool{}
	for k, v := range f.docs[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeOverlays) SetFlag(_ context.Context, key domain.OverlayKey, itemID string, value bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	if f.docs[key] == nil {
		f.docs[key] = map[string]bool{}
	}
	f.docs[key][itemID] = value
	return nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders []*domain.Order
	err    error
}

func (f *fakeOrders) Create(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, order)
	return nil
}

type fakeAudit struct {
	mu     sync.Mutex
	audits []domain.ItemFlagAudit
	err    error
	limit  int
}

func (f *fakeAudit) Create(_ context.Context, audit *domain.ItemFlagAudit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.audits = append(f.audits, *audit)
	return nil
}

func (f *fakeAudit) GetByItemID(_ context.Context, itemID string, limit int) ([]domain.ItemFlagAudit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
	var out []domain.ItemFlagAudit
	for _, a := range f.audits {
		if a.ItemID == itemID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeTx snapshots the overlay documents and restores them when fn fails.
type fakeTx struct {
	overlays *fakeOverlays
	calls    int
}

func (f *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++

	f.overlays.mu.Lock()
	saved := map[domain.OverlayKey]map[string]bool{}
	for k, doc := range f.overlays.docs {
		saved[k] = map[string]bool{}
		for id, v := range doc {
			saved[k][id] = v
		}
	}
	f.overlays.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.overlays.mu.Lock()
		f.overlays.docs = saved
		f.overlays.mu.Unlock()
		return err
	}
	return nil
}
