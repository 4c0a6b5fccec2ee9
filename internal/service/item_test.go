package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/metrics"
	"github.com/samia-cardapio/cardapio-api/internal/queue"
	"go.uber.org/zap"
)

type itemFixture struct {
	svc      *ItemService
	overlays *fakeOverlays
	audit    *fakeAudit
	tx       *fakeTx
	broker   *queue.MemoryBroker
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()
	overlays := newFakeOverlays()
	audit := &fakeAudit{}
	tx := &fakeTx{overlays: overlays}
	broker := queue.NewMemoryBroker()

	svc := NewItemService(overlays, audit, tx, broker, metrics.NewRegistry(), zap.NewNop().Sugar())

	// apply events inline, the way the worker would
	_ = broker.Subscribe(context.Background(), queue.QueueItemFlags, func(ctx context.Context, msg []byte) error {
		var event domain.ItemFlagEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			return err
		}
		return svc.ProcessFlagEvent(ctx, event)
	})

	return &itemFixture{svc: svc, overlays: overlays, audit: audit, tx: tx, broker: broker}
}

func TestUpdateFlagAppliesAndAudits(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	f.overlays.docs[domain.OverlayAvailability] = map[string]bool{"p1": true}

	if err := f.svc.UpdateFlag(ctx, "p1", domain.FlagAvailable, false, "sold out", "u1"); err != nil {
		t.Fatal(err)
	}

	if v, ok := f.overlays.docs[domain.OverlayAvailability]["p1"]; !ok || v {
		t.Fatalf("overlay not updated: %v", f.overlays.docs)
	}
	if f.tx.calls != 1 {
		t.Fatalf("transaction calls=%d", f.tx.calls)
	}
	if len(f.audit.audits) != 1 {
		t.Fatalf("audits=%v", f.audit.audits)
	}
	a := f.audit.audits[0]
	if a.OldValue == nil || !*a.OldValue || a.NewValue || a.Reason != "sold out" || a.UserID != "u1" || a.EventType != domain.EventItemFlagChanged {
		t.Fatalf("audit=%+v", a)
	}

	// first change of an item has no old value
	if err := f.svc.UpdateFlag(ctx, "p9", domain.FlagVisible, false, "", ""); err != nil {
		t.Fatal(err)
	}
	if f.audit.audits[1].OldValue != nil {
		t.Fatalf("audit=%+v", f.audit.audits[1])
	}
}

func TestProcessFlagEventRollsBack(t *testing.T) {
	f := newItemFixture(t)
	f.audit.err = errors.New("insert failed")

	err := f.svc.ProcessFlagEvent(context.Background(), domain.ItemFlagEvent{
		EventType: domain.EventItemFlagChanged,
		ItemID:    "p1",
		Flag:      domain.FlagAllowHalf,
		NewValue:  false,
	})
	if err == nil {
		t.Fatal("want error")
	}
	if _, ok := f.overlays.docs[domain.OverlayHalf]["p1"]; ok {
		t.Fatal("flag write should be rolled back")
	}
}

func TestUpdateFlagValidation(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()

	for _, id := range []string{"", "a.b", "$x"} {
		if err := f.svc.UpdateFlag(ctx, id, domain.FlagAvailable, true, "", ""); !errors.Is(err, ErrInvalidItemID) {
			t.Errorf("id %q: want ErrInvalidItemID, got %v", id, err)
		}
	}
	if err := f.svc.UpdateFlag(ctx, "p1", "spicy", true, "", ""); !errors.Is(err, ErrUnknownFlag) {
		t.Fatalf("want ErrUnknownFlag, got %v", err)
	}
	if len(f.audit.audits) != 0 {
		t.Fatal("rejected updates must not be applied")
	}
}

func TestGetAuditLimit(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()

	cases := []struct{ in, want int }{{0, DefaultAuditLimit}, {-3, DefaultAuditLimit}, {10, 10}, {MaxAuditLimit + 1, MaxAuditLimit}}
	for _, tc := range cases {
		if _, err := f.svc.GetAudit(ctx, "p1", tc.in); err != nil {
			t.Fatal(err)
		}
		if f.audit.limit != tc.want {
			t.Errorf("limit %d -> %d want %d", tc.in, f.audit.limit, tc.want)
		}
	}
}

func TestGetOverlay(t *testing.T) {
	f := newItemFixture(t)
	f.overlays.docs[domain.OverlayExtras] = map[string]bool{"b1": true}

	flags, err := f.svc.GetOverlay(context.Background(), domain.OverlayExtras)
	if err != nil {
		t.Fatal(err)
	}
	if !flags["b1"] {
		t.Fatalf("flags=%v", flags)
	}

	if _, err := f.svc.GetOverlay(context.Background(), "menus"); !errors.Is(err, ErrUnknownOverlay) {
		t.Fatalf("want ErrUnknownOverlay, got %v", err)
	}
}

func TestCurrentFlag(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	f.overlays.docs[domain.OverlayHalf] = map[string]bool{"p1": false}

	v, err := f.svc.CurrentFlag(ctx, "p1", domain.FlagAllowHalf)
	if err != nil {
		t.Fatal(err)
	}
	if v == nil || *v {
		t.Fatalf("stored false expected, got %v", v)
	}

	v, err = f.svc.CurrentFlag(ctx, "p2", domain.FlagAllowHalf)
	if err != nil || v != nil {
		t.Fatalf("absent item should give nil, got %v %v", v, err)
	}

	if _, err := f.svc.CurrentFlag(ctx, "p1", "spicy"); !errors.Is(err, ErrUnknownFlag) {
		t.Fatalf("want ErrUnknownFlag, got %v", err)
	}
}
