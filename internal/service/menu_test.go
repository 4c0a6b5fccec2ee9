package service

import (
	"context"
	"errors"
	"testing"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/metrics"
	"github.com/samia-cardapio/cardapio-api/internal/parser"
	"go.uber.org/zap"
)

func allSheets() []domain.Sheet {
	sheets := make([]domain.Sheet, 0, len(domain.SheetTypes))
	for _, t := range domain.SheetTypes {
		sheets = append(sheets, domain.Sheet{Type: t})
	}
	return sheets
}

func menuSource() *fakeSource {
	return &fakeSource{sheets: map[domain.SheetType]string{
		domain.SheetCardapio: "ID Item (Único),Nome do Item,Categoria,É Pizza? (Sim/Não),Preço 8 Fatias\n" +
			"p1,Calabresa,Pizzas,Sim,\"45,90\"\n" +
			"p2,Portuguesa,Pizzas,Sim,\"49,90\"\n" +
			"b1,X-Burger,Lanches,Não,\"22,00\"\n",
		domain.SheetDelivery: "Bairros,Valor Frete\nCentro,\"5,00\"\n",
		domain.SheetContact:  "Dados,Valor\nwhatsapp,11999990000\n",
	}}
}

func newMenuService(src *fakeSource, overlays *fakeOverlays) *MenuService {
	return NewMenuService(src, allSheets(), overlays, parser.DefaultOptions, metrics.NewRegistry(), zap.NewNop().Sugar())
}

func TestGetMenuDefaults(t *testing.T) {
	svc := newMenuService(menuSource(), newFakeOverlays())

	menu, err := svc.GetMenu(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(menu.Cardapio) != 3 {
		t.Fatalf("cardapio len=%d", len(menu.Cardapio))
	}
	pizza, burger := menu.Cardapio[0], menu.Cardapio[2]
	if !pizza.Bool(domain.KeyAvailable) || !pizza.Bool(domain.KeyAcceptsExtras) || !pizza.Bool(domain.KeyAllowHalf) {
		t.Fatalf("pizza defaults wrong: %v", pizza)
	}
	if !burger.Bool(domain.KeyAvailable) || burger.Bool(domain.KeyAcceptsExtras) || burger.Bool(domain.KeyAllowHalf) {
		t.Fatalf("burger defaults wrong: %v", burger)
	}

	if len(menu.DeliveryFees) != 1 || menu.DeliveryFees[0].Float(domain.KeyDeliveryFee) != 5 {
		t.Fatalf("delivery fees=%v", menu.DeliveryFees)
	}
	if menu.Promocoes == nil || len(menu.Promocoes) != 0 {
		t.Fatalf("empty sheet should give an empty list, got %v", menu.Promocoes)
	}
}

func TestGetMenuAppliesOverlays(t *testing.T) {
	overlays := newFakeOverlays()
	overlays.docs[domain.OverlayVisibility] = map[string]bool{"p2": false}
	overlays.docs[domain.OverlayAvailability] = map[string]bool{"p1": false}
	overlays.docs[domain.OverlayExtras] = map[string]bool{"b1": true}
	overlays.docs[domain.OverlayHalf] = map[string]bool{"p1": false}

	menu, err := newMenuService(menuSource(), overlays).GetMenu(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(menu.Cardapio) != 2 {
		t.Fatalf("hidden item should be removed: %v", menu.Cardapio)
	}
	p1, b1 := menu.Cardapio[0], menu.Cardapio[1]
	if p1.ID() != "p1" || p1.Bool(domain.KeyAvailable) || p1.Bool(domain.KeyAllowHalf) {
		t.Fatalf("p1=%v", p1)
	}
	if b1.ID() != "b1" || !b1.Bool(domain.KeyAcceptsExtras) {
		t.Fatalf("b1=%v", b1)
	}
}

func TestGetMenuFailsOnAnySheet(t *testing.T) {
	src := menuSource()
	src.fail = domain.SheetPizzaIngredients

	menu, err := newMenuService(src, newFakeOverlays()).GetMenu(context.Background())
	if err == nil || menu != nil {
		t.Fatalf("want error and no menu, got %v, %v", menu, err)
	}
}

func TestGetMenuFailsOnOverlayError(t *testing.T) {
	overlays := newFakeOverlays()
	overlays.err = errors.New("store down")

	if _, err := newMenuService(menuSource(), overlays).GetMenu(context.Background()); err == nil {
		t.Fatal("overlay store errors should fail the menu")
	}
}
