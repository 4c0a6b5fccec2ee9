package message

import (
	"net/url"
	"strings"
	"testing"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		Items: []domain.OrderItem{
			{
				Name:     "Grande: Calabresa",
				Category: "Pizzas",
				Price:    52.40,
				Extras: []domain.Extra{
					{Name: "Catupiry", Placement: "Inteira", Price: 5.50},
					{Name: "Bacon", Placement: "Metade 1", Price: 1.00},
				},
			},
			{Name: "Coca-Cola 2L", Category: "Bebidas", Price: 12},
			{Name: "Média: Marguerita", Category: "Pizzas", Price: 38.9},
		},
		Address: domain.Address{
			ClientName: "Ana",
			Street:     "Rua das Flores",
			Number:     "12",
			District:   "Centro",
			Reference:  "Perto da praça",
		},
		Total:   domain.OrderTotal{Subtotal: 103.30, Discount: 10, DeliveryFee: 5, FinalTotal: 98.30},
		Payment: domain.Payment{Method: "Pix"},
	}
}

func TestFormat(t *testing.T) {
	want := strings.Join([]string{
		"-- *NOVO PEDIDO* --",
		"",
		"*Cliente:* Ana",
		"*Endereço:* Rua das Flores, 12 - Centro",
		"*Referência:* Perto da praça",
		"",
		"*------------------------------------*",
		"*PEDIDO:*",
		"",
		"*> PIZZAS <*",
		"  • *Grande:* Calabresa: R$ 45,90",
		"     + _Catupiry (Inteira): R$ 5,50_",
		"     + _Bacon (Metade 1): R$ 1,00_",
		"        *Total C/ Adicionais: R$ 52,40*",
		"------------------------------------",
		"  • *Média:* Marguerita: R$ 38,90",
		"",
		"*> BEBIDAS <*",
		"  • Coca-Cola 2L: R$ 12,00",
		"",
		"------------------------------------",
		"Subtotal: R$ 103,30",
		"Desconto: - R$ 10,00",
		"Taxa de Entrega: R$ 5,00",
		"*Total: R$ 98,30*",
		"Pagamento: *Pix*",
	}, "\n")

	got := Format(sampleOrder())
	if got != want {
		t.Fatalf("unexpected message:\n%s\n--- want ---\n%s", got, want)
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	order := sampleOrder()
	if Format(order) != Format(order) {
		t.Fatal("formatting the same order twice differs")
	}
}

func TestFormatSameCategoryDivider(t *testing.T) {
	order := domain.Order{
		Items: []domain.OrderItem{
			{Name: "X-Burger", Category: "Lanches", Price: 24.5, Extras: []domain.Extra{{Name: "Ovo", Placement: "Extra", Price: 2.5}}},
			{Name: "X-Salada", Category: "Lanches", Price: 20},
		},
		Address: domain.Address{ClientName: "Bia", Street: domain.PickupStreet},
		Total:   domain.OrderTotal{Subtotal: 44.5, FinalTotal: 44.5},
		Payment: domain.Payment{Method: "Cartão"},
	}

	got := Format(order)

	if n := strings.Count(got, "\n------------------------------------\n"); n != 2 {
		// one between the two items, one closing the item list
		t.Fatalf("divider count=%d in\n%s", n, got)
	}
	if !strings.Contains(got, "  • X-Burger: R$ 22,00\n     + _Ovo (Extra): R$ 2,50_\n        *Total C/ Adicionais: R$ 24,50*\n") {
		t.Fatalf("extras block missing in\n%s", got)
	}
	if !strings.Contains(got, "*Endereço:* Retirada no Balcão, S/N - Retirada") {
		t.Fatalf("pickup address missing in\n%s", got)
	}
	if strings.Contains(got, "Desconto") || strings.Contains(got, "Referência") || strings.Contains(got, "OBSERVAÇÕES") {
		t.Fatalf("optional sections should be omitted in\n%s", got)
	}
}

func TestFormatCashAndObservation(t *testing.T) {
	order := sampleOrder()
	order.Items = order.Items[1:2]
	order.Items[0].Category = ""
	order.Payment = domain.Payment{Method: domain.PaymentCash, TenderedFor: 100, Change: 1.7, Structured: true}
	order.Observation = "  sem cebola  "

	got := Format(order)

	if !strings.Contains(got, "*> OUTROS <*") {
		t.Fatalf("empty category should fall back to Outros:\n%s", got)
	}
	if !strings.Contains(got, "Pagamento: *Dinheiro*\nTroco para: *R$ 100,00*\nTroco: *R$ 1,70*") {
		t.Fatalf("cash payment missing:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n\n*OBSERVAÇÕES:*\n_sem cebola_") {
		t.Fatalf("observation missing:\n%s", got)
	}

	order.Observation = "   "
	if strings.Contains(Format(order), "OBSERVAÇÕES") {
		t.Fatal("blank observation should render nothing")
	}
}

func TestWhatsAppURL(t *testing.T) {
	if got := TargetNumber("", "(11) 98765-4321"); got != "5511987654321" {
		t.Fatalf("TargetNumber=%q", got)
	}

	raw := WhatsAppURL(DefaultCountryCode, "(11) 98765-4321", "Olá & até + já")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "wa.me" || u.Path != "/5511987654321" {
		t.Fatalf("unexpected url %s", raw)
	}
	if got := u.Query().Get("text"); got != "Olá & até + já" {
		t.Fatalf("text round trip=%q", got)
	}
	if strings.Contains(raw, "+") {
		t.Fatalf("spaces and plus signs must be percent-encoded: %s", raw)
	}
}

func TestMoney(t *testing.T) {
	cases := map[float64]string{0: "0,00", 5: "5,00", 12.5: "12,50", 0.1 + 0.2: "0,30", 1234.567: "1234,57"}
	for in, want := range cases {
		if got := Money(in); got != want {
			t.Errorf("Money(%v)=%q want %q", in, got, want)
		}
	}
}

func TestMoneyRoundsHalfCentsUp(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{in: 1.005, want: "1,01"},
		{in: 2.675, want: "2,68"},
		{in: 0.125, want: "0,13"},
		{in: 10.004, want: "10,00"},
		{in: -1.005, want: "-1,01"},
	}
	for _, tc := range cases {
		if got := Money(tc.in); got != tc.want {
			t.Errorf("Money(%v)=%q want %q", tc.in, got, tc.want)
		}
	}
}
