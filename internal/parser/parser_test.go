package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{name: "quoted comma", line: `a,"b,c",d`, want: []string{"a", "b,c", "d"}},
		{name: "escaped quote", line: `a,"b""c",d`, want: []string{"a", `b"c`, "d"}},
		{name: "carriage return", line: "a,b\r", want: []string{"a", "b"}},
		{name: "carriage return inside quotes", line: "\"x\ry\",z\r", want: []string{"xy", "z"}},
		{name: "trims fields", line: "  a ,  b  ", want: []string{"a", "b"}},
		{name: "trailing comma", line: "a,b,", want: []string{"a", "b", ""}},
		{name: "empty line", line: "", want: []string{""}},
		{name: "unbalanced quote", line: `a,"b,c`, want: []string{"a", "b,c"}},
		{name: "accents", line: "Preço 8 Fatias,Descrição", want: []string{"Preço 8 Fatias", "Descrição"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseLine(tc.line)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseLine(%q)=%q want %q", tc.line, got, tc.want)
			}
			for _, f := range got {
				if strings.Contains(f, "\r") {
					t.Fatalf("field %q contains carriage return", f)
				}
			}
		})
	}
}

func TestSplitRows(t *testing.T) {
	rows := SplitRows("\ufeffa,b\r\n\r\n   \n1,2\n")
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("SplitRows=%q want %q", rows, want)
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		raw   string
		sheet domain.SheetType
		want  domain.Key
	}{
		{raw: "Preço 8 Fatias", sheet: domain.SheetCardapio, want: domain.KeyBasePrice},
		{raw: "  PREÇO 8 FATIAS  ", sheet: domain.SheetCardapio, want: domain.KeyBasePrice},
		{raw: "Preço 10 Fatias", sheet: domain.SheetCardapio, want: domain.KeyPrice10Slices},
		{raw: "Foo Bar!", sheet: domain.SheetCardapio, want: "foobar"},
		{raw: "Ingredientes", sheet: domain.SheetBurgerIngredients, want: domain.KeyName},
		{raw: "Adicionais", sheet: domain.SheetPizzaIngredients, want: domain.KeyName},
		{raw: "ID Intem", sheet: domain.SheetPizzaIngredients, want: domain.KeyID},
		{raw: "ID Intem", sheet: domain.SheetBurgerIngredients, want: domain.KeyID},
		{raw: "Limite Categoria", sheet: domain.SheetPizzaIngredients, want: domain.KeyCategoryLimit},
		// decomposed "ç" still matches
		{raw: "Prec\u0327o", sheet: domain.SheetBurgerIngredients, want: domain.KeyPrice},
		{raw: "Observação Extra", sheet: domain.SheetCardapio, want: "observaoextra"},
	}

	for _, tc := range cases {
		if got := NormalizeHeader(tc.raw, tc.sheet); got != tc.want {
			t.Errorf("NormalizeHeader(%q, %s)=%q want %q", tc.raw, tc.sheet, got, tc.want)
		}
	}
}

func TestCoercion(t *testing.T) {
	cases := []struct {
		name string
		key  domain.Key
		raw  string
		want any
	}{
		{name: "comma decimal", key: domain.KeyBasePrice, raw: "12,50", want: 12.50},
		{name: "dot decimal", key: domain.KeyPromoPrice, raw: "7.9", want: 7.9},
		{name: "currency suffix", key: domain.KeyDeliveryFee, raw: "5,00 reais", want: 5.0},
		{name: "currency garbage", key: domain.KeyPrice, raw: "R$ 3", want: 0.0},
		{name: "currency blank", key: domain.KeyPrice6Slices, raw: "", want: 0.0},
		{name: "limit", key: domain.KeyLimit, raw: "3", want: domain.LimitOf(3)},
		{name: "limit zero", key: domain.KeyIngredientLimit, raw: "0", want: domain.LimitOf(0)},
		{name: "limit prefix", key: domain.KeyLimit, raw: "2 itens", want: domain.LimitOf(2)},
		{name: "limit blank", key: domain.KeyLimit, raw: "", want: domain.Unbounded()},
		{name: "limit words", key: domain.KeyCategoryLimit, raw: "sem limite", want: domain.Unbounded()},
		{name: "bool sim", key: domain.KeyIsPizza, raw: "sim", want: true},
		{name: "bool SIM", key: domain.KeyAvailable, raw: " SIM ", want: true},
		{name: "bool Sim", key: domain.KeyIsRequired, raw: "Sim", want: true},
		{name: "bool não", key: domain.KeyIsPizza, raw: "não", want: false},
		{name: "bool blank", key: domain.KeyActive, raw: "", want: false},
		{name: "string", key: domain.KeyName, raw: " Calabresa ", want: "Calabresa"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := coerce(tc.key, tc.raw, DefaultOptions)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("coerce(%s, %q)=%#v want %#v", tc.key, tc.raw, got, tc.want)
			}
		})
	}
}

func TestUnboundedLimitAboveFiniteLimits(t *testing.T) {
	v, _ := coerce(domain.KeyLimit, "", DefaultOptions)
	l := v.(domain.Limit)
	for _, n := range []int{0, 1, 99, 1 << 40} {
		if l.Compare(domain.LimitOf(n)) <= 0 {
			t.Fatalf("unbounded should compare above %d", n)
		}
	}
}

const cardapioCSV = "ID Item (Único),Nome do Item,Descrição,Preço 8 Fatias,Categoria,É Pizza? (Sim/Não),Limite\r\n" +
	"p1,Calabresa,\"Calabresa, cebola\",\"45,90\",Pizzas,Sim,\r\n" +
	"p2,Broken row,only three\r\n" +
	"b1,X-Burger,\"Pão \"\"brioche\"\"\",\"22,00\",Lanches,não,2\r\n"

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(cardapioCSV, domain.SheetCardapio, DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len=%d want 2 (mismatched row is skipped)", len(records))
	}

	first := records[0]
	if first.ID() != "p1" || first.String(domain.KeyDescription) != "Calabresa, cebola" {
		t.Fatalf("unexpected first record %#v", first)
	}
	if first.Float(domain.KeyBasePrice) != 45.90 || !first.Bool(domain.KeyIsPizza) {
		t.Fatalf("unexpected typed values %#v", first)
	}
	if !first.Limit(domain.KeyLimit).IsUnbounded() {
		t.Fatalf("blank limit should be unbounded: %#v", first)
	}

	second := records[1]
	if second.ID() != "b1" || second.String(domain.KeyDescription) != `Pão "brioche"` {
		t.Fatalf("unexpected second record %#v", second)
	}
	if n, ok := second.Limit(domain.KeyLimit).Value(); !ok || n != 2 {
		t.Fatalf("limit=%v", second.Limit(domain.KeyLimit))
	}
}

func TestParseCSVTooShort(t *testing.T) {
	for _, text := range []string{"", "\n\n", "id,name\n"} {
		records, err := ParseCSV(text, domain.SheetContact, DefaultOptions)
		if err != nil {
			t.Fatal(err)
		}
		if records == nil || len(records) != 0 {
			t.Fatalf("ParseCSV(%q)=%v want empty", text, records)
		}
	}
}

func TestParsePolicies(t *testing.T) {
	strict := Options{OnRowArityMismatch: FailRow, OnNumericParseFailure: FailNumeric}

	_, err := ParseCSV(cardapioCSV, domain.SheetCardapio, strict)
	if !errors.Is(err, ErrRowArity) {
		t.Fatalf("want ErrRowArity, got %v", err)
	}

	_, err = ParseCSV("Bairros,Valor Frete\nCentro,grátis\n", domain.SheetDelivery, strict)
	if !errors.Is(err, ErrNumeric) {
		t.Fatalf("want ErrNumeric, got %v", err)
	}

	records, err := ParseCSV("Bairros,Valor Frete\nCentro,grátis\n", domain.SheetDelivery, DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Float(domain.KeyDeliveryFee) != 0 {
		t.Fatalf("default policy should give 0, got %#v", records[0])
	}
}
