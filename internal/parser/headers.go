package parser

import (
	"strings"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// baseHeaders maps normalized sheet headers to canonical keys. Several
// phrases share a key across sheet types.
var baseHeaders = map[string]domain.Key{
	// cardapio
	"id item (único)":       domain.KeyID,
	"nome do item":          domain.KeyName,
	"descrição":             domain.KeyDescription,
	"preço 4 fatias":        domain.KeyPrice4Slices,
	"preço 6 fatias":        domain.KeyPrice6Slices,
	"preço 8 fatias":        domain.KeyBasePrice,
	"preço 10 fatias":       domain.KeyPrice10Slices,
	"categoria":             domain.KeyCategory,
	"é pizza? (sim/não)":    domain.KeyIsPizza,
	"é montável? (sim/não)": domain.KeyIsCustomizable,
	"disponível (sim/não)":  domain.KeyAvailable,
	"imagem":                domain.KeyImageURL,

	// promocoes
	"id promocao":       domain.KeyID,
	"nome da promocao":  domain.KeyName,
	"preco promocional": domain.KeyPromoPrice,
	"id item aplicavel": domain.KeyItemID,
	"ativo (sim/nao)":   domain.KeyActive,

	// delivery
	"bairros":     domain.KeyNeighborhood,
	"valor frete": domain.KeyDeliveryFee,

	// ingredients
	"id intem":                domain.KeyID,
	"ingredientes":            domain.KeyName,
	"preço":                   domain.KeyPrice,
	"seleção única":           domain.KeyIsSingleChoice,
	"limite":                  domain.KeyLimit,
	"limite ingrediente":      domain.KeyIngredientLimit,
	"é obrigatório?(sim/não)": domain.KeyIsRequired,
	"disponível":              domain.KeyAvailable,
	"adicionais":              domain.KeyName,
	"limite adicionais":       domain.KeyLimit,
	"limite categoria":        domain.KeyCategoryLimit,

	// contact
	"dados": domain.KeyData,
	"valor": domain.KeyValue,
}

type sheetHeader struct {
	sheet  domain.SheetType
	header string
}

// sheetHeaders take precedence over baseHeaders for their sheet type.
var sheetHeaders = map[sheetHeader]domain.Key{
	{sheet: domain.SheetPizzaIngredients, header: "id intem"}: domain.KeyID,
}

// NormalizeHeader resolves one raw header for the given sheet type.
func NormalizeHeader(raw string, sheet domain.SheetType) domain.Key {
	clean := strings.ToLower(strings.TrimSpace(norm.NFC.String(raw)))

	if key, ok := sheetHeaders[sheetHeader{sheet: sheet, header: clean}]; ok {
		return key
	}
	if key, ok := baseHeaders[clean]; ok {
		return key
	}

	return slug(clean)
}

func NormalizeHeaders(raw []string, sheet domain.SheetType) []domain.Key {
	keys := make([]domain.Key, len(raw))
	for i, h := range raw {
		keys[i] = NormalizeHeader(h, sheet)
	}
	return keys
}

// slug keeps only ASCII lowercase letters and digits.
func slug(s string) domain.Key {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return domain.Key(b.String())
}
