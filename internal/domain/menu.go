package domain

import "strings"

type SheetType string

const (
	SheetCardapio          SheetType = "cardapio"
	SheetPromocoes         SheetType = "promocoes"
	SheetDelivery          SheetType = "delivery"
	SheetBurgerIngredients SheetType = "burger_ingredients"
	SheetPizzaIngredients  SheetType = "pizza_ingredients"
	SheetContact           SheetType = "contact"
)

// SheetTypes lists every sheet a menu is assembled from, in response order.
var SheetTypes = []SheetType{
	SheetCardapio,
	SheetPromocoes,
	SheetDelivery,
	SheetBurgerIngredients,
	SheetPizzaIngredients,
	SheetContact,
}

// Sheet locates one logical dataset. URL is used by the CSV source, Range by
// the Sheets API and XLSX sources (tab name, optionally with an A1 range).
type Sheet struct {
	Type  SheetType
	URL   string
	Range string
}

// Key is a canonical field identifier.
type Key string

const (
	KeyID              Key = "id"
	KeyName            Key = "name"
	KeyDescription     Key = "description"
	KeyPrice4Slices    Key = "price4Slices"
	KeyPrice6Slices    Key = "price6Slices"
	KeyBasePrice       Key = "basePrice"
	KeyPrice10Slices   Key = "price10Slices"
	KeyCategory        Key = "category"
	KeyIsPizza         Key = "isPizza"
	KeyIsCustomizable  Key = "isCustomizable"
	KeyAvailable       Key = "available"
	KeyImageURL        Key = "imageUrl"
	KeyPromoPrice      Key = "promoPrice"
	KeyItemID          Key = "itemId"
	KeyActive          Key = "active"
	KeyNeighborhood    Key = "neighborhood"
	KeyDeliveryFee     Key = "deliveryFee"
	KeyPrice           Key = "price"
	KeyIsSingleChoice  Key = "isSingleChoice"
	KeyLimit           Key = "limit"
	KeyIngredientLimit Key = "ingredientLimit"
	KeyIsRequired      Key = "isRequired"
	KeyData            Key = "data"
	KeyValue           Key = "value"
	KeyCategoryLimit   Key = "categoryLimit"

	// set by the overlay merge
	KeyAcceptsExtras Key = "acceptsExtras"
	KeyAllowHalf     Key = "allowHalf"
)

// Record is one parsed sheet row keyed by canonical key. Values are string,
// float64, bool or Limit.
type Record map[Key]any

func (r Record) String(k Key) string {
	s, _ := r[k].(string)
	return s
}

func (r Record) Bool(k Key) bool {
	b, _ := r[k].(bool)
	return b
}

func (r Record) Float(k Key) float64 {
	f, _ := r[k].(float64)
	return f
}

// Limit returns the limit stored under k; absent or mistyped values are unbounded.
func (r Record) Limit(k Key) Limit {
	l, _ := r[k].(Limit)
	return l
}

func (r Record) ID() string {
	return strings.TrimSpace(r.String(KeyID))
}

func (r Record) Clone() Record {
	out := make(Record, len(r)+3)
	for k, v := range r {
		out[k] = v
	}
	return out
}

type Menu struct {
	Cardapio               []Record `json:"cardapio"`
	Promocoes              []Record `json:"promocoes"`
	DeliveryFees           []Record `json:"deliveryFees"`
	IngredientesHamburguer []Record `json:"ingredientesHamburguer"`
	IngredientesPizza      []Record `json:"ingredientesPizza"`
	Contact                []Record `json:"contact"`
}
