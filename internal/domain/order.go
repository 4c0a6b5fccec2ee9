package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusNew = "Novo"

	PaymentCash     = "Dinheiro"
	PickupStreet    = "Retirada no Balcão"
	DefaultCategory = "Outros"
)

type Extra struct {
	Name      string  `bson:"name" json:"name"`
	Placement string  `bson:"placement" json:"placement"`
	Price     float64 `bson:"price" json:"price"`
}

// OrderItem is one cart line. Price already includes every extra. Name may
// carry a size prefix, e.g. "Grande: Calabresa".
type OrderItem struct {
	Name     string  `bson:"name" json:"name"`
	Category string  `bson:"category" json:"category"`
	Price    float64 `bson:"price" json:"price"`
	Extras   []Extra `bson:"extras,omitempty" json:"extras,omitempty"`
}

type Address struct {
	ClientName string `bson:"client_name" json:"clientName"`
	Street     string `bson:"street" json:"rua"`
	Number     string `bson:"number" json:"numero"`
	District   string `bson:"district" json:"bairro"`
	Reference  string `bson:"reference,omitempty" json:"referencia,omitempty"`
}

func (a Address) IsPickup() bool { return a.Street == PickupStreet }

type OrderTotal struct {
	Subtotal    float64 `bson:"subtotal" json:"subtotal"`
	Discount    float64 `bson:"discount" json:"discount"`
	DeliveryFee float64 `bson:"delivery_fee" json:"deliveryFee"`
	FinalTotal  float64 `bson:"final_total" json:"finalTotal"`
}

// Payment is either a plain label ("Pix", "Cartão") or a structured record;
// cash payments carry the tendered amount and the change.
type Payment struct {
	Method      string  `bson:"method" json:"method"`
	TenderedFor float64 `bson:"tendered_for,omitempty" json:"trocoPara,omitempty"`
	Change      float64 `bson:"change,omitempty" json:"trocoTotal,omitempty"`

	// Structured is set when the client sent an object instead of a label.
	Structured bool `bson:"structured" json:"-"`
}

func (p Payment) IsCash() bool { return p.Structured && p.Method == PaymentCash }

func (p *Payment) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Payment{}
		return nil
	}

	if data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*p = Payment{Method: label}
		return nil
	}

	type payment Payment
	var v payment
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid payment method: %w", err)
	}
	*p = Payment(v)
	p.Structured = true
	return nil
}

func (p Payment) MarshalJSON() ([]byte, error) {
	if !p.Structured {
		return json.Marshal(p.Method)
	}
	type payment Payment
	return json.Marshal(payment(p))
}

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Address     Address            `bson:"address" json:"address"`
	Total       OrderTotal         `bson:"total" json:"total"`
	Payment     Payment            `bson:"payment" json:"payment"`
	Status      string             `bson:"status" json:"status"`
	Observation string             `bson:"observation" json:"observation"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// OrderRequest is the body of an order submission.
type OrderRequest struct {
	Items          []OrderItem `json:"order" validate:"required,min=1"`
	Address        *Address    `json:"selectedAddress" validate:"required"`
	Total          *OrderTotal `json:"total" validate:"required"`
	Payment        Payment     `json:"paymentMethod"`
	WhatsAppNumber string      `json:"whatsappNumber"`
	Observation    string      `json:"observation"`
}

// PersistOutcome is the result of the best-effort order write.
type PersistOutcome struct {
	Saved bool
	Err   error
}

type OrderResult struct {
	Order       *Order
	Message     string
	WhatsAppURL string
	Persist     PersistOutcome
}
