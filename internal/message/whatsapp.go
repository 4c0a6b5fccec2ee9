// Package message renders an order as the WhatsApp text sent to the store
// and builds the wa.me link that carries it.
package message

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultCountryCode = "55"

	divider = "------------------------------------"
)

// Money renders v with two decimals and a comma separator. v is taken as the
// shortest decimal that reads back as it, and halves round away from zero, so
// 1.005 gives "1,01".
func Money(v float64) string {
	return money(decimal.NewFromFloat(v))
}

func money(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// WhatsAppURL builds the wa.me link for phone, keeping only its digits and
// prefixing the country code.
func WhatsAppURL(countryCode, phone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", TargetNumber(countryCode, phone), encodeComponent(text))
}

func TargetNumber(countryCode, phone string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	var b strings.Builder
	b.WriteString(countryCode)
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// encodeComponent percent-encodes s for a query value; spaces become %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Format renders the full order summary. The output depends only on order.
func Format(order domain.Order) string {
	var b strings.Builder

	b.WriteString("-- *NOVO PEDIDO* --\n\n")
	fmt.Fprintf(&b, "*Cliente:* %s\n", order.Address.ClientName)
	fmt.Fprintf(&b, "*Endereço:* %s\n", formatAddress(order.Address))
	if order.Address.Reference != "" {
		fmt.Fprintf(&b, "*Referência:* %s", order.Address.Reference)
	}
	b.WriteString("\n\n")

	b.WriteString("*" + divider + "*\n")
	b.WriteString("*PEDIDO:*\n")
	b.WriteString(formatItems(order.Items))
	b.WriteString("\n" + divider + "\n")

	fmt.Fprintf(&b, "Subtotal: R$ %s\n", Money(order.Total.Subtotal))
	if decimal.NewFromFloat(order.Total.Discount).IsPositive() {
		fmt.Fprintf(&b, "Desconto: - R$ %s\n", Money(order.Total.Discount))
	}
	fmt.Fprintf(&b, "Taxa de Entrega: R$ %s\n", Money(order.Total.DeliveryFee))
	fmt.Fprintf(&b, "*Total: R$ %s*\n", Money(order.Total.FinalTotal))
	b.WriteString(formatPayment(order.Payment))
	b.WriteString("\n")

	if note := strings.TrimSpace(order.Observation); note != "" {
		fmt.Fprintf(&b, "\n*OBSERVAÇÕES:*\n_%s_", note)
	}

	return strings.TrimSpace(b.String())
}

func formatAddress(a domain.Address) string {
	if a.IsPickup() {
		return a.Street + ", S/N - Retirada"
	}
	return fmt.Sprintf("%s, %s - %s", a.Street, a.Number, a.District)
}

func formatPayment(p domain.Payment) string {
	if p.IsCash() {
		return fmt.Sprintf("Pagamento: *%s*\nTroco para: *R$ %s*\nTroco: *R$ %s*",
			domain.PaymentCash, Money(p.TenderedFor), Money(p.Change))
	}
	return fmt.Sprintf("Pagamento: *%s*", p.Method)
}

type categoryGroup struct {
	name  string
	items []domain.OrderItem
}

// groupByCategory keeps first-seen category order and input order within a category.
func groupByCategory(items []domain.OrderItem) []categoryGroup {
	var groups []categoryGroup
	index := make(map[string]int)

	for _, item := range items {
		category := item.Category
		if category == "" {
			category = domain.DefaultCategory
		}

		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, categoryGroup{name: category})
		}
		groups[i].items = append(groups[i].items, item)
	}

	return groups
}

func formatItems(items []domain.OrderItem) string {
	var b strings.Builder

	for _, group := range groupByCategory(items) {
		fmt.Fprintf(&b, "\n*> %s <*\n", strings.ToUpper(group.name))

		for i, item := range group.items {
			writeItem(&b, item)
			if i < len(group.items)-1 {
				b.WriteString(divider + "\n")
			}
		}
	}

	return b.String()
}

func writeItem(b *strings.Builder, item domain.OrderItem) {
	total := decimal.NewFromFloat(item.Price)
	unit := total
	for _, extra := range item.Extras {
		unit = unit.Sub(decimal.NewFromFloat(extra.Price))
	}

	size, name := splitSize(item.Name)
	label := name
	if size != "" {
		label = fmt.Sprintf("*%s:* %s", size, name)
	}
	fmt.Fprintf(b, "  • %s: R$ %s\n", label, money(unit))

	if len(item.Extras) == 0 {
		return
	}

	for _, extra := range item.Extras {
		fmt.Fprintf(b, "     + _%s (%s): R$ %s_\n", extra.Name, extra.Placement, Money(extra.Price))
	}
	fmt.Fprintf(b, "        *Total C/ Adicionais: R$ %s*\n", money(total))
}

// splitSize separates a "Size: Name" item name.
func splitSize(name string) (size, rest string) {
	before, after, ok := strings.Cut(name, ":")
	if !ok {
		return "", name
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
