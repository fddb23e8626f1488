package cart

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/electromaison/storefront-api/currency"
)

// OrderMessage serializes the cart into the human-readable text handed
// to the messaging channel at checkout.
func OrderMessage(state State, storeName string) string {
	var b strings.Builder
	b.WriteString("Bonjour " + storeName + ", je souhaite commander :\n")
	for _, item := range state.Items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		b.WriteString("- " + item.Product.Name +
			" x" + strconv.Itoa(item.Quantity) +
			" — " + currency.Format(line) + "\n")
	}
	b.WriteString("Total : " + currency.Format(state.Total))
	return b.String()
}

// WhatsAppLink builds the wa.me deep link carrying the order message.
// The handoff is fire-and-forget: nothing tracks whether the visitor
// actually sends it.
func WhatsAppLink(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String() + "?text=" + url.QueryEscape(message)
}
