// Package handoff turns a placed order into a WhatsApp message and delivers
// the handoff to a Channel.
package handoff

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/pricing"
	"github.com/imrishuroy/quickstore/internal/session"
)

// StoreName appears in the title of every outgoing message.
const StoreName = "QuickStore"

// Summary is the data an order message is formatted from.
type Summary struct {
	OrderID       string
	CustomerName  string
	Address       orders.Address
	PaymentMethod orders.PaymentMethod
	Items         []orders.Item
	Total         float64
}

// SummaryOf builds a Summary from a persisted order.
func SummaryOf(o orders.Order) Summary {
	return Summary{
		OrderID:       o.ID,
		CustomerName:  o.CustomerName,
		Address:       o.ShippingAddress,
		PaymentMethod: o.PaymentMethod,
		Items:         o.Items,
		Total:         o.Total,
	}
}

// FormatOrder renders the order message. Field order is fixed: customer,
// address, payment, items, total.
func FormatOrder(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*NEW ORDER - %s*\n\n", StoreName)
	fmt.Fprintf(&b, "*Customer:* %s\n", s.CustomerName)
	fmt.Fprintf(&b, "*Address:* %s\n", s.Address)
	fmt.Fprintf(&b, "*Payment:* %s\n\n", s.PaymentMethod)
	b.WriteString("*Items:*\n")
	for i, it := range s.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "• %s (x%d) - Rs. %s", it.Name, it.Quantity,
			pricing.LineTotal(it.Price, it.Quantity).StringFixed(2))
	}
	fmt.Fprintf(&b, "\n\n*Total Amount:* Rs.%s", decimal.NewFromFloat(s.Total).StringFixed(2))
	return b.String()
}

// FormatSupport renders a support request. A nil user is a guest.
func FormatSupport(subject string, user *session.User) string {
	name, mobile := "Guest", "Not logged in"
	if user != nil {
		if user.Name != "" {
			name = user.Name
		}
		if user.Mobile != "" {
			mobile = user.Mobile
		}
	}
	return fmt.Sprintf("*Support Request - %s*\n\n*Subject:* %s\n*Customer:* %s\n*Mobile:* %s\n\nHow can you help me today?",
		StoreName, subject, name, mobile)
}

// Link builds a wa.me deep link carrying text. Spaces are encoded as %20.
func Link(phone, text string) string {
	enc := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + enc
}

// SupportLink is Link over FormatSupport.
func SupportLink(phone, subject string, user *session.User) string {
	return Link(phone, FormatSupport(subject, user))
}
