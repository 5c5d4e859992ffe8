package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/imrishuroy/quickstore/internal/products"
)

// Status is an order lifecycle state.
type Status string

// Order statuses. Every order starts in StatusProcessing.
const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is recorded on the order; it is never charged or validated against a provider.
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "Card"
)

// Valid reports whether p is one of the accepted methods.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCOD, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

// Address is a shipping address.
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
}

// Complete reports whether every field is filled in.
func (a Address) Complete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != "" &&
		strings.TrimSpace(a.Pincode) != ""
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s - %s", a.Street, a.City, a.State, a.Pincode)
}

// Item is a product snapshot with the ordered quantity.
type Item struct {
	products.Product
	Quantity int `json:"quantity" validate:"min=1"`
}

// Draft is what checkout hands to Create. Total must equal the items subtotal
// plus shipping; the rule is registered by validation.New.
type Draft struct {
	UserID          string        `json:"userId" validate:"required"`
	CustomerName    string        `json:"customerName" validate:"required"`
	CustomerMobile  string        `json:"customerMobile"`
	Items           []Item        `json:"items" validate:"required,min=1,dive"`
	Total           float64       `json:"total" validate:"gt=0"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" validate:"required,oneof=COD UPI Card"`
	ShippingAddress Address       `json:"shippingAddress"`
}

// Order is the record persisted in the orders collection.
type Order struct {
	ID              string        `json:"id" validate:"required"`
	UserID          string        `json:"userId" validate:"required"`
	CustomerName    string        `json:"customerName"`
	CustomerMobile  string        `json:"customerMobile"`
	Items           []Item        `json:"items" validate:"dive"`
	Total           float64       `json:"total" validate:"gte=0"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ShippingAddress Address       `json:"shippingAddress"`
	Status          Status        `json:"status" validate:"required"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Contains reports whether any line of the order is for productID.
func (o Order) Contains(productID string) bool {
	for _, it := range o.Items {
		if it.ID == productID {
			return true
		}
	}
	return false
}

func cloneItems(items []Item) []Item {
	return append([]Item(nil), items...)
}
