package validation

import "github.com/imrishuroy/quickstore/internal/orders"

// LoginRequest is the payload for POST /session/login.
type LoginRequest struct {
	Mobile string `json:"mobile" validate:"required,mobile"`
	Name   string `json:"name" validate:"omitempty,max=80"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// ProfileRequest is the payload for PATCH /session. Omitted fields are unchanged.
type ProfileRequest struct {
	Name    *string         `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Email   *string         `json:"email,omitempty" validate:"omitempty,email"`
	Address *orders.Address `json:"address,omitempty"`
}

// CartItemRequest is the payload for POST /cart/items.
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// QuantityRequest is the payload for PATCH /cart/items/:productId.
type QuantityRequest struct {
	Delta int `json:"delta" validate:"required,ne=0"`
}

// CheckoutRequest is the payload for POST /checkout and /checkout/preview.
// A missing address falls back to the one saved on the session.
type CheckoutRequest struct {
	ShippingAddress *orders.Address `json:"shippingAddress,omitempty"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required,oneof=COD UPI Card"`
}

// ReviewRequest is the payload for POST /reviews.
type ReviewRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

// TicketRequest is the payload for POST /tickets.
type TicketRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
}

// ReplyRequest is the payload for POST /tickets/:id/replies.
type ReplyRequest struct {
	Sender  string `json:"sender" validate:"required,oneof=User Admin"`
	Message string `json:"message" validate:"required"`
}

// StatusRequest is the payload for the status update routes.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
