// Package checkout turns the cart into a persisted order and hands it off.
//
// An Attempt moves Idle -> Confirming -> Submitting -> Completed or Failed.
// The order write is the commit point: nothing leaves the cart before it
// succeeds, and a failed write leaves the cart exactly as it was.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/imrishuroy/quickstore/internal/cart"
	"github.com/imrishuroy/quickstore/internal/handoff"
	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/pricing"
	"github.com/imrishuroy/quickstore/internal/session"
)

var (
	// ErrValidation is returned by Begin when the cart or the request cannot be submitted.
	ErrValidation = errors.New("checkout validation failed")
	// ErrInvalidState is returned when an attempt is confirmed or cancelled out of order.
	ErrInvalidState = errors.New("invalid checkout state")
)

// Guest placeholders used when nobody is logged in.
const (
	GuestUserID = "GUEST"
	GuestName   = "Customer"
)

// State of an Attempt.
type State string

const (
	StateIdle       State = "idle"
	StateConfirming State = "confirming"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Request carries the user's checkout choices. A nil ShippingAddress falls
// back to the address saved on the session.
type Request struct {
	ShippingAddress *orders.Address
	PaymentMethod   orders.PaymentMethod
}

// Attempt is one checkout waiting for confirmation. Items and Totals are
// frozen at Begin.
type Attempt struct {
	Items         []cart.Item
	Address       orders.Address
	PaymentMethod orders.PaymentMethod
	User          *session.User
	Totals        pricing.Totals

	state State
	err   error
}

// State reports where the attempt is.
func (a *Attempt) State() State { return a.state }

// Err is the error that failed the attempt, if any.
func (a *Attempt) Err() error { return a.err }

// Result is what a completed checkout hands back to the caller.
type Result struct {
	Order   orders.Order
	Link    string
	Message string
	// HandoffErr is set when the channel failed after the order was stored.
	HandoffErr error
}

type orderCreator interface {
	Create(ctx context.Context, d orders.Draft) (orders.Order, error)
}

type sessionReader interface {
	Current(ctx context.Context) (*session.User, error)
}

// Orchestrator runs checkouts one at a time.
type Orchestrator struct {
	mu      sync.Mutex
	cart    *cart.Controller
	orders  orderCreator
	session sessionReader
	channel handoff.Channel
	phone   string
}

// New builds an Orchestrator. A nil channel logs handoffs only.
func New(c *cart.Controller, o orderCreator, s sessionReader, ch handoff.Channel, phone string) *Orchestrator {
	if ch == nil {
		ch = handoff.LogChannel{}
	}
	return &Orchestrator{cart: c, orders: o, session: s, channel: ch, phone: phone}
}

// Preview prices the current cart without starting an attempt.
func (o *Orchestrator) Preview() pricing.Totals {
	return o.cart.Totals()
}

// Begin validates the cart and request and returns an attempt awaiting Confirm.
// Nothing is persisted.
func (o *Orchestrator) Begin(ctx context.Context, req Request) (*Attempt, error) {
	items := o.cart.Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	user, err := o.session.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var addr orders.Address
	switch {
	case req.ShippingAddress != nil:
		addr = *req.ShippingAddress
	case user != nil && user.Address != nil:
		addr = *user.Address
	}
	if !addr.Complete() {
		return nil, fmt.Errorf("%w: shipping address is incomplete", ErrValidation)
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}

	return &Attempt{
		Items:         items,
		Address:       addr,
		PaymentMethod: req.PaymentMethod,
		User:          user,
		Totals:        pricing.Compute(cart.Lines(items)),
		state:         StateConfirming,
	}, nil
}

// Cancel returns a confirming attempt to Idle.
func (o *Orchestrator) Cancel(a *Attempt) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if a.state != StateConfirming {
		return fmt.Errorf("%w: cancel from %s", ErrInvalidState, a.state)
	}
	a.state = StateIdle
	return nil
}

// Confirm places the order for a confirming attempt. On failure the cart is
// untouched and the attempt is Failed. On success the placed lines leave the
// cart and the handoff channel is opened; a channel error is reported in Result.HandoffErr
// and does not undo the order.
func (o *Orchestrator) Confirm(ctx context.Context, a *Attempt) (Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if a.state != StateConfirming {
		return Result{}, fmt.Errorf("%w: confirm from %s", ErrInvalidState, a.state)
	}
	a.state = StateSubmitting

	order, err := o.orders.Create(ctx, draftFor(a))
	if err != nil {
		a.state, a.err = StateFailed, err
		log.Printf("[checkout] order failed: %v", err)
		return Result{}, fmt.Errorf("place order: %w", err)
	}

	msg := handoff.FormatOrder(handoff.SummaryOf(order))
	res := Result{Order: order, Link: handoff.Link(o.phone, msg), Message: msg}

	res.HandoffErr = o.channel.Open(ctx, handoff.Handoff{
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Total,
		Link:    res.Link,
		Message: msg,
	})
	if res.HandoffErr != nil {
		log.Printf("[checkout] handoff failed for order=%s: %v", order.ID, res.HandoffErr)
	}

	if err := o.cart.Settle(ctx, a.Items); err != nil {
		log.Printf("[checkout] order=%s placed but cart mirror not updated: %v", order.ID, err)
	}

	a.state = StateCompleted
	log.Printf("[checkout] completed order=%s user=%s total=%.2f", order.ID, order.UserID, order.Total)
	return res, nil
}

// Checkout is Begin followed by Confirm.
func (o *Orchestrator) Checkout(ctx context.Context, req Request) (Result, error) {
	a, err := o.Begin(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return o.Confirm(ctx, a)
}

func draftFor(a *Attempt) orders.Draft {
	d := orders.Draft{
		UserID:          GuestUserID,
		CustomerName:    GuestName,
		Total:           a.Totals.Total.Round(2).InexactFloat64(),
		PaymentMethod:   a.PaymentMethod,
		ShippingAddress: a.Address,
	}
	if a.User != nil {
		d.UserID = a.User.ID
		d.CustomerMobile = a.User.Mobile
		if a.User.Name != "" {
			d.CustomerName = a.User.Name
		}
	}
	d.Items = make([]orders.Item, 0, len(a.Items))
	for _, it := range a.Items {
		d.Items = append(d.Items, orders.Item{Product: it.Product, Quantity: it.Quantity})
	}
	return d
}
