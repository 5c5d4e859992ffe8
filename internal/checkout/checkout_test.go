package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/quickstore/internal/cart"
	"github.com/imrishuroy/quickstore/internal/handoff"
	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/products"
	"github.com/imrishuroy/quickstore/internal/session"
	"github.com/imrishuroy/quickstore/internal/store"
	"github.com/imrishuroy/quickstore/internal/store/storetest"
	"github.com/imrishuroy/quickstore/internal/validation"
)

const phone = "919876543210"

var addr = orders.Address{Street: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"}

type recordChannel struct {
	mu   sync.Mutex
	got  []handoff.Handoff
	fail error
}

func (r *recordChannel) Open(_ context.Context, h handoff.Handoff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, h)
	return r.fail
}

type fixture struct {
	backend  *storetest.FlakyBackend
	store    *store.Store
	cart     *cart.Controller
	orders   *orders.Repository
	sessions *session.Repository
	channel  *recordChannel
	o        *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := storetest.NewFlakyBackend()
	s := store.New(b, validation.New())
	ids := store.SequentialIDs()
	f := &fixture{
		backend:  b,
		store:    s,
		cart:     cart.NewController(s),
		orders:   orders.NewRepository(s, ids),
		sessions: session.NewRepository(s, ids),
		channel:  &recordChannel{},
	}
	f.o = New(f.cart, f.orders, f.sessions, f.channel, phone)
	return f
}

func (f *fixture) add(t *testing.T, id string, times int) {
	t.Helper()
	for _, p := range products.DefaultCatalog() {
		if p.ID != id {
			continue
		}
		for i := 0; i < times; i++ {
			_, err := f.cart.Add(context.Background(), p)
			require.NoError(t, err)
		}
		return
	}
	t.Fatalf("no catalog product %s", id)
}

func TestCheckout_GuestSuccessClearsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "P-1001", 2) // 49.98
	f.add(t, "P-1006", 1) // 15.75

	a := addr
	res, err := f.o.Checkout(ctx, Request{ShippingAddress: &a, PaymentMethod: orders.PaymentCOD})
	require.NoError(t, err)
	require.NoError(t, res.HandoffErr)

	require.Equal(t, GuestUserID, res.Order.UserID)
	require.Equal(t, GuestName, res.Order.CustomerName)
	require.Equal(t, orders.StatusProcessing, res.Order.Status)
	require.InDelta(t, 75.72, res.Order.Total, 0.0001)
	require.Len(t, res.Order.Items, 2)

	require.True(t, strings.HasPrefix(res.Link, "https://wa.me/"+phone+"?text="))
	require.Contains(t, res.Message, "*Customer:* Customer")
	require.Contains(t, res.Message, "*Total Amount:* Rs.75.72")

	require.Empty(t, f.cart.Items())
	restored := cart.NewController(f.store)
	require.NoError(t, restored.Load(ctx))
	require.Empty(t, restored.Items(), "mirror must be cleared too")

	require.Len(t, f.channel.got, 1)
	require.Equal(t, res.Order.ID, f.channel.got[0].OrderID)

	stored, err := f.orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestCheckout_UsesSessionUserAndSavedAddress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u, err := f.sessions.Login(ctx, "9876543210", "", "")
	require.NoError(t, err)
	saved := addr
	_, err = f.sessions.UpdateProfile(ctx, session.Patch{Address: &saved})
	require.NoError(t, err)
	f.add(t, "P-1005", 1) // 129, ships free

	res, err := f.o.Checkout(ctx, Request{PaymentMethod: orders.PaymentUPI})
	require.NoError(t, err)
	require.Equal(t, u.ID, res.Order.UserID)
	require.Equal(t, "User 3210", res.Order.CustomerName)
	require.Equal(t, "9876543210", res.Order.CustomerMobile)
	require.Equal(t, addr, res.Order.ShippingAddress)
	require.InDelta(t, 129.0, res.Order.Total, 0.0001)
}

func TestBegin_ValidationRejectsBeforePersisting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := addr

	_, err := f.o.Begin(ctx, Request{ShippingAddress: &a, PaymentMethod: orders.PaymentCOD})
	require.ErrorIs(t, err, ErrValidation, "empty cart")

	f.add(t, "P-1003", 1)

	_, err = f.o.Begin(ctx, Request{PaymentMethod: orders.PaymentCOD})
	require.ErrorIs(t, err, ErrValidation, "guest without address")

	partial := orders.Address{Street: "1 Main", City: "Goa"}
	_, err = f.o.Begin(ctx, Request{ShippingAddress: &partial, PaymentMethod: orders.PaymentCOD})
	require.ErrorIs(t, err, ErrValidation, "incomplete address")

	_, err = f.o.Begin(ctx, Request{ShippingAddress: &a})
	require.ErrorIs(t, err, ErrValidation, "missing payment method")

	_, err = f.o.Begin(ctx, Request{ShippingAddress: &a, PaymentMethod: "Cheque"})
	require.ErrorIs(t, err, ErrValidation, "unknown payment method")

	require.Equal(t, 0, f.backend.SaveCalls(store.Orders))
	require.Len(t, f.cart.Items(), 1)
}

func TestConfirm_PersistenceFailureLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "P-1001", 3)
	f.add(t, "P-1004", 1)
	before := f.cart.Items()

	a := addr
	att, err := f.o.Begin(ctx, Request{ShippingAddress: &a, PaymentMethod: orders.PaymentCard})
	require.NoError(t, err)
	require.Equal(t, StateConfirming, att.State())

	f.backend.FailSaves(store.Orders, true)
	_, err = f.o.Confirm(ctx, att)
	require.ErrorIs(t, err, store.ErrPersistence)
	require.Equal(t, StateFailed, att.State())
	require.Error(t, att.Err())

	require.Equal(t, before, f.cart.Items())
	restored := cart.NewController(f.store)
	require.NoError(t, restored.Load(ctx))
	require.Equal(t, before, restored.Items())
	require.Empty(t, f.channel.got)

	f.backend.FailSaves(store.Orders, false)
	list, err := f.orders.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestConfirm_HandoffFailureKeepsOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.channel.fail = errors.New("queue down")
	f.add(t, "P-1002", 1)

	a := addr
	res, err := f.o.Checkout(ctx, Request{ShippingAddress: &a, PaymentMethod: orders.PaymentCOD})
	require.NoError(t, err)
	require.Error(t, res.HandoffErr)
	require.NotEmpty(t, res.Link)
	require.Empty(t, f.cart.Items())

	_, err = f.orders.Get(ctx, res.Order.ID)
	require.NoError(t, err)
}

func TestAttempt_StateTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "P-1006", 1)
	a := addr

	att, err := f.o.Begin(ctx, Request{ShippingAddress: &a, PaymentMethod: orders.PaymentCOD})
	require.NoError(t, err)
	require.NoError(t, f.o.Cancel(att))
	require.Equal(t, StateIdle, att.State())

	_, err = f.o.Confirm(ctx, att)
	require.ErrorIs(t, err, ErrInvalidState)
	require.ErrorIs(t, f.o.Cancel(att), ErrInvalidState)
	require.Len(t, f.cart.Items(), 1, "cancel keeps the cart")

	att, err = f.o.Begin(ctx, Request{ShippingAddress: &a, PaymentMethod: orders.PaymentCOD})
	require.NoError(t, err)
	_, err = f.o.Confirm(ctx, att)
	require.NoError(t, err)
	require.Equal(t, StateCompleted, att.State())

	_, err = f.o.Confirm(ctx, att)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestConfirm_KeepsLinesAddedWhileConfirming(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "P-1001", 1)

	a := addr
	att, err := f.o.Begin(ctx, Request{ShippingAddress: &a, PaymentMethod: orders.PaymentCOD})
	require.NoError(t, err)

	f.add(t, "P-1006", 1)
	f.add(t, "P-1001", 1)

	res, err := f.o.Confirm(ctx, att)
	require.NoError(t, err)
	require.Len(t, res.Order.Items, 1)
	require.Equal(t, 1, res.Order.Items[0].Quantity)

	left := f.cart.Items()
	require.Len(t, left, 2, "lines not in the order stay in the cart")
	require.Equal(t, "P-1001", left[0].ID)
	require.Equal(t, 1, left[0].Quantity)
	require.Equal(t, "P-1006", left[1].ID)
	require.Equal(t, 1, left[1].Quantity)

	restored := cart.NewController(f.store)
	require.NoError(t, restored.Load(ctx))
	require.Equal(t, left, restored.Items())
}
