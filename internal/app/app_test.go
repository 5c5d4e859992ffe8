package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/quickstore/internal/checkout"
	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/products"
	"github.com/imrishuroy/quickstore/internal/reviews"
	"github.com/imrishuroy/quickstore/internal/session"
	"github.com/imrishuroy/quickstore/internal/store"
)

func newApp(t *testing.T, b store.Backend) *App {
	t.Helper()
	a, err := New(context.Background(), Config{Backend: b, BusinessPhone: "919876543210", NewID: store.SequentialIDs()})
	require.NoError(t, err)
	return a
}

func TestNew_SeedsOnlyMissingCollections(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemoryBackend()
	a := newApp(t, b)

	list, err := a.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(products.DefaultCatalog()))

	require.NoError(t, a.Products.Delete(ctx, "P-1001"))
	_, err = a.AddToCart(ctx, "P-1002")
	require.NoError(t, err)

	again := newApp(t, b)
	list, err = again.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(products.DefaultCatalog())-1, "existing data must not be reseeded")
	require.Equal(t, 1, again.Cart.Count(), "cart mirror restored on start")
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	a := newApp(t, nil)
	_, err := a.AddToCart(context.Background(), "P-404")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	a := newApp(t, nil)

	ids, added, err := a.ToggleFavorite(ctx, "P-1003")
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, []string{"P-1003"}, ids)
	require.Equal(t, "Added to Wishlist", FavoriteMessage(added))

	ids, added, err = a.ToggleFavorite(ctx, "P-1003")
	require.NoError(t, err)
	require.False(t, added)
	require.Empty(t, ids)
	require.Equal(t, "Removed from Wishlist", FavoriteMessage(added))
}

func TestReviewFlow_RequiresLoginAndPurchase(t *testing.T) {
	ctx := context.Background()
	a := newApp(t, nil)

	ok, err := a.CanReview(ctx, "P-1006")
	require.NoError(t, err)
	require.False(t, ok, "guests cannot review")
	_, err = a.CreateReview(ctx, "P-1006", 5, "great")
	require.ErrorIs(t, err, session.ErrUnauthenticated)

	_, err = a.Session.Login(ctx, "9123456789", "Tara", "")
	require.NoError(t, err)
	_, err = a.CreateReview(ctx, "P-1006", 5, "great")
	require.ErrorIs(t, err, reviews.ErrNotEligible)

	_, err = a.AddToCart(ctx, "P-1006")
	require.NoError(t, err)
	addr := orders.Address{Street: "2 Hill Rd", City: "Mumbai", State: "MH", Pincode: "400050"}
	_, err = a.Checkout.Checkout(ctx, checkout.Request{ShippingAddress: &addr, PaymentMethod: orders.PaymentCOD})
	require.NoError(t, err)

	ok, err = a.CanReview(ctx, "P-1006")
	require.NoError(t, err)
	require.True(t, ok)
	rv, err := a.CreateReview(ctx, "P-1006", 4, "nice picture")
	require.NoError(t, err)
	require.Equal(t, "Tara", rv.UserName)

	mine, err := a.MyOrders(ctx, false)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestOpenTicket_GuestAndUser(t *testing.T) {
	ctx := context.Background()
	a := newApp(t, nil)

	tk, err := a.OpenTicket(ctx, "Late delivery", "Where is my order?")
	require.NoError(t, err)
	require.Equal(t, checkout.GuestUserID, tk.UserID)

	_, err = a.MyTickets(ctx, false)
	require.ErrorIs(t, err, session.ErrUnauthenticated)

	u, err := a.Session.Login(ctx, "9000000001", "", "")
	require.NoError(t, err)
	tk, err = a.OpenTicket(ctx, "Refund", "Item damaged")
	require.NoError(t, err)
	require.Equal(t, u.ID, tk.UserID)
	require.Equal(t, "User 0001", tk.CustomerName)

	mine, err := a.MyTickets(ctx, false)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	all, err := a.MyTickets(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSupportLink(t *testing.T) {
	ctx := context.Background()
	a := newApp(t, nil)

	link, err := a.SupportLink(ctx, "Order help")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	require.Contains(t, link, "Not%20logged%20in")
}
