// Package app wires the repositories, cart and checkout over one Store and
// adds the operations that depend on who is logged in.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/quickstore/internal/cart"
	"github.com/imrishuroy/quickstore/internal/checkout"
	"github.com/imrishuroy/quickstore/internal/favorites"
	"github.com/imrishuroy/quickstore/internal/handoff"
	"github.com/imrishuroy/quickstore/internal/idempotency"
	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/products"
	"github.com/imrishuroy/quickstore/internal/reviews"
	"github.com/imrishuroy/quickstore/internal/session"
	"github.com/imrishuroy/quickstore/internal/stats"
	"github.com/imrishuroy/quickstore/internal/store"
	"github.com/imrishuroy/quickstore/internal/tickets"
	"github.com/imrishuroy/quickstore/internal/validation"
)

// Config groups what New needs. Zero values pick in-memory defaults.
type Config struct {
	Backend        store.Backend
	Validator      *validatorv10.Validate
	Channel        handoff.Channel
	BusinessPhone  string
	IdempotencyTTL time.Duration
	NewID          store.IDFunc
}

// App is the storefront: every repository plus cart and checkout.
type App struct {
	Store       *store.Store
	Validator   *validatorv10.Validate
	Products    *products.Repository
	Orders      *orders.Repository
	Reviews     *reviews.Repository
	Tickets     *tickets.Repository
	Favorites   *favorites.Repository
	Session     *session.Repository
	Cart        *cart.Controller
	Checkout    *checkout.Orchestrator
	Stats       *stats.Aggregator
	Idempotency *idempotency.Store

	phone string
}

// New seeds any missing collections, restores the cart mirror and returns the App.
func New(ctx context.Context, cfg Config) (*App, error) {
	if cfg.Backend == nil {
		cfg.Backend = store.NewMemoryBackend()
	}
	if cfg.Validator == nil {
		cfg.Validator = validation.New()
	}
	if cfg.NewID == nil {
		cfg.NewID = store.NewID
	}

	s := store.New(cfg.Backend, cfg.Validator)
	err := s.Initialize(ctx,
		store.Seed{Collection: store.Products, Value: products.DefaultCatalog()},
		store.Seed{Collection: store.Favorites, Value: []string{}},
		store.Seed{Collection: store.Orders, Value: []orders.Order{}},
		store.Seed{Collection: store.Reviews, Value: []reviews.Review{}},
		store.Seed{Collection: store.Tickets, Value: []tickets.Ticket{}},
	)
	if err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	a := &App{
		Store:       s,
		Validator:   cfg.Validator,
		Products:    products.NewRepository(s, cfg.NewID),
		Orders:      orders.NewRepository(s, cfg.NewID),
		Tickets:     tickets.NewRepository(s, cfg.NewID),
		Favorites:   favorites.NewRepository(s),
		Session:     session.NewRepository(s, cfg.NewID),
		Cart:        cart.NewController(s),
		Idempotency: idempotency.NewStore(s, cfg.IdempotencyTTL),
		phone:       cfg.BusinessPhone,
	}
	a.Reviews = reviews.NewRepository(s, a.Orders, cfg.NewID)
	a.Stats = stats.NewAggregator(a.Products, a.Orders, a.Reviews, a.Tickets)
	a.Checkout = checkout.New(a.Cart, a.Orders, a.Session, cfg.Channel, cfg.BusinessPhone)

	if err := a.Cart.Load(ctx); err != nil {
		return nil, fmt.Errorf("restore cart: %w", err)
	}
	log.Printf("[app] ready cart_items=%d", a.Cart.Count())
	return a, nil
}

// AddToCart looks up productID and adds it to the cart.
func (a *App) AddToCart(ctx context.Context, productID string) (cart.Change, error) {
	p, err := a.Products.Get(ctx, productID)
	if err != nil {
		return cart.Change{}, err
	}
	return a.Cart.Add(ctx, p)
}

// FavoriteMessage is the notification shown after a toggle.
func FavoriteMessage(added bool) string {
	if added {
		return "Added to Wishlist"
	}
	return "Removed from Wishlist"
}

// ToggleFavorite flips productID in the wishlist and reports whether it is now present.
func (a *App) ToggleFavorite(ctx context.Context, productID string) ([]string, bool, error) {
	ids, err := a.Favorites.Toggle(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	for _, id := range ids {
		if id == productID {
			return ids, true, nil
		}
	}
	return ids, false, nil
}

// MyOrders returns the current user's orders, or every order when all is set.
func (a *App) MyOrders(ctx context.Context, all bool) ([]orders.Order, error) {
	if all {
		return a.Orders.List(ctx)
	}
	u, err := a.Session.Require(ctx)
	if err != nil {
		return nil, err
	}
	return a.Orders.ListByUser(ctx, u.ID)
}

// CanReview is false for guests.
func (a *App) CanReview(ctx context.Context, productID string) (bool, error) {
	u, err := a.Session.Current(ctx)
	if err != nil || u == nil {
		return false, err
	}
	return a.Reviews.CanReview(ctx, u.ID, productID)
}

// CreateReview posts a review as the current user.
func (a *App) CreateReview(ctx context.Context, productID string, rating int, comment string) (reviews.Review, error) {
	u, err := a.Session.Require(ctx)
	if err != nil {
		return reviews.Review{}, err
	}
	return a.Reviews.Create(ctx, reviews.NewReview{
		ProductID: productID,
		UserID:    u.ID,
		UserName:  u.Name,
		Rating:    rating,
		Comment:   comment,
	})
}

// MyTickets returns the current user's tickets, or every ticket when all is set.
func (a *App) MyTickets(ctx context.Context, all bool) ([]tickets.Ticket, error) {
	if all {
		return a.Tickets.List(ctx)
	}
	u, err := a.Session.Require(ctx)
	if err != nil {
		return nil, err
	}
	return a.Tickets.ListByUser(ctx, u.ID)
}

// OpenTicket files a support ticket. Guests are recorded with the checkout guest placeholders.
func (a *App) OpenTicket(ctx context.Context, subject, message string) (tickets.Ticket, error) {
	u, err := a.Session.Current(ctx)
	if err != nil {
		return tickets.Ticket{}, err
	}
	nt := tickets.NewTicket{
		UserID:       checkout.GuestUserID,
		CustomerName: checkout.GuestName,
		Subject:      subject,
		Message:      message,
	}
	if u != nil {
		nt.UserID, nt.CustomerName, nt.CustomerMobile = u.ID, u.Name, u.Mobile
	}
	return a.Tickets.Create(ctx, nt)
}

// SupportLink builds the WhatsApp support link for the current user.
func (a *App) SupportLink(ctx context.Context, subject string) (string, error) {
	u, err := a.Session.Current(ctx)
	if err != nil {
		return "", err
	}
	return handoff.SupportLink(a.phone, subject, u), nil
}
