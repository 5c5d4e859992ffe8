// Package stats derives the admin dashboard numbers from the repositories.
package stats

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/products"
	"github.com/imrishuroy/quickstore/internal/reviews"
	"github.com/imrishuroy/quickstore/internal/tickets"
)

// Dashboard is the aggregate shown on the admin dashboard.
type Dashboard struct {
	TotalOrders      int     `json:"totalOrders"`
	TotalRevenue     float64 `json:"totalRevenue"`
	ActiveProducts   int     `json:"activeProducts"`
	LowStockCount    int     `json:"lowStockCount"`
	OpenTicketsCount int     `json:"openTicketsCount"`
	TotalReviews     int     `json:"totalReviews"`
}

type productLister interface {
	List(ctx context.Context) ([]products.Product, error)
}

type orderLister interface {
	List(ctx context.Context) ([]orders.Order, error)
}

type reviewLister interface {
	List(ctx context.Context, productID string) ([]reviews.Review, error)
}

type ticketLister interface {
	List(ctx context.Context) ([]tickets.Ticket, error)
}

// Aggregator recomputes Dashboard from the collections on every call.
type Aggregator struct {
	products productLister
	orders   orderLister
	reviews  reviewLister
	tickets  ticketLister
}

// NewAggregator wires the repositories the dashboard reads from.
func NewAggregator(p productLister, o orderLister, r reviewLister, t ticketLister) *Aggregator {
	return &Aggregator{products: p, orders: o, reviews: r, tickets: t}
}

// Compute reads every collection and returns the current aggregate. Nothing is cached.
func (a *Aggregator) Compute(ctx context.Context) (Dashboard, error) {
	ps, err := a.products.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	ords, err := a.orders.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	rs, err := a.reviews.List(ctx, "")
	if err != nil {
		return Dashboard{}, err
	}
	ts, err := a.tickets.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		TotalOrders:    len(ords),
		ActiveProducts: len(ps),
		TotalReviews:   len(rs),
	}
	revenue := decimal.Zero
	for _, o := range ords {
		revenue = revenue.Add(decimal.NewFromFloat(o.Total))
	}
	d.TotalRevenue = revenue.Round(2).InexactFloat64()
	for _, p := range ps {
		if p.LowStock() {
			d.LowStockCount++
		}
	}
	for _, t := range ts {
		if t.Status != tickets.StatusClosed {
			d.OpenTicketsCount++
		}
	}
	return d, nil
}
