package stats

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/products"
	"github.com/imrishuroy/quickstore/internal/reviews"
	"github.com/imrishuroy/quickstore/internal/store"
	"github.com/imrishuroy/quickstore/internal/tickets"
)

type fixture struct {
	products *products.Repository
	orders   *orders.Repository
	reviews  *reviews.Repository
	tickets  *tickets.Repository
	agg      *Aggregator
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), nil)
	require.NoError(t, s.Initialize(context.Background(), store.Seed{Collection: store.Products, Value: []products.Product{}}))
	ids := store.SequentialIDs()
	f := fixture{
		products: products.NewRepository(s, ids),
		orders:   orders.NewRepository(s, ids),
		tickets:  tickets.NewRepository(s, ids),
	}
	f.reviews = reviews.NewRepository(s, f.orders, ids)
	f.agg = NewAggregator(f.products, f.orders, f.reviews, f.tickets)
	return f
}

func (f fixture) order(t *testing.T, userID string, p products.Product, total float64) {
	t.Helper()
	_, err := f.orders.Create(context.Background(), orders.Draft{
		UserID:          userID,
		CustomerName:    "c",
		Items:           []orders.Item{{Product: p, Quantity: 1}},
		Total:           total,
		PaymentMethod:   orders.PaymentCOD,
		ShippingAddress: orders.Address{Street: "s", City: "c", State: "st", Pincode: "1"},
	})
	require.NoError(t, err)
}

func TestCompute_Empty(t *testing.T) {
	f := newFixture(t)
	d, err := f.agg.Compute(context.Background())
	require.NoError(t, err)
	require.Equal(t, Dashboard{}, d)
}

func TestCompute_TracksCollections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	lamp, err := f.products.Create(ctx, products.NewProduct{Name: "Lamp", Price: 40, Stock: 9})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, products.NewProduct{Name: "Rug", Price: 120, Stock: 10})
	require.NoError(t, err)

	f.order(t, "U-1", lamp, 49.99)
	f.order(t, "U-2", lamp, 0.02)

	open, err := f.tickets.Create(ctx, tickets.NewTicket{Subject: "a", Message: "a"})
	require.NoError(t, err)
	closed, err := f.tickets.Create(ctx, tickets.NewTicket{Subject: "b", Message: "b"})
	require.NoError(t, err)
	_, err = f.tickets.UpdateStatus(ctx, closed.ID, tickets.StatusClosed)
	require.NoError(t, err)
	_, err = f.tickets.UpdateStatus(ctx, open.ID, tickets.StatusInProgress)
	require.NoError(t, err)

	_, err = f.reviews.Create(ctx, reviews.NewReview{ProductID: lamp.ID, UserID: "U-1", Rating: 5})
	require.NoError(t, err)

	d, err := f.agg.Compute(ctx)
	require.NoError(t, err)
	require.Equal(t, Dashboard{
		TotalOrders:      2,
		TotalRevenue:     50.01,
		ActiveProducts:   2,
		LowStockCount:    1,
		OpenTicketsCount: 1,
		TotalReviews:     1,
	}, d)

	// no caching: a later change shows up on the next call
	require.NoError(t, f.products.Delete(ctx, lamp.ID))
	d, err = f.agg.Compute(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, d.ActiveProducts)
	require.Equal(t, 0, d.LowStockCount)
}

type mockCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.inputs = append(m.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestReporter_Publish(t *testing.T) {
	mock := &mockCloudWatch{}
	r := NewReporter(mock, "")

	err := r.Publish(context.Background(), Dashboard{TotalOrders: 3, TotalRevenue: 12.5, OpenTicketsCount: 1})
	require.NoError(t, err)
	require.Len(t, mock.inputs, 1)

	in := mock.inputs[0]
	require.Equal(t, DefaultNamespace, *in.Namespace)
	require.Len(t, in.MetricData, 6)
	got := map[string]float64{}
	for _, d := range in.MetricData {
		got[*d.MetricName] = *d.Value
	}
	require.Equal(t, 3.0, got["TotalOrders"])
	require.Equal(t, 12.5, got["TotalRevenue"])
	require.Equal(t, 1.0, got["OpenTicketsCount"])
}
