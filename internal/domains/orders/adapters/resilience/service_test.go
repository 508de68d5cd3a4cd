package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/require"

	ordersmemory "github.com/goshop/orderflow/internal/domains/orders/adapters/memory"
	"github.com/goshop/orderflow/internal/domains/orders/application"
	"github.com/goshop/orderflow/internal/domains/orders/application/types"
	"github.com/goshop/orderflow/internal/domains/orders/domain"
	"github.com/goshop/orderflow/internal/domains/orders/ports"
)

type scriptedService struct {
	repo  ports.Repository
	err   error
	calls int
}

func (s *scriptedService) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	lines := make([]domain.OrderLine, 0, len(input.Items))
	for _, item := range input.Items {
		lines = append(lines, domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: 9.99})
	}
	order, err := domain.NewPlacedOrder(input.UserID, lines, time.Now())
	if err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, order)
}

func (s *scriptedService) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *scriptedService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MinRequests = 3
	cfg.OpenTimeout = 50 * time.Millisecond
	return cfg
}

func placeInput() types.PlaceOrderInput {
	return types.PlaceOrderInput{
		UserID: 42,
		Items:  []types.LineItemInput{{ProductID: 7, Quantity: 2}},
	}
}

func TestPlaceOrder_PassThroughOnSuccess(t *testing.T) {
	repo := ordersmemory.NewRepository()
	inner := &scriptedService{repo: repo}
	svc := New(inner, repo, testConfig())

	order, err := svc.PlaceOrder(context.Background(), placeInput())

	require.NoError(t, err)
	require.Equal(t, domain.StatusPlaced, order.Status)
	require.Equal(t, gobreaker.StateClosed, svc.State())
}

func TestPlaceOrder_ClassifiedFailurePersistsFailedOrder(t *testing.T) {
	repo := ordersmemory.NewRepository()
	inner := &scriptedService{repo: repo, err: application.ErrInsufficientStock}
	svc := New(inner, repo, testConfig())

	order, err := svc.PlaceOrder(context.Background(), placeInput())

	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, order.Status)
	require.Zero(t, order.TotalAmount)
	require.Len(t, order.Lines, 1)
	require.Equal(t, int64(7), order.Lines[0].ProductID)
	require.Equal(t, int32(2), order.Lines[0].Quantity)
	require.Zero(t, order.Lines[0].UnitPrice)

	stored, getErr := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, getErr)
	require.Equal(t, domain.StatusFailed, stored.Status)
}

func TestPlaceOrder_UnclassifiedErrorPropagates(t *testing.T) {
	repo := ordersmemory.NewRepository()
	boom := errors.New("repository exploded")
	inner := &scriptedService{repo: repo, err: boom}
	svc := New(inner, repo, testConfig())

	_, err := svc.PlaceOrder(context.Background(), placeInput())

	require.ErrorIs(t, err, boom)
	orders, listErr := repo.List(context.Background())
	require.NoError(t, listErr)
	require.Empty(t, orders)
}

func TestPlaceOrder_BreakerOpensAndShortCircuits(t *testing.T) {
	repo := ordersmemory.NewRepository()
	inner := &scriptedService{repo: repo, err: application.ErrInventoryUnavailable}
	svc := New(inner, repo, testConfig())

	for i := 0; i < 3; i++ {
		order, err := svc.PlaceOrder(context.Background(), placeInput())
		require.NoError(t, err)
		require.Equal(t, domain.StatusFailed, order.Status)
	}
	require.Equal(t, gobreaker.StateOpen, svc.State())
	callsWhenOpened := inner.calls

	// While open the inner service is never invoked; the fallback still
	// produces a FAILED order for every request.
	order, err := svc.PlaceOrder(context.Background(), placeInput())
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, order.Status)
	require.Equal(t, callsWhenOpened, inner.calls)
}

func TestPlaceOrder_BreakerRecoversAfterCooldown(t *testing.T) {
	repo := ordersmemory.NewRepository()
	inner := &scriptedService{repo: repo, err: application.ErrInventoryUnavailable}
	svc := New(inner, repo, testConfig())

	for i := 0; i < 3; i++ {
		_, err := svc.PlaceOrder(context.Background(), placeInput())
		require.NoError(t, err)
	}
	require.Equal(t, gobreaker.StateOpen, svc.State())

	inner.err = nil
	time.Sleep(60 * time.Millisecond)

	order, err := svc.PlaceOrder(context.Background(), placeInput())
	require.NoError(t, err)
	require.Equal(t, domain.StatusPlaced, order.Status)
	require.Equal(t, gobreaker.StateClosed, svc.State())
}

func TestReadPathsAreNotGuarded(t *testing.T) {
	repo := ordersmemory.NewRepository()
	inner := &scriptedService{repo: repo}
	svc := New(inner, repo, testConfig())

	placed, err := svc.PlaceOrder(context.Background(), placeInput())
	require.NoError(t, err)

	got, err := svc.GetOrderByID(context.Background(), placed.ID)
	require.NoError(t, err)
	require.Equal(t, placed.ID, got.ID)

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
}
