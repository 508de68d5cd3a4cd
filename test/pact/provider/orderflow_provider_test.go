//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	inventoryclient "github.com/goshop/orderflow/internal/clients/http/inventory"
	ordersmemory "github.com/goshop/orderflow/internal/domains/orders/adapters/memory"
	ordersresilience "github.com/goshop/orderflow/internal/domains/orders/adapters/resilience"
	ordersapp "github.com/goshop/orderflow/internal/domains/orders/application"
	"github.com/goshop/orderflow/internal/domains/orders/domain"
	"github.com/goshop/orderflow/internal/domains/orders/ports"
	orderserver "github.com/goshop/orderflow/server"
	pacttest "github.com/goshop/orderflow/test/pact"
)

func TestOrderflowProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetOrders()
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetOrders()
			if setup {
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetOrders()
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetOrders()
			return nil
		},
	})
	require.NoError(t, err)
}

// swappableRepo lets state handlers reset persistence between interactions
// while the HTTP server and service wiring stay up.
type swappableRepo struct {
	mu    sync.RWMutex
	inner ports.Repository
}

func newSwappableRepo() *swappableRepo {
	return &swappableRepo{inner: ordersmemory.NewRepository()}
}

func (r *swappableRepo) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inner = ordersmemory.NewRepository()
}

func (r *swappableRepo) current() ports.Repository {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inner
}

func (r *swappableRepo) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	return r.current().Save(ctx, order)
}

func (r *swappableRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.current().GetByID(ctx, id)
}

func (r *swappableRepo) List(ctx context.Context) ([]*domain.Order, error) {
	return r.current().List(ctx)
}

type contractProviderApp struct {
	repo   *swappableRepo
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	// Stub inventory upstream so PlaceOrder interactions validate and commit.
	inventorySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/reduce") {
			fmt.Fprint(w, `{"status":"OK"}`)
			return
		}
		fmt.Fprint(w, `{"price":9.99,"stock":100}`)
	}))
	t.Cleanup(inventorySrv.Close)

	inventory, err := inventoryclient.NewClient(inventorySrv.URL, inventorySrv.Client())
	require.NoError(t, err)

	repo := newSwappableRepo()
	service := ordersresilience.New(ordersapp.NewService(repo, inventory), repo, ordersresilience.DefaultConfig())
	handlers := orderserver.ApiHandleFunctions{OrderAPI: orderserver.NewOrderAPI(service, nil)}
	server := httptest.NewServer(orderserver.NewRouter(handlers))
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   repo,
		server: server,
	}
}

func (a *contractProviderApp) resetOrders() {
	a.repo.reset()
}

func (a *contractProviderApp) seedOrder(t testing.TB, id int64) {
	t.Helper()
	order, err := domain.NewPlacedOrder(pacttest.ExampleUserID, []domain.OrderLine{
		{ProductID: pacttest.InStockProductID, Quantity: 2, UnitPrice: 9.99},
	}, time.Now().UTC())
	require.NoError(t, err)
	order.ID = id
	_, err = a.repo.Save(context.Background(), order)
	require.NoError(t, err)
}
