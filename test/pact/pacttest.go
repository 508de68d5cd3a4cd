//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Contract roles. The order API sits in the middle: it is the provider of the
// storefront contract and the consumer of the inventory-service contract.
const (
	ProviderName = "orderflow-api"
	ConsumerName = "order-portal"

	InventoryProviderName = "inventory-service"
	InventoryConsumerName = "orderflow-api"
)

const (
	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order with id 301 exists"
	StateOrderMissing   = "no order with id 999"

	StateProductInStock = "product 5 is in stock"
	StateProductMissing = "no product with id 404"
)

const (
	ExistingOrderID int64 = 301
	MissingOrderID  int64 = 999

	InStockProductID int64 = 5
	MissingProductID int64 = 404

	ExampleUserID int64 = 42
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the order portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// InventoryPactFile returns the pact file path for the inventory contract.
func InventoryPactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), InventoryConsumerName+"-"+InventoryProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePlaceOrderPayload provides stable request data for order interactions.
func ExamplePlaceOrderPayload() map[string]any {
	return map[string]any{
		"userId": ExampleUserID,
		"items": []map[string]any{
			{"productId": InStockProductID, "quantity": 2},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
