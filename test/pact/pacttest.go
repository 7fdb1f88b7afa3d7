//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "coffeeshop-api"
	ConsumerName = "coffee-storefront"

	StateMenuBaseline   = "menu baseline"
	StateProductExists  = "product with id 101 exists"
	StateProductMissing = "no product with id 404"
	StateMenuSeeded     = "menu categories seeded"
)

const (
	ExistingProductID  int64 = 101
	MissingProductID   int64 = 404
	ExistingCategoryID int64 = 11
)

const (
	exampleProductName  = "Pact House Latte"
	exampleProductPrice = "4.50"
	exampleCategoryName = "Pact Coffee"
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

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
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

// ExampleProductPayload provides stable test data for product interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":            ExistingProductID,
		"name":          exampleProductName,
		"price":         exampleProductPrice,
		"isAvailable":   true,
		"stockQuantity": 25,
		"categoryId":    ExistingCategoryID,
	}
}

// ExampleCategoryPayload provides stable test data for category interactions.
func ExampleCategoryPayload() map[string]any {
	return map[string]any{
		"id":   ExistingCategoryID,
		"name": exampleCategoryName,
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
