package coffeeshopserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	catalogmemory "github.com/beandock/coffeeshop-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/beandock/coffeeshop-api/internal/domains/catalog/application"
	catalogdomain "github.com/beandock/coffeeshop-api/internal/domains/catalog/domain"
	ordermapper "github.com/beandock/coffeeshop-api/internal/domains/orders/adapters/http/mapper"
	ordersmemory "github.com/beandock/coffeeshop-api/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/beandock/coffeeshop-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/beandock/coffeeshop-api/internal/domains/orders/application"
	usermapper "github.com/beandock/coffeeshop-api/internal/domains/users/adapters/http/mapper"
	usersmemory "github.com/beandock/coffeeshop-api/internal/domains/users/adapters/memory"
	usersapp "github.com/beandock/coffeeshop-api/internal/domains/users/application"
	usersdomain "github.com/beandock/coffeeshop-api/internal/domains/users/domain"
)

type testEnv struct {
	router  *gin.Engine
	users   *usersmemory.Repository
	catalog *catalogapp.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	usersRepo := usersmemory.NewRepository()
	sessions := usersmemory.NewSessionStore()
	usersService := usersapp.NewService(usersRepo, sessions, usersapp.WithBcryptCost(bcrypt.MinCost))

	categories := catalogmemory.NewCategoryRepository()
	products := catalogmemory.NewProductRepository()
	catalogService := catalogapp.NewService(categories, products)

	orderService := ordersapp.NewService(ordersmemory.NewRepository(products))

	handlers := ApiHandleFunctions{
		AuthAPI:     NewAuthAPI(usersService),
		UserAPI:     NewUserAPI(usersService),
		CategoryAPI: NewCategoryAPI(catalogService),
		ProductAPI:  NewProductAPI(catalogService),
		OrderAPI:    NewOrderAPI(orderService, ordersworkflows.NewInlineOrderWorkflows(orderService)),
	}
	router := NewRouter(handlers, NewAuthMiddleware(usersService))

	return &testEnv{router: router, users: usersRepo, catalog: catalogService}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates a regular user through the API and returns its token.
func (e *testEnv) registerAndLogin(t *testing.T, email, username string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"username": username,
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return decode[usermapper.LoginResponse](t, rec).Token
}

// loginAsAdmin seeds an admin directly in the repository and logs in.
func (e *testEnv) loginAsAdmin(t *testing.T) string {
	t.Helper()
	admin, err := usersdomain.NewUser("admin@example.com", "admin", "adminsecret", bcrypt.MinCost)
	require.NoError(t, err)
	admin.IsAdmin = true
	_, err = e.users.Save(context.Background(), admin)
	require.NoError(t, err)

	rec := e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "adminsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return decode[usermapper.LoginResponse](t, rec).Token
}

func (e *testEnv) seedProduct(t *testing.T, name, price string, stock int32) *catalogdomain.Product {
	t.Helper()
	ctx := context.Background()
	category, err := catalogdomain.NewCategory("Coffee "+name, "", "")
	require.NoError(t, err)
	category, err = e.catalog.CreateCategory(ctx, category)
	require.NoError(t, err)

	product, err := catalogdomain.NewProduct(name, "", decimal.RequireFromString(price), "", true, stock, category.ID)
	require.NoError(t, err)
	product, err = e.catalog.CreateProduct(ctx, product)
	require.NoError(t, err)
	return product
}

func orderPayload(productID int64, quantity int32) gin.H {
	return gin.H{
		"deliveryAddress": "12 Bean Street",
		"phone":           "+15550100",
		"items":           []gin.H{{"productId": productID, "quantity": quantity}},
	}
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "anna@example.com",
		"username": "anna",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[usermapper.User](t, rec)
	require.True(t, created.IsActive)
	require.False(t, created.IsAdmin)
	require.NotContains(t, rec.Body.String(), "sup3rsecret")

	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "anna@example.com",
		"username": "other",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "anna@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "anna@example.com",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[usermapper.LoginResponse](t, rec)
	require.Equal(t, "bearer", login.TokenType)
	require.NotEmpty(t, login.Token)

	rec = env.do(t, http.MethodGet, "/api/v1/users/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "anna", decode[usermapper.User](t, rec).Username)

	rec = env.do(t, http.MethodGet, "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/v1/users/me", "bogus-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/logout", login.Token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/v1/users/me", login.Token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_FieldValidationProblem(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "anna@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"/problems/validation-error"`)
	require.Contains(t, body, `"Username":"failed required validation"`)
	require.Contains(t, body, `"Password":"failed required validation"`)
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Latte", "4.50", 10)
	token := env.registerAndLogin(t, "anna@example.com", "anna")

	rec := env.do(t, http.MethodPost, "/api/v1/orders", token, orderPayload(product.ID, 2))
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[ordermapper.Order](t, rec)
	require.Equal(t, "pending", order.Status)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("9.00")))
	require.Len(t, order.Items, 1)
	require.True(t, order.Items[0].Price.Equal(product.Price))

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"stockQuantity":8`)
}

func TestCreateOrder_Rejections(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Espresso", "3.00", 1)
	token := env.registerAndLogin(t, "anna@example.com", "anna")

	rec := env.do(t, http.MethodPost, "/api/v1/orders", token, orderPayload(product.ID, 5))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"/problems/out-of-stock"`)

	rec = env.do(t, http.MethodPost, "/api/v1/orders", token, orderPayload(9999, 1))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/orders", token, gin.H{
		"deliveryAddress": "12 Bean Street",
		"phone":           "+15550100",
		"items":           []gin.H{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/orders", "", orderPayload(product.ID, 1))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Mocha", "5.00", 6)
	token := env.registerAndLogin(t, "anna@example.com", "anna")

	rec := env.do(t, http.MethodPost, "/api/v1/orders", token, orderPayload(product.ID, 4))
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[ordermapper.Order](t, rec)

	cancelPath := fmt.Sprintf("/api/v1/orders/%d/cancel", order.ID)
	rec = env.do(t, http.MethodPost, cancelPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "cancelled", decode[ordermapper.Order](t, rec).Status)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", product.ID), "", nil)
	require.Contains(t, rec.Body.String(), `"stockQuantity":6`)

	// already cancelled
	rec = env.do(t, http.MethodPost, cancelPath, token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderOwnership(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Flat White", "4.00", 10)
	owner := env.registerAndLogin(t, "anna@example.com", "anna")
	intruder := env.registerAndLogin(t, "bob@example.com", "bob")
	admin := env.loginAsAdmin(t)

	rec := env.do(t, http.MethodPost, "/api/v1/orders", owner, orderPayload(product.ID, 1))
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[ordermapper.Order](t, rec)
	orderPath := fmt.Sprintf("/api/v1/orders/%d", order.ID)

	rec = env.do(t, http.MethodGet, orderPath, intruder, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodPost, orderPath+"/cancel", intruder, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, orderPath, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// owners cannot flip status
	rec = env.do(t, http.MethodPut, orderPath, owner, gin.H{"status": "delivered"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodPut, orderPath, admin, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "confirmed", decode[ordermapper.Order](t, rec).Status)

	// non-admins only see their own orders
	rec = env.do(t, http.MethodGet, "/api/v1/orders", intruder, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", rec.Body.String())
}

func TestAdminGates(t *testing.T) {
	env := newTestEnv(t)
	customer := env.registerAndLogin(t, "anna@example.com", "anna")
	admin := env.loginAsAdmin(t)

	categoryBody := gin.H{"name": "Seasonal"}
	rec := env.do(t, http.MethodPost, "/api/v1/categories", customer, categoryBody)
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/v1/users", customer, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/categories", admin, categoryBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/v1/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
