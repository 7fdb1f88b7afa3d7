package coffeeshopserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ApiHandleFunctions groups the per-resource handler sets wired into the router.
type ApiHandleFunctions struct {
	AuthAPI     AuthAPI
	UserAPI     UserAPI
	CategoryAPI CategoryAPI
	ProductAPI  ProductAPI
	OrderAPI    OrderAPI
}

// NewRouter builds the gin engine with CORS, the versioned API surface, and
// the auth middleware guarding protected routes. Extra middleware (tracing,
// request logging) runs ahead of every route.
func NewRouter(handlers ApiHandleFunctions, auth *AuthMiddleware, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(corsConfig()))
	router.Use(middleware...)

	router.GET("/", welcome)
	router.GET("/health", health)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", handlers.AuthAPI.Register)
	v1.POST("/auth/login", handlers.AuthAPI.Login)

	v1.GET("/categories", handlers.CategoryAPI.ListCategories)
	v1.GET("/categories/:categoryId", handlers.CategoryAPI.GetCategory)
	v1.GET("/products", handlers.ProductAPI.ListProducts)
	v1.GET("/products/:productId", handlers.ProductAPI.GetProduct)

	authed := v1.Group("", auth.Authenticate())
	{
		authed.POST("/auth/logout", handlers.AuthAPI.Logout)
		authed.GET("/users/me", handlers.UserAPI.GetCurrentUser)
		authed.PUT("/users/me", handlers.UserAPI.UpdateCurrentUser)

		authed.POST("/orders", handlers.OrderAPI.CreateOrder)
		authed.GET("/orders", handlers.OrderAPI.ListOrders)
		authed.GET("/orders/:orderId", handlers.OrderAPI.GetOrder)
		authed.PUT("/orders/:orderId", handlers.OrderAPI.UpdateOrder)
		authed.POST("/orders/:orderId/cancel", handlers.OrderAPI.CancelOrder)
	}

	admin := v1.Group("", auth.Authenticate(), auth.RequireAdmin())
	{
		admin.GET("/users", handlers.UserAPI.ListUsers)
		admin.GET("/users/:userId", handlers.UserAPI.GetUser)
		admin.DELETE("/users/:userId", handlers.UserAPI.DeleteUser)

		admin.POST("/categories", handlers.CategoryAPI.CreateCategory)
		admin.PUT("/categories/:categoryId", handlers.CategoryAPI.UpdateCategory)
		admin.DELETE("/categories/:categoryId", handlers.CategoryAPI.DeleteCategory)

		admin.POST("/products", handlers.ProductAPI.CreateProduct)
		admin.PUT("/products/:productId", handlers.ProductAPI.UpdateProduct)
		admin.DELETE("/products/:productId", handlers.ProductAPI.DeleteProduct)

		admin.DELETE("/orders/:orderId", handlers.OrderAPI.DeleteOrder)
	}

	return router
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	return config
}

func welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Coffee Shop API",
		"docs":    "/api/v1",
	})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
