package http

import (
	"net/http"
	"time"

	intconfig "shop-backend/internal/config"
	"shop-backend/internal/domain"
	"shop-backend/internal/http/handlers"
	"shop-backend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. All JSON endpoints live under
// /api, static files are served from the public directory.
func NewRouter(env intconfig.Env) *gin.Engine {
	handlers.Configure(env)

	r := gin.New()
	_ = r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-CSRF-Token", "X-XSRF-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.ServeStatic(env.StaticDir))

	secret := []byte(env.JWTSecret)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(env.RateLimitRPS, env.RateLimitBurst))
	api.Use(middleware.CSRFProtection())

	api.GET("/health", handlers.Health)
	api.GET("/db-check", handlers.DBCheck)

	auth := api.Group("/auth")
	{
		// Login and register carry a tighter bucket than the rest of the API.
		loginLimit := middleware.RateLimit(0.2, 10)
		auth.POST("/login", loginLimit, handlers.Login)
		auth.POST("/register", loginLimit, handlers.Register)
		auth.GET("/token", handlers.RefreshAccessToken)
		auth.GET("/csrf", middleware.IssueCSRFToken)
		auth.GET("/logout", middleware.Auth(secret), handlers.Logout)
		auth.GET("/user", middleware.Auth(secret), handlers.GetCurrentUser)
		auth.PATCH("/user", middleware.Auth(secret), handlers.UpdateCurrentUser)
	}

	customers := api.Group("/customers", middleware.Auth(secret), middleware.RequireRoles(domain.RoleAdmin))
	{
		customers.GET("", handlers.GetCustomers)
		customers.GET("/:id", handlers.GetCustomerByID)
		customers.PATCH("/:id", handlers.UpdateCustomer)
		customers.DELETE("/:id", handlers.DeleteCustomer)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", middleware.Auth(secret), handlers.CreateOrder)
		orders.GET("/me", middleware.Auth(secret), handlers.GetMyOrders)
		orders.GET("/me/:number", middleware.Auth(secret), handlers.GetMyOrderByNumber)
		orders.GET("/me/:number/invoice", middleware.Auth(secret), handlers.OrderInvoice)

		admin := orders.Group("", middleware.Auth(secret), middleware.RequireRoles(domain.RoleAdmin))
		admin.GET("", handlers.GetOrders)
		admin.GET("/:number", handlers.GetOrderByNumber)
		admin.PATCH("/:number", handlers.UpdateOrder)
		admin.DELETE("/:id", handlers.DeleteOrder)
	}

	products := api.Group("/products")
	{
		products.GET("", handlers.GetProducts)

		admin := products.Group("", middleware.Auth(secret), middleware.RequireRoles(domain.RoleAdmin))
		admin.POST("", handlers.CreateProduct)
		admin.PATCH("/:id", handlers.UpdateProduct)
		admin.DELETE("/:id", handlers.DeleteProduct)
	}

	api.POST("/upload", middleware.Auth(secret), middleware.RequireRoles(domain.RoleAdmin), handlers.UploadImage)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}
