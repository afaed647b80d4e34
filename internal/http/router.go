package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/tilemart/storefront-backend/internal/http/handlers"
	httpMW "github.com/tilemart/storefront-backend/internal/http/middleware"
	"github.com/tilemart/storefront-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler  *httpH.HealthHandler
	AuthHandler    *httpH.AuthHandler
	CatalogHandler *httpH.CatalogHandler
	CartHandler    *httpH.CartHandler
	ProjectHandler *httpH.ProjectHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.CORS())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Catalog (public reads)
		if cfg.CatalogHandler != nil {
			api.GET("/products", cfg.CatalogHandler.ListProducts)
			api.GET("/products/:id", cfg.CatalogHandler.GetProduct)
		}

		// Cart (session-scoped, anonymous allowed)
		if cfg.CartHandler != nil {
			api.GET("/cart", cfg.CartHandler.GetCart)
			api.POST("/cart/items", cfg.CartHandler.AddItem)
			api.PATCH("/cart/items/:productId", cfg.CartHandler.UpdateItem)
			api.DELETE("/cart/items/:productId", cfg.CartHandler.RemoveItem)
			api.DELETE("/cart", cfg.CartHandler.ClearCart)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Projects (saved lists)
		if cfg.ProjectHandler != nil {
			protected.POST("/projects", cfg.ProjectHandler.ConvertCart)
			protected.GET("/projects", cfg.ProjectHandler.ListProjects)
			protected.GET("/projects/:id", cfg.ProjectHandler.GetProject)
			protected.GET("/projects/:id/summary", cfg.ProjectHandler.OrderSummary)
			protected.DELETE("/projects/:id", cfg.ProjectHandler.DeleteProject)
		}

		// Catalog admin
		if cfg.CatalogHandler != nil {
			protected.POST("/products", cfg.CatalogHandler.CreateProduct)
			protected.DELETE("/products/:id", cfg.CatalogHandler.DeleteProduct)
		}
	}

	return r
}
