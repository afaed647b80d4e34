package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/tilemart/storefront-backend/internal/clients/redis"
	"github.com/tilemart/storefront-backend/internal/data/repos/catalog"
	"github.com/tilemart/storefront-backend/internal/data/repos/lists"
	"github.com/tilemart/storefront-backend/internal/data/repos/user"
	httpx "github.com/tilemart/storefront-backend/internal/http"
	httpH "github.com/tilemart/storefront-backend/internal/http/handlers"
	httpMW "github.com/tilemart/storefront-backend/internal/http/middleware"
	"github.com/tilemart/storefront-backend/internal/pkg/logger"
	"github.com/tilemart/storefront-backend/internal/services"
)

type Repos struct {
	User      user.UserRepo
	UserToken user.UserTokenRepo
	Product   catalog.ProductRepo
	List      lists.ListRepo
}

type Services struct {
	Auth    services.AuthService
	Catalog services.CatalogService
	Cart    services.CartService
	Project services.ProjectService
}

type Handlers struct {
	Health  *httpH.HealthHandler
	Auth    *httpH.AuthHandler
	Catalog *httpH.CatalogHandler
	Cart    *httpH.CartHandler
	Project *httpH.ProjectHandler
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      user.NewUserRepo(db, log),
		UserToken: user.NewUserTokenRepo(db, log),
		Product:   catalog.NewProductRepo(db, log),
		List:      lists.NewListRepo(db, log),
	}
}

// wireCartStore prefers the durable redis store; without REDIS_ADDR the app
// still boots with an in-memory store and carts stop surviving restarts.
func wireCartStore(log *logger.Logger) services.CartStore {
	if os.Getenv("REDIS_ADDR") == "" {
		log.Warn("REDIS_ADDR not set, carts will not survive restarts")
		return services.NewMemoryCartStore()
	}
	store, err := redisclient.NewCartStore(log)
	if err != nil {
		log.Warn("Could not init redis cart store, falling back to memory", "error", err)
		return services.NewMemoryCartStore()
	}
	return store
}

func wireServices(log *logger.Logger, cfg Config, repos Repos, cartStore services.CartStore) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:    services.NewAuthService(log, repos.User, repos.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Catalog: services.NewCatalogService(log, repos.Product),
		Cart:    services.NewCartService(log, cartStore, repos.Product),
		Project: services.NewProjectService(log, repos.List, repos.Product, cartStore),
	}
}

func wireHandlers(svcs Services) Handlers {
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Auth:    httpH.NewAuthHandler(svcs.Auth),
		Catalog: httpH.NewCatalogHandler(svcs.Catalog),
		Cart:    httpH.NewCartHandler(svcs.Cart),
		Project: httpH.NewProjectHandler(svcs.Project),
	}
}

func wireMiddleware(log *logger.Logger, svcs Services) Middleware {
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, svcs.Auth),
	}
}

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return httpx.NewRouter(httpx.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.Auth,
		HealthHandler:  handlers.Health,
		AuthHandler:    handlers.Auth,
		CatalogHandler: handlers.Catalog,
		CartHandler:    handlers.Cart,
		ProjectHandler: handlers.Project,
	})
}
