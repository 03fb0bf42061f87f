package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/gate-pass-service/internal/auth"
	"github.com/iliyamo/gate-pass-service/internal/config"
	"github.com/iliyamo/gate-pass-service/internal/handler"
	"github.com/iliyamo/gate-pass-service/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers and
// monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Login is the only
// unauthenticated operation in the whole API; registration requires an
// admin or superadmin token and the actor's own role further restricts
// which role may be minted (enforced inside the handler).
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)

	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	g.GET("/me", a.Me)
	g.POST("/auth/register", a.Register, middleware.RequireOp(auth.OpRegisterAccount))
}

// RegisterVehicles registers the vehicle endpoints under /v1/vehicles. All
// of them require a valid token; the capability table decides the rest:
// search is open to every authenticated role (a guard at the gate is the
// primary caller), create/list need admin or superadmin, delete is
// superadmin only. Search responses are cached in Redis for a short TTL.
func RegisterVehicles(e *echo.Echo, v *handler.VehicleHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1/vehicles", middleware.JWTAuth(jwtSecret))

	g.POST("", v.Create, middleware.RequireOp(auth.OpCreateVehicle))
	g.GET("", v.List, middleware.RequireOp(auth.OpListVehicles))
	g.GET("/search", v.Search,
		middleware.RequireOp(auth.OpSearchVehicle),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	g.DELETE("/:id", v.Delete, middleware.RequireOp(auth.OpDeleteVehicle))
}
