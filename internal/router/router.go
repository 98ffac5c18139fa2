package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing

	"github.com/iliyamo/sneaker-store/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/sneaker-store/internal/middleware" // JWT, role, cache middleware
	"github.com/iliyamo/sneaker-store/internal/model"      // role enumeration
)

// Deps bundles everything the route table needs: the handlers, the JWT
// secret used to build the auth middleware and the (possibly
// pass-through) response cache middleware for public catalog reads.
type Deps struct {
	Auth     *handler.AuthHandler
	Sneakers *handler.SneakerHandler
	Orders   *handler.OrderHandler
	Secret   string
	Cache    echo.MiddlewareFunc
}

// Register wires the full route table onto the provided Echo instance.
//
// Authorization policy, resolved once instead of per revision: catalog
// reads are public, catalog mutations and statistics are admin-only,
// the report is open to any authenticated user, order creation and
// lookup require authentication, and order listing, status updates,
// customer search and revenue are admin-only.
func Register(e *echo.Echo, d Deps) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	jwt := middleware.JWTAuth(d.Secret)
	admin := middleware.RequireRole(model.RoleAdmin)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleUser)
	cache := d.Cache
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	// Authentication endpoints do not require an existing session.
	auth := e.Group("/api/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)

	api := e.Group("/api")
	api.GET("/me", d.Auth.Me, jwt, anyRole)

	// Public catalog reads go through the response cache.  The static
	// routes are registered alongside /:id; Echo resolves static
	// segments before parameters, so /search never binds as an id.
	api.GET("/sneakers", d.Sneakers.List, cache)
	api.GET("/sneakers/instock", d.Sneakers.ListInStock, cache)
	api.GET("/sneakers/search", d.Sneakers.Search, cache)
	api.GET("/sneakers/:id", d.Sneakers.Get, cache)

	// Reporting: the inventory report is open to any authenticated
	// user, the per-brand statistics only to administrators.  Neither
	// is cached; they must not be served across identities.
	api.GET("/sneakers/report", d.Sneakers.Report, jwt, anyRole)
	api.GET("/sneakers/statistics", d.Sneakers.Statistics, jwt, admin)

	// Catalog mutations are admin-only.
	api.POST("/sneakers", d.Sneakers.Create, jwt, admin)
	api.PUT("/sneakers/:id", d.Sneakers.Update, jwt, admin)
	api.DELETE("/sneakers/:id", d.Sneakers.Delete, jwt, admin)

	// Orders: placing and fetching a single order is open to any
	// authenticated user; everything else is administrative.
	api.POST("/orders", d.Orders.Create, jwt, anyRole)
	api.GET("/orders/:id", d.Orders.Get, jwt, anyRole)
	api.GET("/orders", d.Orders.List, jwt, admin)
	api.GET("/orders/revenue", d.Orders.Revenue, jwt, admin)
	api.GET("/orders/customer/:email", d.Orders.ListByCustomer, jwt, admin)
	api.PUT("/orders/:id/status", d.Orders.UpdateStatus, jwt, admin)
}
