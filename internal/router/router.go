package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/ekinsu/learnhub/internal/handler" // import the handlers that implement business logic
)

// Middlewares carries the prebuilt middleware chain pieces the route groups
// need. Building them once in main keeps their dependencies (Redis client,
// user repository, config) out of this package. All fields must be non-nil
// except Cache; the constructors return pass-through middleware when their
// backing service is disabled or unavailable.
type Middlewares struct {
	Auth      echo.MiddlewareFunc // JWT bearer verification
	AdminOnly echo.MiddlewareFunc // role gate on top of Auth
	Cache     echo.MiddlewareFunc // Redis read-through cache for public GETs
	RateLimit echo.MiddlewareFunc // Redis token bucket; placed after Auth so buckets key per user
}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check, which
// stays unthrottled so probes never see a 429.
func RegisterRoutes(e *echo.Echo) {
	// This endpoint is used by load balancers and monitoring systems to
	// verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes under /v1/auth. The
// profile endpoint carries the JWT middleware on the route itself; the
// rate limiter always comes after it so authenticated buckets key on the
// user id instead of the shared guest dimension.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, mw Middlewares) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register, mw.RateLimit)
	g.POST("/login", a.Login, mw.RateLimit)
	g.GET("/me", a.Me, mw.Auth, mw.RateLimit)
}

// RegisterContent registers the content catalog routes. Reads are public
// and cached; mutations require an authenticated admin.
func RegisterContent(e *echo.Echo, h *handler.ContentHandler, mw Middlewares) {
	pub := e.Group("/v1/content", mw.RateLimit)
	if mw.Cache != nil {
		pub.Use(mw.Cache)
	}
	pub.GET("", h.List)
	pub.GET("/:id", h.GetByID)

	admin := e.Group("/v1/content", mw.Auth, mw.AdminOnly, mw.RateLimit)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// RegisterEngagement registers the authenticated engagement surface:
// interaction recording, recommendations and the personal insights view.
func RegisterEngagement(e *echo.Echo, ih *handler.InteractionHandler, rh *handler.RecommendationHandler, sh *handler.InsightsHandler, mw Middlewares) {
	auth := e.Group("/v1", mw.Auth, mw.RateLimit)
	auth.POST("/content/:id/interact", ih.Record)
	auth.GET("/recommendations", rh.Recommend)
	auth.GET("/user-insights", sh.Summary)
	auth.GET("/user-insights/activity", sh.Activity)
}

// RegisterChatbot registers the support chatbot. The bot answers from a
// static keyword table and is usable without an account.
func RegisterChatbot(e *echo.Echo, ch *handler.ChatbotHandler, mw Middlewares) {
	e.POST("/v1/chatbot", ch.Ask, mw.RateLimit)
}
