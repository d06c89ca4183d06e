package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/itstudent003/yoyebot/internal/handler"    // handlers implementing the webhook and operator endpoints
	"github.com/itstudent003/yoyebot/internal/middleware" // middleware for JWT authentication on operator routes
)

// RegisterRoutes wires all routes on the provided Echo instance.  The LINE
// webhook endpoints are unauthenticated (LINE validates deliveries on its
// side); the operator endpoints under /api require a bearer JWT and pass
// through the rate limiter.
func RegisterRoutes(e *echo.Echo, wh *handler.WebhookHandler, ph *handler.PushHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	// Liveness probes: one for load balancers, one visible from the LINE
	// console's "verify" button.
	e.GET("/healthz", handler.Health)
	e.GET("/api/webhook", handler.WebhookStatus)

	// Inbound LINE events.  Must always answer 200 quickly, so no
	// middleware sits in front of it.
	e.POST("/api/webhook", wh.Webhook)

	// Operator endpoints: rate limited, then authenticated.
	ops := e.Group("/api")
	ops.Use(rateLimit)
	ops.Use(middleware.JWTAuth(jwtSecret))
	ops.POST("/push-line", ph.PushMessage)
}
