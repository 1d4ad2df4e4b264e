package routes

import (
	"net/http"

	"krib/handlers"
	"krib/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all route groups onto the engine.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterHealthRoute(r)
	RegisterWidgetRoutes(r, hb)
	RegisterContractorRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Krib"})
	})
}

// RegisterWidgetRoutes registers the public booking widget endpoints.
// These are anonymous: the widget is embedded on contractor websites.
func RegisterWidgetRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/widget")
	{
		api.GET("/contractors/:contractorID/config", hb.Settings.GetWidgetConfig)
		api.GET("/contractors/:contractorID/availability", hb.Widget.GetAvailability)
		api.POST("/contractors/:contractorID/session", hb.Widget.StartSession)

		api.GET("/session/:sessionID", hb.Widget.GetSession)
		api.POST("/session/:sessionID/service", hb.Widget.SelectService)
		api.POST("/session/:sessionID/date", hb.Widget.SelectDate)
		api.POST("/session/:sessionID/time", hb.Widget.SelectTime)
		api.POST("/session/:sessionID/back", hb.Widget.GoBack)
		api.POST("/session/:sessionID/book", hb.Widget.SubmitBooking)
		api.DELETE("/session/:sessionID", hb.Widget.CancelSession)
	}
}

// RegisterContractorRoutes registers the JWT-protected contractor admin
// endpoints (widget settings and booking history).
func RegisterContractorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contractor")
	{
		api.Use(middleware.JWTAuthContractorMiddleware())
		api.GET("/settings", hb.Settings.GetSettings)
		api.PUT("/settings", hb.Settings.UpdateSettings)
		api.GET("/bookings", hb.Bookings.ListBookings)
		api.GET("/bookings/:id", hb.Bookings.GetBooking)
	}
}
