package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RegisterReservations wires the booking API under /v1. Everything
// here requires a valid access token; per-route role middleware
// separates staff-only operations from those either role may call.
// Ownership scoping below the role check happens in the repository
// guards, not here.
func RegisterReservations(
	e *echo.Echo,
	jwtSecret string,
	av *handler.AvailabilityHandler,
	rs *handler.ReservationHandler,
	cl *handler.ClientHandler,
	pay *handler.PaymentHandler,
) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	// Catalog and availability. Both roles may browse; availability is
	// recomputed from reservation state on every call.
	g.GET("/rooms", av.ListRooms)
	g.GET("/availability", av.Search)

	// Reservation lifecycle. Both roles share the endpoints; customers
	// are restricted to their own reservations by the guard scope, and
	// confirming is refused to customers inside SetStatus.
	g.GET("/reservations", rs.List)
	g.POST("/reservations", rs.Create)
	g.PATCH("/reservations/:id/status", rs.SetStatus)
	g.PATCH("/reservations/:id/dates", rs.Reschedule)
	g.DELETE("/reservations/:id", rs.Delete)

	// Staff-only surfaces: the guest registry and payment records.
	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/clients", cl.Search)
	admin.POST("/clients", cl.Create)
	admin.DELETE("/clients/:id", cl.Delete)
	admin.POST("/reservations/:id/payments", pay.Create)
	admin.GET("/reservations/:id/payments", pay.List)
}
