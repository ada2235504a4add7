package routes

import (
	"gymslot/handlers"
	"gymslot/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking core.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler, gh *handlers.GymHandler) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthUserMiddleware())
	{
		api.POST("/bookings", bh.CreateBooking)
		api.GET("/bookings", bh.ListBookings)
		api.POST("/bookings/:id/order", bh.RetryPaymentOrder)
		api.POST("/bookings/:id/payment", bh.ConfirmPayment)
		api.POST("/bookings/:id/cancel", bh.CancelBooking)
		api.GET("/bookings/:id/qr", bh.GetQRCode)
		api.POST("/bookings/:id/checkin", bh.CheckIn)

		api.GET("/gyms/:id", gh.GetGym)
	}
}
