package router

import (
	"venue_manager/handler"
	"venue_manager/middleware"
	"venue_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	// Public catalog
	venues := v1.Group("/venues", logger.New(), middleware.OptionalJWT())
	venues.Get("/", handler.GetVenues)
	venues.Get("/slug/:slug", handler.GetVenueDetailBySlug)
	venues.Get("/:venueId", validate.GetById("venueId"), handler.GetVenueDetail)

	// Staff console
	staff := v1.Group("/staff", logger.New())
	staff.Get("/venues", middleware.Protected(), handler.GetStaffVenues)
	staff.Post("/venues", middleware.Protected(), validate.CreateVenue(), handler.CreateVenue)
	staff.Put("/venues/:venueId", middleware.Protected(), validate.EditVenue("venueId"), handler.EditVenue)
	staff.Delete("/venues/:venueId", middleware.Protected(), validate.DeleteVenue("venueId"), handler.DeleteVenue)

	staff.Get("/amenities", middleware.Protected(), handler.GetAmenities)
	staff.Post("/amenities", middleware.Protected(), validate.CreateAmenity(), handler.CreateAmenity)
	staff.Post("/amenities/delete", middleware.Protected(), validate.Delete(), handler.DeleteAmenities)
	staff.Put("/amenities/:amenityId", middleware.Protected(), validate.EditAmenity("amenityId"), handler.EditAmenity)
	staff.Delete("/amenities/:amenityId", middleware.Protected(), validate.DeleteAmenity("amenityId"), handler.DeleteAmenity)

	// Accounts
	users := v1.Group("/users", logger.New())
	users.Post("/register", validate.RegisterUser(), handler.RegisterUser)
	users.Get("/me", middleware.Protected(), handler.Me)
	users.Get("/dashboard", middleware.Protected(), handler.Dashboard)
	users.Post("/change-password", middleware.Protected(), validate.ChangePassword(), handler.ChangePassword)
	users.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	users.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	// Reservations
	reservations := v1.Group("/reservations", logger.New())
	reservations.Post("/", middleware.Protected(), validate.CreateReservation(), handler.CreateReservation)
	reservations.Post("/:code/cancel", middleware.Protected(), handler.CancelReservation)
	reservations.Get("/:code/qr", middleware.Protected(), handler.GetReservationQR)
}
