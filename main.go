package main

import (
	"log"

	"venue_manager/database"
	"venue_manager/helper"
	"venue_manager/router"
	"venue_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // venue galleries upload several images per request
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	utils.InitWeatherCache()

	helper.StartReservationSweeper()
	defer helper.StopReservationSweeper()
	helper.StartReservationStatusScheduler()

	router.SetupRoutes(app)
	utils.SetupMapsRoutes(app)

	log.Fatal(app.Listen(":8002"))
}
