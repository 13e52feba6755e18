package utils

import (
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/gofiber/fiber/v2"
)

// SetupMapsRoutes exposes the maps provider to the frontend: the browser key
// for client-side rendering plus a small geocoding proxy so the key never
// has to be embedded per-request.
func SetupMapsRoutes(app *fiber.App) {
	app.Get("/api/maps/config", func(c *fiber.Ctx) error {
		apiKey := os.Getenv("MAPS_API_KEY")
		if apiKey == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "MAPS_API_KEY not set"})
		}
		return c.JSON(fiber.Map{"apiKey": apiKey})
	})

	app.Get("/api/maps/geocode", func(c *fiber.Ctx) error {
		address := c.Query("address")
		if address == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "address parameter required"})
		}

		apiKey := os.Getenv("MAPS_API_KEY")
		if apiKey == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "MAPS_API_KEY not set"})
		}

		geocodeURL := "https://maps.googleapis.com/maps/api/geocode/json?key=" + apiKey + "&address=" + url.QueryEscape(address)

		resp, err := http.Get(geocodeURL)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "cannot reach geocoding service"})
		}
		defer resp.Body.Close()

		bodyBytes, _ := io.ReadAll(resp.Body)

		c.Status(resp.StatusCode)
		c.Set("Content-Type", "application/json")
		return c.Send(bodyBytes)
	})
}
