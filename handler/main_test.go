package handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"venue_manager/database"
	"venue_manager/helper"
	"venue_manager/model"
	"venue_manager/router"
	"venue_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	router.SetupRoutes(app)
	return app
}

func createUser(t *testing.T, username, role string) model.User {
	t.Helper()

	hash, err := helper.HashPassword("secret123")
	require.NoError(t, err)

	user := model.User{
		Username: username,
		Password: hash,
		Email:    username + "@test.local",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func bearerToken(t *testing.T, user model.User) string {
	t.Helper()

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func createVenue(t *testing.T, name, description string, active bool, amenities ...model.Amenity) model.Venue {
	t.Helper()

	venue := model.Venue{
		Slug:        helper.GenerateUniqueVenueSlug(database.DB, name),
		Name:        name,
		Description: description,
		IsActive:    utils.Ptr(active),
		Amenities:   amenities,
	}
	require.NoError(t, database.DB.Create(&venue).Error)
	return venue
}

func createAmenity(t *testing.T, name string) model.Amenity {
	t.Helper()

	amenity := model.Amenity{Name: name}
	require.NoError(t, database.DB.Create(&amenity).Error)
	return amenity
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	if len(raw) > 0 && strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}

func dataOf(t *testing.T, body map[string]interface{}) interface{} {
	t.Helper()
	require.Contains(t, body, "data")
	return body["data"]
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func timeInFuture() time.Time {
	return time.Now().Add(1 * time.Hour)
}

func timeInPast() time.Time {
	return time.Now().Add(-1 * time.Hour)
}
