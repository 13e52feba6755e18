package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"venue_manager/constants"
	"venue_manager/database"
	"venue_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newReservation(t *testing.T, client model.User, venue model.Venue, status string, createdAt time.Time) model.Reservation {
	t.Helper()

	reservation := model.Reservation{
		PublicCode: fmt.Sprintf("RSV-%08d", createdAt.UnixNano()%100000000),
		ClientId:   client.ID,
		VenueId:    venue.ID,
		EventDate:  timeInFuture(),
		Guests:     2,
		Status:     status,
	}
	reservation.CreatedAt = createdAt
	require.NoError(t, database.DB.Create(&reservation).Error)
	return reservation
}

func reservationPayload(venueId uint, eventDate time.Time, extra string) *strings.Reader {
	body := fmt.Sprintf(`{"venueId": %d, "eventDate": %q%s}`, venueId, eventDate.Format(time.RFC3339), extra)
	return strings.NewReader(body)
}

func TestCreateReservationRequiresAuth(t *testing.T) {
	app := setupApp(t)
	venue := createVenue(t, "Salón Central", "", true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/", reservationPayload(venue.ID, timeInFuture(), ""))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var count int64
	database.DB.Model(&model.Reservation{}).Count(&count)
	require.Zero(t, count)
}

func TestCreateReservationAsClient(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Central", "", true)

	eventDate := time.Now().AddDate(0, 1, 0).Truncate(time.Second)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/",
		reservationPayload(venue.ID, eventDate, `, "guests": 80, "notes": "Boda"`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, client))

	resp, payload := doRequest(t, app, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := dataOf(t, payload).(map[string]interface{})
	code := data["publicCode"].(string)
	require.True(t, strings.HasPrefix(code, "RSV-"))
	require.Len(t, code, len("RSV-")+8)
	require.Equal(t, constants.RESERVATION_PENDING, data["status"])
	require.Equal(t, float64(80), data["guests"])

	var stored model.Reservation
	require.NoError(t, database.DB.Where("public_code = ?", code).First(&stored).Error)
	require.Equal(t, client.ID, stored.ClientId)
	require.Equal(t, venue.ID, stored.VenueId)
	require.Equal(t, "Boda", stored.Notes)
}

func TestCreateReservationDefaultsToOneGuest(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Central", "", true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/", reservationPayload(venue.ID, timeInFuture(), ""))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, client))

	resp, payload := doRequest(t, app, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := dataOf(t, payload).(map[string]interface{})
	require.Equal(t, float64(1), data["guests"])
}

func TestCreateReservationRejectsPastDate(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Central", "", true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/", reservationPayload(venue.ID, timeInPast(), ""))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, client))

	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	database.DB.Model(&model.Reservation{}).Count(&count)
	require.Zero(t, count)
}

func TestCreateReservationRejectsInactiveVenue(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Cerrado", "", false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/", reservationPayload(venue.ID, timeInFuture(), ""))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, client))

	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateReservationUnknownVenue(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/", reservationPayload(9999, timeInFuture(), ""))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, client))

	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCancelReservationByOwner(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Central", "", true)
	reservation := newReservation(t, client, venue, constants.RESERVATION_PENDING, time.Now())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+reservation.PublicCode+"/cancel", nil)
	req.Header.Set("Authorization", bearerToken(t, client))
	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored model.Reservation
	require.NoError(t, database.DB.First(&stored, reservation.ID).Error)
	require.Equal(t, constants.RESERVATION_CANCELLED, stored.Status)
}

func TestCancelReservationNotOwner(t *testing.T) {
	app := setupApp(t)
	owner := createUser(t, "cliente1", constants.ROLE_CLIENT)
	intruder := createUser(t, "cliente2", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Central", "", true)
	reservation := newReservation(t, owner, venue, constants.RESERVATION_CONFIRMED, time.Now())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+reservation.PublicCode+"/cancel", nil)
	req.Header.Set("Authorization", bearerToken(t, intruder))
	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var stored model.Reservation
	require.NoError(t, database.DB.First(&stored, reservation.ID).Error)
	require.Equal(t, constants.RESERVATION_CONFIRMED, stored.Status)
}

func TestCancelReservationAlreadyFinalized(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Central", "", true)

	for i, status := range []string{constants.RESERVATION_CANCELLED, constants.RESERVATION_COMPLETED} {
		reservation := newReservation(t, client, venue, status, time.Now().Add(time.Duration(i)*time.Minute))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/"+reservation.PublicCode+"/cancel", nil)
		req.Header.Set("Authorization", bearerToken(t, client))
		resp, _ := doRequest(t, app, req)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestCancelReservationNotFound(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/RSV-nadie123/cancel", nil)
	req.Header.Set("Authorization", bearerToken(t, client))
	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDashboardListsOwnReservationsNewestFirst(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)
	other := createUser(t, "cliente2", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Central", "", true)
	require.NoError(t, database.DB.Create(&model.VenueImage{VenueId: venue.ID, Url: "https://img.test/portada.jpg"}).Error)

	older := newReservation(t, client, venue, constants.RESERVATION_CONFIRMED, time.Now().Add(-2*time.Hour))
	newer := newReservation(t, client, venue, constants.RESERVATION_PENDING, time.Now().Add(-1*time.Hour))
	newReservation(t, other, venue, constants.RESERVATION_PENDING, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/dashboard", nil)
	req.Header.Set("Authorization", bearerToken(t, client))
	resp, payload := doRequest(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	rows := dataOf(t, payload).([]interface{})
	require.Len(t, rows, 2)

	first := rows[0].(map[string]interface{})
	second := rows[1].(map[string]interface{})
	require.Equal(t, newer.PublicCode, first["reservationCode"])
	require.Equal(t, older.PublicCode, second["reservationCode"])

	require.Equal(t, "Salón Central", first["venueName"])
	require.Equal(t, venue.Slug, first["venueSlug"])
	require.Equal(t, "https://img.test/portada.jpg", first["venueImage"])
	require.Equal(t, newer.EventDate.Format("02/01/2006"), first["eventDate"])
	require.True(t, strings.HasPrefix(first["qrCode"].(string), "data:image/png;base64,"))
}

func TestDashboardEmptyForNewClient(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/dashboard", nil)
	req.Header.Set("Authorization", bearerToken(t, client))
	resp, payload := doRequest(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Empty(t, dataOf(t, payload))
}

func TestGetReservationQR(t *testing.T) {
	app := setupApp(t)
	client := createUser(t, "cliente1", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Central", "", true)
	reservation := newReservation(t, client, venue, constants.RESERVATION_PENDING, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+reservation.PublicCode+"/qr", nil)
	req.Header.Set("Authorization", bearerToken(t, client))
	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestGetReservationQRNotOwner(t *testing.T) {
	app := setupApp(t)
	owner := createUser(t, "cliente1", constants.ROLE_CLIENT)
	intruder := createUser(t, "cliente2", constants.ROLE_CLIENT)
	venue := createVenue(t, "Salón Central", "", true)
	reservation := newReservation(t, owner, venue, constants.RESERVATION_PENDING, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+reservation.PublicCode+"/qr", nil)
	req.Header.Set("Authorization", bearerToken(t, intruder))
	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
