package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"

	"venue_manager/constants"
	"venue_manager/database"
	"venue_manager/helper"
	"venue_manager/model"
	"venue_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateReservation(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateReservation").(model.CreateReservationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	claim, _, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
	}

	db := database.DB
	var venue model.Venue
	if err := db.First(&venue, input.VenueId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VENUE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if venue.IsActive == nil || !*venue.IsActive {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "El espacio no admite reservas", errors.New("venue inactive"))
	}

	guests := input.Guests
	if guests == 0 {
		guests = 1
	}

	reservation := model.Reservation{
		PublicCode: "RSV-" + uuid.New().String()[:8],
		ClientId:   claim.UserId,
		VenueId:    venue.ID,
		EventDate:  input.EventDate,
		Guests:     guests,
		Status:     constants.RESERVATION_PENDING,
		Notes:      input.Notes,
	}

	if err := db.Create(&reservation).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	var client model.User
	if err := db.First(&client, claim.UserId).Error; err == nil {
		utils.SendReservationConfirmationEmail(client.Email, utils.ReservationConfirmationData{
			ReservationCode: reservation.PublicCode,
			VenueName:       venue.Name,
			EventDate:       reservation.EventDate,
			Guests:          reservation.Guests,
			DetailLink:      fmt.Sprintf("%s/reservas/%s", os.Getenv("APP_BASE_URL"), reservation.PublicCode),
		})
	}

	reservation.Venue = venue
	return utils.SuccessResponse(c, fiber.StatusCreated, reservation)
}

// Dashboard lists the caller's reservations, most recent first, each with a
// QR of its public code.
func Dashboard(c *fiber.Ctx) error {
	claim, _, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
	}

	var reservations []model.Reservation
	if err := database.DB.
		Preload("Venue").
		Preload("Venue.Images", orderImagesByPosition).
		Where("client_id = ?", claim.UserId).
		Order("created_at desc").
		Find(&reservations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "No se pudieron cargar las reservas", err)
	}

	response := []map[string]interface{}{}

	for _, reservation := range reservations {
		qrBase64 := ""
		qrBytes, err := utils.GenerateQRCode(reservation.PublicCode, 400)
		if err != nil {
			log.Printf("failed to build QR for reservation %s: %v", reservation.PublicCode, err)
		} else {
			qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
		}

		imageUrl := ""
		if len(reservation.Venue.Images) > 0 {
			imageUrl = reservation.Venue.Images[0].Url
		}

		response = append(response, map[string]interface{}{
			"reservationCode": reservation.PublicCode,
			"venueName":       reservation.Venue.Name,
			"venueSlug":       reservation.Venue.Slug,
			"venueImage":      imageUrl,
			"eventDate":       reservation.EventDate.Format("02/01/2006"),
			"guests":          reservation.Guests,
			"status":          reservation.Status,
			"createdAt":       reservation.CreatedAt.Format("02/01/2006 15:04"),
			"qrCode":          qrBase64,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func CancelReservation(c *fiber.Ctx) error {
	claim, _, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
	}

	code := c.Params("code")
	db := database.DB

	var reservation model.Reservation
	if err := db.Where("public_code = ?", code).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RESERVATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if reservation.ClientId != claim.UserId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "La reserva pertenece a otro usuario", errors.New("not owner"))
	}

	if reservation.Status != constants.RESERVATION_PENDING && reservation.Status != constants.RESERVATION_CONFIRMED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "La reserva no se puede cancelar", errors.New("invalid status"))
	}

	if err := db.Model(&reservation).Update("status", constants.RESERVATION_CANCELLED).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, reservation)
}

// GetReservationQR serves the reservation code as a PNG, for check-in at
// the venue.
func GetReservationQR(c *fiber.Ctx) error {
	claim, _, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
	}

	code := c.Params("code")

	var reservation model.Reservation
	if err := database.DB.Where("public_code = ?", code).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RESERVATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if reservation.ClientId != claim.UserId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "La reserva pertenece a otro usuario", errors.New("not owner"))
	}

	qrBytes, err := utils.GenerateQRCode(reservation.PublicCode, 400)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(qrBytes)
}
