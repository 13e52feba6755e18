package handler

import (
	"errors"

	"venue_manager/constants"
	"venue_manager/database"
	"venue_manager/helper"
	"venue_manager/model"
	"venue_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAmenities lists every amenity alphabetically.
func GetAmenities(c *fiber.Ctx) error {
	_, isStaff, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
	}
	if !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, errors.New("not staff"))
	}

	var amenities []model.Amenity
	if err := database.DB.Order("name ASC").Find(&amenities).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, amenities)
}

func CreateAmenity(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateAmenity").(model.CreateAmenityInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	amenity := model.Amenity{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
	}

	if err := database.DB.Create(&amenity).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, amenity)
}

func EditAmenity(c *fiber.Ctx) error {
	input, ok := c.Locals("inputEditAmenity").(model.EditAmenityInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	amenityId, ok := c.Locals("amenityId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB
	var amenity model.Amenity
	if err := db.First(&amenity, amenityId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.AMENITY_NOT_FOUND, err)
	}

	updateData := map[string]interface{}{}
	if input.Name != nil {
		updateData["name"] = *input.Name
	}
	if input.Description != nil {
		updateData["description"] = *input.Description
	}
	if input.Icon != nil {
		updateData["icon"] = *input.Icon
	}

	if len(updateData) > 0 {
		if err := db.Model(&amenity).Updates(updateData).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, amenity)
}

// DeleteAmenity removes the amenity and detaches it from every venue that
// references it. The venues themselves are untouched.
func DeleteAmenity(c *fiber.Ctx) error {
	amenityId, ok := c.Locals("amenityId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB
	var amenity model.Amenity
	if err := db.First(&amenity, amenityId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.AMENITY_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	if err := tx.Model(&amenity).Association("Venues").Clear(); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&amenity).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	tx.Commit()

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Instalación eliminada",
	})
}

// DeleteAmenities removes a batch of amenities in one transaction. Unknown
// ids fail the whole batch.
func DeleteAmenities(c *fiber.Ctx) error {
	_, isStaff, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
	}
	if !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, errors.New("not staff"))
	}

	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB
	var amenities []model.Amenity
	if err := db.Where("id IN ?", input.IDs).Find(&amenities).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(amenities) != len(input.IDs) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.AMENITY_NOT_FOUND, errors.New("unknown amenity in batch"))
	}

	tx := db.Begin()
	for i := range amenities {
		if err := tx.Model(&amenities[i]).Association("Venues").Clear(); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}
	if err := tx.Delete(&amenities).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	tx.Commit()

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"deleted": len(amenities),
	})
}
