package validate

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"venue_manager/constants"
	"venue_manager/database"
	"venue_manager/helper"
	"venue_manager/model"
	"venue_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".webp"}

const maxImageSize = 5 * 1024 * 1024

func checkPhotoFiles(c *fiber.Ctx, files []*multipart.FileHeader) error {
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !slices.Contains(allowedImageExts, ext) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Solo se admiten imágenes JPG, PNG o WEBP", nil, "photos")
		}
		if file.Size > maxImageSize {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Cada imagen debe pesar menos de 5MB", nil, "photos")
		}
	}
	return nil
}

func parseAmenityIds(values []string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id <= 0 {
				return nil, errors.New("amenity id invalid")
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}

func firstFormValue(form *multipart.Form, key string) (string, bool) {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func parseFloatField(c *fiber.Ctx, raw, key string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, key)
	}
	return &v, nil
}

func CreateVenue() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "No se pudo leer el formulario", err)
		}

		_, isStaff, ok := helper.GetInfoUserFromToken(c)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
		}
		if !isStaff {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, errors.New("not staff"))
		}

		name := strings.TrimSpace(utils.GetFirstValue(form.Value, "name"))
		if name == "" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "El nombre del espacio es obligatorio", nil, "name")
		}

		var existing model.Venue
		if err := database.DB.Where("name = ?", name).First(&existing).Error; err == nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Ya existe un espacio con ese nombre", nil, "name")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		lat, ferr := parseFloatField(c, utils.GetFirstValue(form.Value, "latitude"), "latitude")
		if ferr != nil {
			return ferr
		}
		lng, ferr := parseFloatField(c, utils.GetFirstValue(form.Value, "longitude"), "longitude")
		if ferr != nil {
			return ferr
		}

		var capacity *int
		if raw := utils.GetFirstValue(form.Value, "capacity"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "capacity")
			}
			capacity = &v
		}
		price, ferr := parseFloatField(c, utils.GetFirstValue(form.Value, "price_per_day"), "price_per_day")
		if ferr != nil {
			return ferr
		}

		var active *bool
		if raw := utils.GetFirstValue(form.Value, "active"); raw != "" {
			v := raw == "1" || strings.EqualFold(raw, "true")
			active = &v
		}

		amenityIds, err := parseAmenityIds(form.Value["amenity_ids"])
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "amenity_ids")
		}

		input := model.CreateVenueInput{
			Name:        name,
			Description: utils.GetFirstValue(form.Value, "description"),
			Latitude:    lat,
			Longitude:   lng,
			Capacity:    capacity,
			PricePerDay: price,
			IsActive:    active,
			AmenityIds:  amenityIds,
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		photos := form.File["photos"]
		if err := checkPhotoFiles(c, photos); err != nil {
			return err
		}

		c.Locals("inputCreateVenue", input)
		c.Locals("photoFiles", photos)
		return c.Next()
	}
}

func EditVenue(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		form, err := c.MultipartForm()
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "No se pudo leer el formulario", err)
		}

		_, isStaff, ok := helper.GetInfoUserFromToken(c)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
		}
		if !isStaff {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, errors.New("not staff"))
		}

		var venue model.Venue
		if err := database.DB.First(&venue, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VENUE_NOT_FOUND, err)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		// A key that is present but blank clears the field; an absent key
		// leaves it untouched. The name cannot be cleared.
		var namePtr, descPtr *string
		if raw := strings.TrimSpace(utils.GetFirstValue(form.Value, "name")); raw != "" {
			namePtr = &raw
		}
		if raw, present := firstFormValue(form, "description"); present {
			descPtr = &raw
		}

		if namePtr != nil && *namePtr != venue.Name {
			var existing model.Venue
			if err := database.DB.Where("name = ? AND id != ?", *namePtr, id).First(&existing).Error; err == nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Ya existe un espacio con ese nombre", nil, "name")
			}
		}

		clearFields := []string{}
		var lat, lng *float64
		if raw, present := firstFormValue(form, "latitude"); present {
			if strings.TrimSpace(raw) == "" {
				clearFields = append(clearFields, "latitude")
			} else {
				var ferr error
				lat, ferr = parseFloatField(c, raw, "latitude")
				if ferr != nil {
					return ferr
				}
			}
		}
		if raw, present := firstFormValue(form, "longitude"); present {
			if strings.TrimSpace(raw) == "" {
				clearFields = append(clearFields, "longitude")
			} else {
				var ferr error
				lng, ferr = parseFloatField(c, raw, "longitude")
				if ferr != nil {
					return ferr
				}
			}
		}

		var capacity *int
		if raw := utils.GetFirstValue(form.Value, "capacity"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "capacity")
			}
			capacity = &v
		}
		price, ferr := parseFloatField(c, utils.GetFirstValue(form.Value, "price_per_day"), "price_per_day")
		if ferr != nil {
			return ferr
		}

		var active *bool
		if raw := utils.GetFirstValue(form.Value, "active"); raw != "" {
			v := raw == "1" || strings.EqualFold(raw, "true")
			active = &v
		}

		var amenityIds *[]uint
		if values, present := form.Value["amenity_ids"]; present {
			ids, err := parseAmenityIds(values)
			if err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "amenity_ids")
			}
			amenityIds = &ids
		}

		input := model.EditVenueInput{
			Name:        namePtr,
			Description: descPtr,
			Latitude:    lat,
			Longitude:   lng,
			Capacity:    capacity,
			PricePerDay: price,
			IsActive:    active,
			AmenityIds:  amenityIds,
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		photos := form.File["photos"]
		if err := checkPhotoFiles(c, photos); err != nil {
			return err
		}

		c.Locals("inputEditVenue", input)
		c.Locals("venueId", uint(id))
		c.Locals("photoFiles", photos)
		c.Locals("clearVenueFields", clearFields)
		return c.Next()
	}
}

func DeleteVenue(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		_, isStaff, ok := helper.GetInfoUserFromToken(c)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
		}
		if !isStaff {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, errors.New("not staff"))
		}

		c.Locals("venueId", uint(id))
		return c.Next()
	}
}
