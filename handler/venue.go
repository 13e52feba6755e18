package handler

import (
	"errors"
	"log"
	"mime/multipart"
	"os"
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

func orderImagesByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// GetVenues lists active venues. `?q=` filters by case-insensitive substring
// over name, description or any associated amenity name, without duplicates.
func GetVenues(c *fiber.Ctx) error {
	db := database.DB

	filter := model.FilterVenue{SearchKey: strings.TrimSpace(c.Query("q"))}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Limit = &v
		}
	}
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Page = &v
		}
	}

	query := db.Model(&model.Venue{}).Where("venues.is_active = ?", true)
	if filter.SearchKey != "" {
		key := "%" + strings.ToLower(filter.SearchKey) + "%"
		query = query.
			Joins("LEFT JOIN venue_amenities ON venue_amenities.venue_id = venues.id").
			Joins("LEFT JOIN amenities ON amenities.id = venue_amenities.amenity_id").
			Where(
				db.Where("LOWER(venues.name) LIKE ?", key).
					Or("LOWER(venues.description) LIKE ?", key).
					Or("LOWER(amenities.name) LIKE ?", key),
			).
			Distinct("venues.*")
	}

	var venues []model.Venue
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Amenities").
		Preload("Images", orderImagesByPosition).
		Find(&venues).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"venues":      venues,
		"searchQuery": filter.SearchKey,
	})
}

// GetVenueDetail returns one venue by id, active or not, with its images,
// amenities and (when coordinates are present) the weather summary. A failed
// weather lookup leaves the field null.
func GetVenueDetail(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	var venue model.Venue
	if err := database.DB.
		Preload("Amenities").
		Preload("Images", orderImagesByPosition).
		First(&venue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VENUE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return renderVenueDetail(c, &venue)
}

// GetVenueDetailBySlug is the slug flavour of the detail view.
func GetVenueDetailBySlug(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var venue model.Venue
	if err := database.DB.
		Preload("Amenities").
		Preload("Images", orderImagesByPosition).
		Where("slug = ?", slugParam).
		First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VENUE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return renderVenueDetail(c, &venue)
}

func renderVenueDetail(c *fiber.Ctx, venue *model.Venue) error {
	var weather *utils.WeatherSummary
	if venue.Latitude != nil && venue.Longitude != nil {
		weather = utils.FetchWeather(*venue.Latitude, *venue.Longitude)
	}

	// Anonymous viewers resolve to canManage=false.
	_, isStaff, _ := helper.GetInfoUserFromToken(c)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"venue":      venue,
		"weather":    weather,
		"canManage":  isStaff,
		"mapsApiKey": os.Getenv("MAPS_API_KEY"),
	})
}

// GetStaffVenues lists every venue, active or not, newest first.
func GetStaffVenues(c *fiber.Ctx) error {
	_, isStaff, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cuenta no válida", errors.New("account not found"))
	}
	if !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_STAFF, errors.New("not staff"))
	}

	var venues []model.Venue
	if err := database.DB.
		Preload("Amenities").
		Preload("Images", orderImagesByPosition).
		Order("id DESC").
		Find(&venues).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, venues)
}

type uploadedImage struct {
	Url      string
	PublicID string
}

// uploadPhotos pushes every file to Cloudinary before any database write, so
// an upload failure aborts the request with nothing persisted.
func uploadPhotos(files []*multipart.FileHeader, venueName string) ([]uploadedImage, error) {
	if len(files) == 0 {
		return nil, nil
	}

	cld, err := helper.InitCloudinary()
	if err != nil {
		return nil, err
	}

	uploaded := make([]uploadedImage, 0, len(files))
	for _, file := range files {
		url, publicID, err := helper.UploadVenueImage(cld, file, venueName)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, uploadedImage{Url: url, PublicID: publicID})
	}
	return uploaded, nil
}

func loadAmenities(tx *gorm.DB, ids []uint) ([]model.Amenity, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var amenities []model.Amenity
	if err := tx.Where("id IN ?", ids).Find(&amenities).Error; err != nil {
		return nil, err
	}
	if len(amenities) != len(ids) {
		return nil, errors.New("amenity not found")
	}
	return amenities, nil
}

func CreateVenue(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateVenue").(model.CreateVenueInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	photos, _ := c.Locals("photoFiles").([]*multipart.FileHeader)

	uploaded, err := uploadPhotos(photos, input.Name)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "No se pudieron subir las imágenes", err)
	}

	db := database.DB
	tx := db.Begin()

	amenities, err := loadAmenities(tx, input.AmenityIds)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Alguna instalación indicada no existe", err, "amenity_ids")
	}

	venue := model.Venue{
		Slug:        helper.GenerateUniqueVenueSlug(tx, input.Name),
		Name:        input.Name,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Amenities:   amenities,
	}
	if input.Capacity != nil {
		venue.Capacity = *input.Capacity
	}
	if input.PricePerDay != nil {
		venue.PricePerDay = *input.PricePerDay
	}
	if input.IsActive != nil {
		venue.IsActive = input.IsActive
	} else {
		venue.IsActive = utils.Ptr(true)
	}

	if err := tx.Create(&venue).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	for idx, img := range uploaded {
		image := model.VenueImage{
			VenueId:  venue.ID,
			Url:      img.Url,
			PublicID: utils.StringPtr(img.PublicID),
			Position: idx,
		}
		if err := tx.Create(&image).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}
		venue.Images = append(venue.Images, image)
	}

	tx.Commit()
	return utils.SuccessResponse(c, fiber.StatusCreated, venue)
}

func EditVenue(c *fiber.Ctx) error {
	input, ok := c.Locals("inputEditVenue").(model.EditVenueInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	venueId, ok := c.Locals("venueId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	photos, _ := c.Locals("photoFiles").([]*multipart.FileHeader)

	db := database.DB
	var venue model.Venue
	if err := db.First(&venue, venueId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VENUE_NOT_FOUND, err)
	}

	uploadName := venue.Name
	if input.Name != nil {
		uploadName = *input.Name
	}
	uploaded, err := uploadPhotos(photos, uploadName)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "No se pudieron subir las imágenes", err)
	}

	tx := db.Begin()

	updateData := map[string]interface{}{}
	if input.Name != nil && *input.Name != venue.Name {
		updateData["name"] = *input.Name
		updateData["slug"] = helper.GenerateUniqueVenueSlug(tx, *input.Name)
	}
	if input.Description != nil {
		updateData["description"] = *input.Description
	}
	if input.Latitude != nil {
		updateData["latitude"] = *input.Latitude
	}
	if input.Longitude != nil {
		updateData["longitude"] = *input.Longitude
	}
	if input.Capacity != nil {
		updateData["capacity"] = *input.Capacity
	}
	if input.PricePerDay != nil {
		updateData["price_per_day"] = *input.PricePerDay
	}
	if input.IsActive != nil {
		updateData["is_active"] = *input.IsActive
	}

	// Blank-submitted fields are wiped rather than skipped.
	clearFields, _ := c.Locals("clearVenueFields").([]string)
	for _, field := range clearFields {
		updateData[field] = nil
	}

	if len(updateData) > 0 {
		if err := tx.Model(&venue).Updates(updateData).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if input.AmenityIds != nil {
		amenities, err := loadAmenities(tx, *input.AmenityIds)
		if err != nil {
			tx.Rollback()
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Alguna instalación indicada no existe", err, "amenity_ids")
		}
		if err := tx.Model(&venue).Association("Amenities").Replace(&amenities); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	// New photos extend the gallery, they never replace earlier uploads.
	var nextPosition int64
	tx.Model(&model.VenueImage{}).Where("venue_id = ?", venue.ID).Count(&nextPosition)
	for idx, img := range uploaded {
		image := model.VenueImage{
			VenueId:  venue.ID,
			Url:      img.Url,
			PublicID: utils.StringPtr(img.PublicID),
			Position: int(nextPosition) + idx,
		}
		if err := tx.Create(&image).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}
	}

	tx.Commit()

	var updated model.Venue
	db.Preload("Amenities").Preload("Images", orderImagesByPosition).First(&updated, venue.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

func DeleteVenue(c *fiber.Ctx) error {
	venueId, ok := c.Locals("venueId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB
	var venue model.Venue
	if err := db.Preload("Images").First(&venue, venueId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VENUE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx := db.Begin()
	if err := tx.Where("venue_id = ?", venue.ID).Delete(&model.Reservation{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Where("venue_id = ?", venue.ID).Delete(&model.VenueImage{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Model(&venue).Association("Amenities").Clear(); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := tx.Delete(&venue).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	tx.Commit()

	// Stored assets are cleaned up after the fact; a failed destroy only
	// leaves a dangling file at the provider.
	if len(venue.Images) > 0 {
		cld, err := helper.InitCloudinary()
		if err != nil {
			log.Printf("cloudinary init failed during venue delete: %v", err)
		} else {
			for _, image := range venue.Images {
				if image.PublicID != nil {
					helper.DestroyImage(cld, *image.PublicID)
				}
			}
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Espacio eliminado",
	})
}
