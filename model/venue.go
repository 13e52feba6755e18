package model

type Venue struct {
	DTO
	Slug        string       `gorm:"uniqueIndex" json:"slug"`
	Name        string       `gorm:"not null" validate:"required" json:"name"`
	Description string       `json:"description"`
	Latitude    *float64     `json:"latitude"`
	Longitude   *float64     `json:"longitude"`
	Capacity    int          `json:"capacity"`
	PricePerDay float64      `json:"pricePerDay"`
	IsActive    *bool        `gorm:"not null;default:true" json:"isActive"`
	Amenities   []Amenity    `gorm:"many2many:venue_amenities;" json:"amenities"`
	Images      []VenueImage `gorm:"foreignKey:VenueId" json:"images"`
}

type Venues []Venue

type VenueImage struct {
	DTO
	VenueId  uint    `gorm:"not null;index" json:"venueId"`
	Url      string  `gorm:"not null" json:"url"`
	PublicID *string `json:"publicId"`
	Position int     `json:"position"`
}

type CreateVenueInput struct {
	Name        string   `validate:"required" json:"name"`
	Description string   `validate:"omitempty" json:"description"`
	Latitude    *float64 `validate:"omitempty,latitude" json:"latitude"`
	Longitude   *float64 `validate:"omitempty,longitude" json:"longitude"`
	Capacity    *int     `validate:"omitempty,min=0" json:"capacity"`
	PricePerDay *float64 `validate:"omitempty,min=0" json:"pricePerDay"`
	IsActive    *bool    `json:"isActive"`
	AmenityIds  []uint   `json:"amenityIds"`
}

type EditVenueInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Latitude    *float64 `validate:"omitempty,latitude" json:"latitude"`
	Longitude   *float64 `validate:"omitempty,longitude" json:"longitude"`
	Capacity    *int     `validate:"omitempty,min=0" json:"capacity"`
	PricePerDay *float64 `validate:"omitempty,min=0" json:"pricePerDay"`
	IsActive    *bool    `json:"isActive"`
	AmenityIds  *[]uint  `json:"amenityIds"`
}

type FilterVenue struct {
	Pagination
	SearchKey string `json:"q"`
}
