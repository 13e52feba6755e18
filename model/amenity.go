package model

type Amenity struct {
	DTO
	Name        string  `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
	Description string  `json:"description"`
	Icon        *string `json:"icon"`
	Venues      []Venue `gorm:"many2many:venue_amenities;" json:"-"`
}

type Amenities []Amenity

type CreateAmenityInput struct {
	Name        string  `validate:"required,min=2,max=100" json:"name"`
	Description string  `validate:"omitempty" json:"description"`
	Icon        *string `json:"icon"`
}

type EditAmenityInput struct {
	Name        *string `validate:"omitempty,min=2,max=100" json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}
