package model

import "time"

type Reservation struct {
	DTO
	PublicCode string    `gorm:"unique;size:20" json:"publicCode"`
	ClientId   uint      `gorm:"not null;index" json:"clientId"`
	Client     User      `gorm:"foreignKey:ClientId" json:"-"`
	VenueId    uint      `gorm:"not null;index" json:"venueId"`
	Venue      Venue     `gorm:"foreignKey:VenueId" json:"venue"`
	EventDate  time.Time `gorm:"not null" json:"eventDate"`
	Guests     int       `json:"guests"`
	Status     string    `gorm:"not null;default:PENDING" json:"status"`
	Notes      string    `json:"notes"`
}

type Reservations []Reservation

type CreateReservationInput struct {
	VenueId   uint      `validate:"required" json:"venueId"`
	EventDate time.Time `validate:"required" json:"eventDate"`
	Guests    int       `validate:"omitempty,min=1" json:"guests"`
	Notes     string    `json:"notes"`
}
