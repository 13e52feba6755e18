package database

import (
	"log"

	"venue_manager/constants"
	"venue_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123!"), 10)
	hashPassword := string(bytes)
	if err != nil {
		hashPassword = "admin123!"
	}

	users := []model.User{
		{Username: "administracion", Password: hashPassword, Email: "admin@venues.local", Role: constants.ROLE_ADMIN, IsActive: true},
	}

	for _, user := range users {
		if err := db.Where(model.User{Username: user.Username}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed data for user:", user.Username, "error:", err)
		}
	}

	amenities := []model.Amenity{
		{Name: "Estacionamiento", Description: "Estacionamiento propio para invitados"},
		{Name: "Wifi", Description: "Conexión inalámbrica en todo el recinto"},
		{Name: "Cocina equipada", Description: "Cocina industrial disponible para catering"},
		{Name: "Aire acondicionado", Description: "Climatización en salones principales"},
		{Name: "Sonido", Description: "Equipo de sonido y micrófonos"},
	}

	for _, amenity := range amenities {
		if err := db.Where(model.Amenity{Name: amenity.Name}).FirstOrCreate(&amenity).Error; err != nil {
			log.Println("failed to seed data for amenity:", amenity.Name, "error:", err)
		}
	}
}
