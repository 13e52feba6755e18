package model

import "time"

type User struct {
	DTO
	Username string `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    *string `gorm:"uniqueIndex" json:"phone"`
	Role     string `gorm:"not null;default:CLIENT" json:"role"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

type Users []User

type RegisterUserInput struct {
	Username string  `validate:"required,min=3,max=50" json:"username"`
	Email    string  `validate:"required,email" json:"email"`
	Password string  `validate:"required,min=6,max=50" json:"password"`
	Phone    *string `validate:"omitempty,min=7,max=15" json:"phone"`
}

type UserChangePassword struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	RepeatPassword  string `json:"repeatPassword" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type PasswordResetToken struct {
	DTO
	UserId    uint      `gorm:"not null" json:"userId"`
	Token     string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	User      User      `gorm:"foreignKey:UserId" json:"user"`
}
