package model

import "time"

type CreateDriverAccountRequest struct {
	Email        string `json:"email" validate:"required,email,max=100"`
	FullName     string `json:"full_name" validate:"required,max=100"`
	Password     string `json:"password" validate:"required,min=8,max=100"`
	MobileNumber string `json:"mobile_number,omitempty" validate:"max=32"`
}

type ResetDriverPasswordRequest struct {
	DriverID    string `json:"driver_id" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=100"`
}

type UserResponse struct {
	ID           string     `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	MobileNumber *string    `json:"mobile_number,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
