package converter

import (
	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/model"
)

func UserToResponse(user *entity.User) *model.UserResponse {
	return &model.UserResponse{
		ID:           user.UserID,
		FullName:     user.FullName,
		Email:        user.Email,
		Role:         user.Role,
		MobileNumber: user.MobileNumber,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
