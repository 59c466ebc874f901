package converter

import (
	"go-sportclub-booking/internal/delivery/dto"
	"go-sportclub-booking/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := ""
	switch user.RoleID {
	case entity.RoleIDAdmin:
		role = entity.RoleAdmin
	case entity.RoleIDMember:
		role = entity.RoleMember
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
