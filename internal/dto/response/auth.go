package response

import (
	"movie-catalog/internal/data/entity"
)

type UserResponse struct {
	ID    int64
	Name  string
	Email string
}

func UserToResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
