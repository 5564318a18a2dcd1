package dto

import (
	"time"

	"github.com/skillforge/backend/internal/domain"
)

// UserResponse is the outward user representation. The password hash never
// leaves the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user to its response shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponses maps a slice of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// ChangeRoleRequest payload for role updates.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}
