package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
)

// UserDTO represents the account payload returned to clients. The
// password hash is never serialized.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToDTO maps a user model onto the client payload.
func ToDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}

// ToDTOs maps a slice of user models.
func ToDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, ToDTO(user))
	}
	return dtos
}
