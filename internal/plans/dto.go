package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
)

// PlanDTO represents the plan payload returned to clients.
type PlanDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`
	Validity    string    `json:"validity"`
	Data        string    `json:"data"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToDTO maps a plan model onto the client payload.
func ToDTO(plan models.Plan) PlanDTO {
	return PlanDTO{
		ID:          plan.ID,
		Name:        plan.Name,
		Price:       plan.Price,
		Validity:    plan.Validity,
		Data:        plan.Data,
		Description: plan.Description,
		IsActive:    plan.IsActive,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}

// ToDTOs maps a slice of plan models.
func ToDTOs(plans []models.Plan) []PlanDTO {
	dtos := make([]PlanDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, ToDTO(plan))
	}
	return dtos
}
