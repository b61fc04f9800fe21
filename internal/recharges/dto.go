package recharge

import (
	"time"

	"github.com/google/uuid"

	plan "github.com/arjunmehta/rechargehub-backend/internal/plans"
	user "github.com/arjunmehta/rechargehub-backend/internal/users"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
)

// RechargeDTO represents a ledger entry returned to clients, with the
// referenced plan (and for admin reads, user) embedded.
type RechargeDTO struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"userId"`
	PlanID        uuid.UUID     `json:"planId"`
	PhoneNumber   string        `json:"phoneNumber"`
	Operator      string        `json:"operator"`
	Amount        int           `json:"amount"`
	Status        string        `json:"status"`
	TransactionID string        `json:"transactionId"`
	CreatedAt     time.Time     `json:"createdAt"`
	Plan          *plan.PlanDTO `json:"plan,omitempty"`
	User          *user.UserDTO `json:"user,omitempty"`
}

// AdminStats summarizes the whole system for the admin dashboard.
// Revenue covers completed recharges only.
type AdminStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalPlans     int64 `json:"totalPlans"`
	TotalRecharges int64 `json:"totalRecharges"`
	TotalRevenue   int64 `json:"totalRevenue"`
}

// ToDTO maps a ledger entry onto the client payload.
func ToDTO(rec models.Recharge) RechargeDTO {
	dto := RechargeDTO{
		ID:            rec.ID,
		UserID:        rec.UserID,
		PlanID:        rec.PlanID,
		PhoneNumber:   rec.PhoneNumber,
		Operator:      rec.Operator.String(),
		Amount:        rec.Amount,
		Status:        rec.Status.String(),
		TransactionID: rec.TransactionID,
		CreatedAt:     rec.CreatedAt,
	}
	if rec.Plan != nil {
		planDTO := plan.ToDTO(*rec.Plan)
		dto.Plan = &planDTO
	}
	if rec.User != nil {
		userDTO := user.ToDTO(*rec.User)
		dto.User = &userDTO
	}
	return dto
}

// ToDTOs maps a slice of ledger entries.
func ToDTOs(recs []models.Recharge) []RechargeDTO {
	dtos := make([]RechargeDTO, 0, len(recs))
	for _, rec := range recs {
		dtos = append(dtos, ToDTO(rec))
	}
	return dtos
}
