package models

import (
	"time"

	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	"github.com/google/uuid"
)

// Recharge is an immutable ledger entry for a plan purchase attempt.
// Rows are created exactly once and never updated or deleted; Amount
// snapshots the plan price at purchase time.
type Recharge struct {
	ID            uuid.UUID            `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID            `gorm:"type:uuid;column:user_id;not null;index"`
	PlanID        uuid.UUID            `gorm:"type:uuid;column:plan_id;not null"`
	PhoneNumber   string               `gorm:"column:phone_number;not null"`
	Operator      enums.Operator       `gorm:"column:operator;not null"`
	Amount        int                  `gorm:"column:amount;not null"`
	Status        enums.RechargeStatus `gorm:"column:status;not null;default:completed"`
	TransactionID string               `gorm:"column:transaction_id;not null;uniqueIndex:idx_recharges_transaction_id"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`

	User *User `gorm:"foreignKey:UserID"`
	Plan *Plan `gorm:"foreignKey:PlanID"`
}
