package recharge

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	"github.com/arjunmehta/rechargehub-backend/pkg/pagination"
)

// OperatorStat aggregates completed recharges for one carrier.
type OperatorStat struct {
	Operator enums.Operator `json:"operator"`
	Count    int64          `json:"count"`
	Revenue  int64          `json:"revenue"`
}

// Repository defines persistence operations for the recharge ledger.
// The ledger is create-only: no update or delete operation exists on
// purpose.
type Repository interface {
	Create(ctx context.Context, rec *models.Recharge) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Recharge, error)
	ListAll(ctx context.Context, params pagination.Params) ([]models.Recharge, error)
	OperatorStats(ctx context.Context) ([]OperatorStat, error)
	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (int64, error)
}

// GormRepository persists ledger entries through GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository builds a repository tied to the provided GORM DB.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, rec *models.Recharge) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// ListByUser returns one user's ledger entries newest first with the
// plan reference expanded.
func (r *GormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Recharge, error) {
	var recs []models.Recharge
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC, transaction_id DESC").
		Find(&recs).Error
	return recs, err
}

// ListAll returns the full ledger newest first with user and plan
// references expanded.
func (r *GormRepository) ListAll(ctx context.Context, params pagination.Params) ([]models.Recharge, error) {
	params = params.Normalize()
	var recs []models.Recharge
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Plan").
		Order("created_at DESC, transaction_id DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&recs).Error
	return recs, err
}

// OperatorStats aggregates completed entries per carrier, most active
// carrier first.
func (r *GormRepository) OperatorStats(ctx context.Context) ([]OperatorStat, error) {
	var stats []OperatorStat
	err := r.db.WithContext(ctx).
		Model(&models.Recharge{}).
		Select("operator, COUNT(*) AS count, SUM(amount) AS revenue").
		Where("status = ?", enums.RechargeStatusCompleted).
		Group("operator").
		Order("count DESC, operator ASC").
		Scan(&stats).Error
	return stats, err
}

func (r *GormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recharge{}).Count(&count).Error
	return count, err
}

// TotalRevenue sums amounts over completed entries only.
func (r *GormRepository) TotalRevenue(ctx context.Context) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.Recharge{}).
		Select("SUM(amount)").
		Where("status = ?", enums.RechargeStatusCompleted).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
