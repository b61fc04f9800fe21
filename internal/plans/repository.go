package plan

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
)

// Repository defines persistence operations for the plan catalog. Two
// backings exist: a GORM-backed store and an in-memory store, selected
// at startup and never mixed per-request.
type Repository interface {
	Create(ctx context.Context, plan *models.Plan) error
	Update(ctx context.Context, plan *models.Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	ListActive(ctx context.Context) ([]models.Plan, error)
	ListAll(ctx context.Context) ([]models.Plan, error)
	Count(ctx context.Context) (int64, error)
}

// GormRepository persists plans through GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository builds a repository tied to the provided GORM DB.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, plan *models.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *GormRepository) Update(ctx context.Context, plan *models.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// FindByID loads the plan regardless of its active flag.
func (r *GormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActive returns active plans in catalog order.
func (r *GormRepository) ListActive(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC").
		Find(&plans).Error
	return plans, err
}

// ListAll returns every plan, active or not, in catalog order.
func (r *GormRepository) ListAll(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&plans).Error
	return plans, err
}

func (r *GormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Plan{}).Count(&count).Error
	return count, err
}
