package plan

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
)

// MemoryRepository keeps the plan catalog in process memory. It backs
// the service when no database is configured, mainly for local runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	plans map[uuid.UUID]models.Plan
}

// NewMemoryRepository builds an empty in-memory catalog.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		plans: make(map[uuid.UUID]models.Plan),
	}
}

func (r *MemoryRepository) Create(_ context.Context, plan *models.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[plan.ID]; !exists {
		r.order = append(r.order, plan.ID)
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	r.plans[plan.ID] = *plan
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, plan *models.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[plan.ID]; !exists {
		return gorm.ErrRecordNotFound
	}
	r.plans[plan.ID] = *plan
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, exists := r.plans[id]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return &plan, nil
}

func (r *MemoryRepository) ListActive(_ context.Context) ([]models.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]models.Plan, 0, len(r.order))
	for _, id := range r.order {
		if plan := r.plans[id]; plan.IsActive {
			plans = append(plans, plan)
		}
	}
	return plans, nil
}

func (r *MemoryRepository) ListAll(_ context.Context) ([]models.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]models.Plan, 0, len(r.order))
	for _, id := range r.order {
		plans = append(plans, r.plans[id])
	}
	return plans, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.plans)), nil
}
