package recharge

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arjunmehta/rechargehub-backend/pkg/db"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	"github.com/arjunmehta/rechargehub-backend/pkg/pagination"
)

// ReferenceResolver loads the entities a ledger entry points at so the
// in-memory backing can expand references the way the GORM preloads do.
type ReferenceResolver interface {
	ResolveUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ResolvePlan(ctx context.Context, id uuid.UUID) (*models.Plan, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type planFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
}

type repoResolver struct {
	users userFinder
	plans planFinder
}

// NewRepoResolver adapts the user and plan repositories into a
// ReferenceResolver for the in-memory ledger.
func NewRepoResolver(users userFinder, plans planFinder) ReferenceResolver {
	return &repoResolver{users: users, plans: plans}
}

func (r *repoResolver) ResolveUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.users.FindByID(ctx, id)
}

func (r *repoResolver) ResolvePlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	return r.plans.FindByID(ctx, id)
}

// MemoryRepository keeps the ledger in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	entries  []models.Recharge
	byTxnID  map[string]struct{}
	resolver ReferenceResolver
}

// NewMemoryRepository builds an empty in-memory ledger. The resolver is
// optional; without it list reads return unexpanded references.
func NewMemoryRepository(resolver ReferenceResolver) *MemoryRepository {
	return &MemoryRepository{
		byTxnID:  make(map[string]struct{}),
		resolver: resolver,
	}
}

func (r *MemoryRepository) Create(_ context.Context, rec *models.Recharge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byTxnID[rec.TransactionID]; exists {
		return db.ErrDuplicateKey
	}
	r.byTxnID[rec.TransactionID] = struct{}{}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	stored := *rec
	stored.User = nil
	stored.Plan = nil
	r.entries = append(r.entries, stored)
	return nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Recharge, error) {
	r.mu.RLock()
	matched := make([]models.Recharge, 0)
	for _, rec := range r.entries {
		if rec.UserID == userID {
			matched = append(matched, rec)
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(matched)
	return r.expand(ctx, matched, false)
}

func (r *MemoryRepository) ListAll(ctx context.Context, params pagination.Params) ([]models.Recharge, error) {
	r.mu.RLock()
	all := make([]models.Recharge, len(r.entries))
	copy(all, r.entries)
	r.mu.RUnlock()

	sortNewestFirst(all)

	params = params.Normalize()
	if params.Offset >= len(all) {
		return []models.Recharge{}, nil
	}
	all = all[params.Offset:]
	if len(all) > params.Limit {
		all = all[:params.Limit]
	}
	return r.expand(ctx, all, true)
}

func (r *MemoryRepository) OperatorStats(_ context.Context) ([]OperatorStat, error) {
	r.mu.RLock()
	byOperator := make(map[enums.Operator]*OperatorStat)
	for _, rec := range r.entries {
		if rec.Status != enums.RechargeStatusCompleted {
			continue
		}
		stat, ok := byOperator[rec.Operator]
		if !ok {
			stat = &OperatorStat{Operator: rec.Operator}
			byOperator[rec.Operator] = stat
		}
		stat.Count++
		stat.Revenue += int64(rec.Amount)
	}
	r.mu.RUnlock()

	stats := make([]OperatorStat, 0, len(byOperator))
	for _, stat := range byOperator {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Operator < stats[j].Operator
	})
	return stats, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.entries)), nil
}

func (r *MemoryRepository) TotalRevenue(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, rec := range r.entries {
		if rec.Status == enums.RechargeStatusCompleted {
			total += int64(rec.Amount)
		}
	}
	return total, nil
}

func sortNewestFirst(recs []models.Recharge) {
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].TransactionID > recs[j].TransactionID
	})
}

func (r *MemoryRepository) expand(ctx context.Context, recs []models.Recharge, withUser bool) ([]models.Recharge, error) {
	if r.resolver == nil {
		return recs, nil
	}
	for i := range recs {
		if plan, err := r.resolver.ResolvePlan(ctx, recs[i].PlanID); err == nil {
			recs[i].Plan = plan
		}
		if !withUser {
			continue
		}
		if user, err := r.resolver.ResolveUser(ctx, recs[i].UserID); err == nil {
			recs[i].User = user
		}
	}
	return recs, nil
}
