package recharge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunmehta/rechargehub-backend/pkg/db"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
	"github.com/arjunmehta/rechargehub-backend/pkg/metrics"
	"github.com/arjunmehta/rechargehub-backend/pkg/pagination"
)

// Service exposes the recharge ledger operations.
type Service interface {
	Create(ctx context.Context, input CreateRechargeInput) (*models.Recharge, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Recharge, error)
	ListAll(ctx context.Context, params pagination.Params) ([]models.Recharge, error)
	OperatorStats(ctx context.Context) ([]OperatorStat, error)
	Stats(ctx context.Context) (*AdminStats, error)
}

// CreateRechargeInput holds the payload to record a recharge. Operator
// is optional and falls back to the configured default carrier.
type CreateRechargeInput struct {
	UserID      uuid.UUID
	PlanID      uuid.UUID
	PhoneNumber string
	Operator    string
}

type planResolver interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	Count(ctx context.Context) (int64, error)
}

type userReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo            Repository
	plans           planResolver
	users           userReader
	defaultOperator enums.Operator
	metrics         *metrics.RechargeMetrics
}

// NewService constructs a recharge ledger service instance.
func NewService(repo Repository, plans planResolver, users userReader, defaultOperator enums.Operator, m *metrics.RechargeMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recharge repository required")
	}
	if plans == nil {
		return nil, fmt.Errorf("plan resolver required")
	}
	if users == nil {
		return nil, fmt.Errorf("user reader required")
	}
	if !defaultOperator.IsValid() {
		return nil, fmt.Errorf("invalid default operator %q", defaultOperator)
	}
	return &service{
		repo:            repo,
		plans:           plans,
		users:           users,
		defaultOperator: defaultOperator,
		metrics:         m,
	}, nil
}

// Create records one completed recharge. The amount always snapshots
// the plan's current price, and a duplicate transaction id fails the
// insert outright rather than retrying with a fresh id.
func (s *service) Create(ctx context.Context, input CreateRechargeInput) (*models.Recharge, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	plan, err := s.plans.Get(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}

	operator := s.defaultOperator
	if raw := strings.TrimSpace(input.Operator); raw != "" {
		parsed, err := enums.ParseOperator(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown operator").
				WithDetails(map[string]any{"operator": raw})
		}
		operator = parsed
	}

	rec := &models.Recharge{
		ID:            uuid.New(),
		UserID:        input.UserID,
		PlanID:        plan.ID,
		PhoneNumber:   strings.TrimSpace(input.PhoneNumber),
		Operator:      operator,
		Amount:        plan.Price,
		Status:        enums.RechargeStatusCompleted,
		TransactionID: NewTransactionID(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if db.IsUniqueViolation(err, "idx_recharges_transaction_id") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "duplicate transaction id")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inserting recharge")
	}

	s.metrics.ObserveRecharge(rec.Operator.String(), rec.Status.String(), rec.Amount)

	rec.Plan = plan
	return rec, nil
}

// ListByUser returns one user's ledger newest first with plan details
// expanded.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Recharge, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing user id")
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing recharges")
	}
	return recs, nil
}

// ListAll returns the full ledger newest first with user and plan
// details expanded.
func (s *service) ListAll(ctx context.Context, params pagination.Params) ([]models.Recharge, error) {
	recs, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing recharges")
	}
	return recs, nil
}

// OperatorStats aggregates completed recharges per carrier.
func (s *service) OperatorStats(ctx context.Context) ([]OperatorStat, error) {
	stats, err := s.repo.OperatorStats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating operator stats")
	}
	return stats, nil
}

// Stats summarizes users, plans and ledger totals for the dashboard.
func (s *service) Stats(ctx context.Context) (*AdminStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting users")
	}
	totalPlans, err := s.plans.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting plans")
	}
	totalRecharges, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting recharges")
	}
	totalRevenue, err := s.repo.TotalRevenue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing revenue")
	}

	return &AdminStats{
		TotalUsers:     totalUsers,
		TotalPlans:     totalPlans,
		TotalRecharges: totalRecharges,
		TotalRevenue:   totalRevenue,
	}, nil
}

func validateCreate(input CreateRechargeInput) error {
	missing := make([]string, 0, 3)
	if input.UserID == uuid.Nil {
		missing = append(missing, "userId")
	}
	if input.PlanID == uuid.Nil {
		missing = append(missing, "planId")
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		missing = append(missing, "phoneNumber")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required recharge fields").
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}
