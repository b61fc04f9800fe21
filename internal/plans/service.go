package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
)

// Service exposes catalog management operations.
type Service interface {
	ListActive(ctx context.Context) ([]models.Plan, error)
	ListAll(ctx context.Context) ([]models.Plan, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	Create(ctx context.Context, input CreatePlanInput) (*models.Plan, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePlanInput) (*models.Plan, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	Count(ctx context.Context) (int64, error)
}

// CreatePlanInput holds the validated payload to create a plan.
type CreatePlanInput struct {
	Name        string
	Price       int
	Validity    string
	Data        string
	Description string
	IsActive    *bool
}

// UpdatePlanInput holds optional mutation values for a plan.
type UpdatePlanInput struct {
	Name        *string
	Price       *int
	Validity    *string
	Data        *string
	Description *string
	IsActive    *bool
}

type service struct {
	repo Repository
}

// NewService constructs a plan service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("plan repository required")
	}
	return &service{repo: repo}, nil
}

// ListActive returns the storefront catalog in insertion order.
func (s *service) ListActive(ctx context.Context) ([]models.Plan, error) {
	plans, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing active plans")
	}
	return plans, nil
}

// ListAll returns every plan including deactivated ones.
func (s *service) ListAll(ctx context.Context) ([]models.Plan, error) {
	plans, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing plans")
	}
	return plans, nil
}

// Get loads a plan by id regardless of its active flag.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading plan")
	}
	return plan, nil
}

// Create validates and inserts a new catalog plan.
func (s *service) Create(ctx context.Context, input CreatePlanInput) (*models.Plan, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	plan := &models.Plan{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Validity:    strings.TrimSpace(input.Validity),
		Data:        strings.TrimSpace(input.Data),
		Description: strings.TrimSpace(input.Description),
		IsActive:    true,
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating plan")
	}
	return plan, nil
}

// Update applies the provided partial mutation to an existing plan.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePlanInput) (*models.Plan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan name cannot be empty")
		}
		plan.Name = name
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan price must be positive")
		}
		plan.Price = *input.Price
	}
	if input.Validity != nil {
		validity := strings.TrimSpace(*input.Validity)
		if validity == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan validity cannot be empty")
		}
		plan.Validity = validity
	}
	if input.Data != nil {
		data := strings.TrimSpace(*input.Data)
		if data == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan data cannot be empty")
		}
		plan.Data = data
	}
	if input.Description != nil {
		plan.Description = strings.TrimSpace(*input.Description)
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating plan")
	}
	return plan, nil
}

// Deactivate soft-deletes the plan so it stops appearing in the public
// catalog while existing recharges keep resolving it.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	plan.IsActive = false
	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivating plan")
	}
	return plan, nil
}

// Count reports the total number of plans, active or not.
func (s *service) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting plans")
	}
	return count, nil
}

func validateCreate(input CreatePlanInput) error {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Validity) == "" {
		missing = append(missing, "validity")
	}
	if strings.TrimSpace(input.Data) == "" {
		missing = append(missing, "data")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required plan fields").
			WithDetails(map[string]any{"fields": missing})
	}
	if input.Price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "plan price must be positive")
	}
	return nil
}
