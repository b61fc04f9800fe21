package recommend

import (
	"context"
	"fmt"

	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
)

// DefaultTopN is the number of recommendations returned when no override
// is configured.
const DefaultTopN = 6

// Service ranks the active plan catalog against user preferences.
type Service interface {
	Recommend(ctx context.Context, q Query) ([]ScoredPlan, error)
}

type planLister interface {
	ListActive(ctx context.Context) ([]models.Plan, error)
}

type service struct {
	plans planLister
	topN  int
}

// NewService constructs a recommendation service instance.
func NewService(plans planLister, topN int) (Service, error) {
	if plans == nil {
		return nil, fmt.Errorf("plan lister required")
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &service{plans: plans, topN: topN}, nil
}

// Recommend scores every active plan and returns the top ranked subset.
func (s *service) Recommend(ctx context.Context, q Query) ([]ScoredPlan, error) {
	plans, err := s.plans.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing active plans")
	}
	return Rank(ScorePlans(plans, q), s.topN), nil
}
