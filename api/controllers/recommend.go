package controllers

import (
	"net/http"

	"github.com/arjunmehta/rechargehub-backend/api/responses"
	"github.com/arjunmehta/rechargehub-backend/api/validators"
	plan "github.com/arjunmehta/rechargehub-backend/internal/plans"
	"github.com/arjunmehta/rechargehub-backend/internal/recommend"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
	"github.com/arjunmehta/rechargehub-backend/pkg/logger"
)

// Preference fields are free-form; values outside the known tiers
// contribute zero score instead of failing validation.
type recommendRequest struct {
	Budget    string `json:"budget"`
	Usage     string `json:"usage"`
	Priority  string `json:"priority"`
	Validity  string `json:"validity"`
	DataNeeds string `json:"dataNeeds"`
}

type recommendationDTO struct {
	Plan   plan.PlanDTO `json:"plan"`
	Score  int          `json:"score"`
	Reason string       `json:"reason"`
}

// Recommend scores the active catalog against the caller's stated
// preferences and returns the best matches.
func Recommend(svc recommend.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recommend service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body recommendRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		scored, err := svc.Recommend(r.Context(), recommend.Query{
			Budget:    body.Budget,
			Usage:     body.Usage,
			Priority:  body.Priority,
			Validity:  body.Validity,
			DataNeeds: body.DataNeeds,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recommendations := make([]recommendationDTO, 0, len(scored))
		for _, s := range scored {
			recommendations = append(recommendations, recommendationDTO{
				Plan:   plan.ToDTO(s.Plan),
				Score:  s.Score,
				Reason: s.Reason,
			})
		}

		responses.WriteSuccess(w, map[string][]recommendationDTO{
			"recommendations": recommendations,
		})
	}
}
