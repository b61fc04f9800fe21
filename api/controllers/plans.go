package controllers

import (
	"net/http"

	"github.com/arjunmehta/rechargehub-backend/api/responses"
	"github.com/arjunmehta/rechargehub-backend/api/validators"
	plan "github.com/arjunmehta/rechargehub-backend/internal/plans"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
	"github.com/arjunmehta/rechargehub-backend/pkg/logger"
)

type createPlanRequest struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Validity    string `json:"validity"`
	Data        string `json:"data"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

type updatePlanRequest struct {
	Name        *string `json:"name"`
	Price       *int    `json:"price"`
	Validity    *string `json:"validity"`
	Data        *string `json:"data"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// PlansList returns the active catalog in insertion order.
func PlansList(svc plan.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "plan service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plans, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]plan.PlanDTO{
			"plans": plan.ToDTOs(plans),
		})
	}
}

// AdminPlansList returns every plan, deactivated ones included.
func AdminPlansList(svc plan.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "plan service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plans, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]plan.PlanDTO{
			"plans": plan.ToDTOs(plans),
		})
	}
}

// AdminPlansCreate adds a plan to the catalog.
func AdminPlansCreate(svc plan.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "plan service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createPlanRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), plan.CreatePlanInput{
			Name:        validators.SanitizeString(body.Name, 120),
			Price:       body.Price,
			Validity:    body.Validity,
			Data:        body.Data,
			Description: validators.SanitizeString(body.Description, 500),
			IsActive:    body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]plan.PlanDTO{
			"plan": plan.ToDTO(*created),
		})
	}
}

// AdminPlansUpdate applies a partial update to a plan.
func AdminPlansUpdate(svc plan.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "plan service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updatePlanRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, plan.UpdatePlanInput{
			Name:        body.Name,
			Price:       body.Price,
			Validity:    body.Validity,
			Data:        body.Data,
			Description: body.Description,
			IsActive:    body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]plan.PlanDTO{
			"plan": plan.ToDTO(*updated),
		})
	}
}

// AdminPlansDelete soft deletes a plan. Existing recharge records keep
// referencing it.
func AdminPlansDelete(svc plan.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "plan service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deactivated, err := svc.Deactivate(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]plan.PlanDTO{
			"plan": plan.ToDTO(*deactivated),
		})
	}
}
