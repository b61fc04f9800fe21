package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/arjunmehta/rechargehub-backend/api/middleware"
	"github.com/arjunmehta/rechargehub-backend/api/responses"
	"github.com/arjunmehta/rechargehub-backend/api/validators"
	recharge "github.com/arjunmehta/rechargehub-backend/internal/recharges"
	user "github.com/arjunmehta/rechargehub-backend/internal/users"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
	"github.com/arjunmehta/rechargehub-backend/pkg/logger"
	"github.com/arjunmehta/rechargehub-backend/pkg/pagination"
)

func pageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Offset: offset}, nil
}

type createRechargeRequest struct {
	UserID      uuid.UUID `json:"userId"`
	PlanID      uuid.UUID `json:"planId"`
	PhoneNumber string    `json:"phoneNumber"`
	Operator    string    `json:"operator"`
}

// RechargeCreate records a recharge against a plan. The amount is
// snapshotted from the plan at creation time.
func RechargeCreate(svc recharge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recharge service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createRechargeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Non-admin callers may only recharge their own account.
		if middleware.RoleFromContext(r.Context()) != enums.UserRoleAdmin.String() {
			if actor := middleware.UserIDFromContext(r.Context()); actor != body.UserID.String() {
				err := pkgerrors.New(pkgerrors.CodeForbidden, "cannot recharge another account")
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		rec, err := svc.Create(r.Context(), recharge.CreateRechargeInput{
			UserID:      body.UserID,
			PlanID:      body.PlanID,
			PhoneNumber: validators.SanitizeString(body.PhoneNumber, 20),
			Operator:    body.Operator,
		})
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "recharge failed", err)
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]recharge.RechargeDTO{
			"recharge": recharge.ToDTO(*rec),
		})
	}
}

// RechargeHistory lists a user's recharges, newest first. Users may only
// read their own history; admins may read anyone's.
func RechargeHistory(svc recharge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recharge service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := validators.ParseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if middleware.RoleFromContext(r.Context()) != enums.UserRoleAdmin.String() {
			if actor := middleware.UserIDFromContext(r.Context()); actor != userID.String() {
				err := pkgerrors.New(pkgerrors.CodeForbidden, "cannot read another account's history")
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		recs, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]recharge.RechargeDTO{
			"recharges": recharge.ToDTOs(recs),
		})
	}
}

// AdminRecharges lists the ledger page by page with user details embedded.
func AdminRecharges(svc recharge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recharge service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recs, err := svc.ListAll(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]recharge.RechargeDTO{
			"recharges": recharge.ToDTOs(recs),
		})
	}
}

// AdminOperatorStats reports completed recharge counts per operator,
// busiest operator first.
func AdminOperatorStats(svc recharge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recharge service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.OperatorStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]recharge.OperatorStat{
			"operatorStats": stats,
		})
	}
}

// AdminStats returns dashboard totals for users, plans and the ledger.
func AdminStats(svc recharge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recharge service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]recharge.AdminStats{
			"stats": *stats,
		})
	}
}

// UserLister reads accounts for the admin directory.
type UserLister interface {
	ListAll(ctx context.Context, params pagination.Params) ([]models.User, error)
}

// AdminUsers lists accounts newest first, without password hashes.
func AdminUsers(users UserLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if users == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "user repository unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accounts, err := users.ListAll(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]user.UserDTO{
			"users": user.ToDTOs(accounts),
		})
	}
}
