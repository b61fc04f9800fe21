package controllers

import (
	"net/http"

	"github.com/arjunmehta/rechargehub-backend/api/middleware"
	"github.com/arjunmehta/rechargehub-backend/api/responses"
	"github.com/arjunmehta/rechargehub-backend/api/validators"
	"github.com/arjunmehta/rechargehub-backend/internal/auth"
	user "github.com/arjunmehta/rechargehub-backend/internal/users"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
	"github.com/arjunmehta/rechargehub-backend/pkg/logger"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthRegister creates a new account and returns it without a token.
// Clients log in separately.
func AuthRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body registerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Register(r.Context(), auth.RegisterInput{
			Name:     validators.SanitizeString(body.Name, 120),
			Email:    body.Email,
			Phone:    validators.SanitizeString(body.Phone, 20),
			Password: body.Password,
		})
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "register failed", err)
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]user.UserDTO{
			"user": user.ToDTO(*created),
		})
	}
}

// AuthLogin verifies credentials and issues an access token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return loginHandler(svc, logg, false)
}

// AuthAdminLogin is the admin console entrypoint. Accounts without the
// admin role are rejected even with valid credentials.
func AuthAdminLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return loginHandler(svc, logg, true)
}

func loginHandler(svc auth.Service, logg *logger.Logger, admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		login := svc.Login
		if admin {
			login = svc.AdminLogin
		}

		result, err := login(r.Context(), body.Email, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"user":  user.ToDTO(result.User),
			"token": result.AccessToken,
		})
	}
}

// AuthLogout revokes the caller's session so the token stops working
// before it expires.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accessID := middleware.AccessIDFromContext(r.Context())
		if accessID == "" {
			err := pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
