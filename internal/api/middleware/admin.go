package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
)

const msgAdminOnly = "admin access required"

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// RequireAdmin пропускает только пользователей с ролью admin. Ставится после Auth
func RequireAdmin(profiles ProfileRepository, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := GetUserID(r.Context())
			if err != nil {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			profile, err := profiles.GetByID(r.Context(), userID)
			if err != nil && !errors.Is(err, profileRepo.ErrProfileNotFound) {
				logger.Error("%s %s - Failed to load profile user_id=%s: %v", r.Method, r.URL.Path, userID, err)
				handlers.RespondInternalError(w)
				return
			}
			if !profile.IsAdmin() {
				logger.Warn("%s %s - Admin access denied: user_id=%s", r.Method, r.URL.Path, userID)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
