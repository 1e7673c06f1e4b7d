// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tandemhq/tandem/internal/app/system/apiauth"
	"github.com/tandemhq/tandem/internal/app/system/sanitize"
	"github.com/tandemhq/tandem/internal/app/system/timeouts"
	"github.com/tandemhq/tandem/internal/app/system/webjson"
	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/domain/repository"
)

// Handler serves user profile endpoints. The profile id is the
// auth-provider subject, so creation and edits are only ever allowed for
// the acting user's own record.
type Handler struct {
	Users repository.UserRepository
	Log   *zap.Logger
}

func NewHandler(users repository.UserRepository, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// Create handles POST /api/users. The new profile's id is the bearer
// token's subject.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto models.CreateUserDTO
	if err := webjson.Decode(r, &dto); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if !dto.AuthProvider.Valid() {
		webjson.WriteError(w, h.Log, apperror.Validation("unknown auth provider"))
		return
	}
	dto.Name = sanitize.Text(dto.Name)
	if dto.Name == "" {
		webjson.WriteError(w, h.Log, apperror.Validation("name must not be empty"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Create(ctx, apiauth.UserID(r.Context()), dto)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusCreated, user)
}

// Get handles GET /api/users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := models.UserID(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, user)
}

// Update handles PATCH /api/users/{id}. Users can only edit themselves.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := models.UserID(chi.URLParam(r, "id"))
	if id != apiauth.UserID(r.Context()) {
		webjson.WriteError(w, h.Log, apperror.New(apperror.CodeAuthorization, "cannot edit another user's profile"))
		return
	}

	var dto models.UpdateUserDTO
	if err := webjson.Decode(r, &dto); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if dto.Name != nil {
		clean := sanitize.Text(*dto.Name)
		if clean == "" {
			webjson.WriteError(w, h.Log, apperror.Validation("name must not be empty"))
			return
		}
		dto.Name = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Update(ctx, id, dto)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, user)
}
