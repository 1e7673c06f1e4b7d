// internal/app/features/households/handler.go
package households

import (
	"context"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tandemhq/tandem/internal/app/balance"
	"github.com/tandemhq/tandem/internal/app/system/apiauth"
	"github.com/tandemhq/tandem/internal/app/system/sanitize"
	"github.com/tandemhq/tandem/internal/app/system/timeouts"
	"github.com/tandemhq/tandem/internal/app/system/webjson"
	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/domain/repository"
)

// Handler serves household endpoints. Membership changes always touch both
// sides of the relation: the household's member set and the user's
// household set.
type Handler struct {
	Households repository.HouseholdRepository
	Users      repository.UserRepository
	Deck       repository.HouseholdCardRepository
	Log        *zap.Logger
}

func NewHandler(households repository.HouseholdRepository, users repository.UserRepository, deck repository.HouseholdCardRepository, logger *zap.Logger) *Handler {
	return &Handler{Households: households, Users: users, Deck: deck, Log: logger}
}

// Create handles POST /api/households. The acting user becomes creator and
// first member.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto models.CreateHouseholdDTO
	if err := webjson.Decode(r, &dto); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	dto.Name = sanitize.Text(dto.Name)
	if dto.Name == "" {
		webjson.WriteError(w, h.Log, apperror.Validation("name must not be empty"))
		return
	}

	actor := apiauth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hh, err := h.Households.Create(ctx, actor, dto)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Users.AddHousehold(ctx, actor, hh.ID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusCreated, hh)
}

// List handles GET /api/households: the acting user's households.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	hhs, err := h.Households.GetByUserID(ctx, apiauth.UserID(r.Context()))
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, hhs)
}

// Get handles GET /api/households/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	hh, err := h.required(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, hh)
}

// Update handles PATCH /api/households/{id}. Members only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto models.UpdateHouseholdDTO
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

	hh, err := h.requiredMember(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	updated, err := h.Households.Update(ctx, hh.ID, dto)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/households/{id}. Creator only; cascades to
// the deck, invitations, and every member's household set.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	hh, err := h.required(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if hh.CreatedBy != apiauth.UserID(r.Context()) {
		webjson.WriteError(w, h.Log, apperror.New(apperror.CodeAuthorization, "only the creator can delete a household"))
		return
	}
	if err := h.Households.Delete(ctx, hh.ID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusNoContent, nil)
}

// Members handles GET /api/households/{id}/members: resolved profiles,
// silently dropping members whose user document is gone.
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hh, err := h.required(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	members, err := h.Households.GetMembers(ctx, hh.ID)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, members)
}

// AddMember handles POST /api/households/{id}/members/{userID}.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID := models.UserID(chi.URLParam(r, "userID"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hh, err := h.requiredMember(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Households.AddMember(ctx, hh.ID, userID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Users.AddHousehold(ctx, userID, hh.ID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusNoContent, nil)
}

// RemoveMember handles DELETE /api/households/{id}/members/{userID}.
// Members can remove themselves; the creator can remove anyone.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := models.UserID(chi.URLParam(r, "userID"))
	actor := apiauth.UserID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hh, err := h.required(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if actor != userID && actor != hh.CreatedBy {
		webjson.WriteError(w, h.Log, apperror.New(apperror.CodeAuthorization, "cannot remove another member"))
		return
	}
	if err := h.Households.RemoveMember(ctx, hh.ID, userID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Users.RemoveHousehold(ctx, userID, hh.ID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusNoContent, nil)
}

// Balance handles GET /api/households/{id}/balance: the derived workload
// split over the household's active deck.
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hh, err := h.required(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	cards, err := h.Deck.GetByHouseholdID(ctx, hh.ID)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, balance.Compute(hh.MemberIDs, cards))
}

// required loads the household from the route or maps to NOT_FOUND.
func (h *Handler) required(ctx context.Context, r *http.Request) (models.Household, error) {
	id := models.HouseholdID(chi.URLParam(r, "id"))
	return h.Households.GetByID(ctx, id)
}

// requiredMember loads the household and checks the acting user belongs to
// it.
func (h *Handler) requiredMember(ctx context.Context, r *http.Request) (models.Household, error) {
	hh, err := h.required(ctx, r)
	if err != nil {
		return models.Household{}, err
	}
	if !slices.Contains(hh.MemberIDs, apiauth.UserID(r.Context())) {
		return models.Household{}, apperror.New(apperror.CodeAuthorization, "not a member of this household")
	}
	return hh, nil
}
