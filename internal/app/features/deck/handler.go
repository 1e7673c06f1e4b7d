// internal/app/features/deck/handler.go
package deck

import (
	"context"
	"net/http"
	"slices"

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

// Handler serves a household's deck: the card instances it has adopted and
// their assignment operations.
type Handler struct {
	Deck       repository.HouseholdCardRepository
	Households repository.HouseholdRepository
	Cards      repository.CardRepository
	Log        *zap.Logger
}

func NewHandler(deck repository.HouseholdCardRepository, households repository.HouseholdRepository, cards repository.CardRepository, logger *zap.Logger) *Handler {
	return &Handler{Deck: deck, Households: households, Cards: cards, Log: logger}
}

// Adopt handles POST /api/households/{id}/deck: instantiate a catalog
// template in this household. At most one instance per template may exist,
// so a duplicate adoption fails with CONFLICT before anything is written.
func (h *Handler) Adopt(w http.ResponseWriter, r *http.Request) {
	householdID := models.HouseholdID(chi.URLParam(r, "id"))

	var dto models.CreateHouseholdCardDTO
	if err := webjson.Decode(r, &dto); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	dto.HouseholdID = householdID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hh, err := h.member(ctx, r, householdID)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if dto.CurrentOwner != nil && !slices.Contains(hh.MemberIDs, *dto.CurrentOwner) {
		webjson.WriteError(w, h.Log, apperror.Validation("owner must be a household member"))
		return
	}

	// The template must exist in the catalog.
	if _, err := h.Cards.GetByID(ctx, dto.CardID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	exists, err := h.Deck.ExistsByCardID(ctx, householdID, dto.CardID)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if exists {
		webjson.WriteError(w, h.Log, apperror.Conflict("this card is already in the household's deck"))
		return
	}

	card, err := h.Deck.Create(ctx, dto)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Households.AddCard(ctx, householdID, card.CardID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusCreated, card)
}

// List handles GET /api/households/{id}/deck. `?owner=` narrows to one
// member's active cards.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	householdID := models.HouseholdID(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.member(ctx, r, householdID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	if owner := r.URL.Query().Get("owner"); owner != "" {
		cards, err := h.Deck.GetByOwner(ctx, householdID, models.UserID(owner))
		if err != nil {
			webjson.WriteError(w, h.Log, err)
			return
		}
		webjson.Write(w, http.StatusOK, cards)
		return
	}

	cards, err := h.Deck.GetByHouseholdID(ctx, householdID)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, cards)
}

// Get handles GET /api/deck/{cardID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	card, err := h.card(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, card)
}

// Update handles PATCH /api/deck/{cardID}: notes, active flag, or a raw
// owner change that bypasses history. Historized assignment goes through
// Assign.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto models.UpdateHouseholdCardDTO
	if err := webjson.Decode(r, &dto); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if dto.Notes != nil {
		clean := sanitize.Text(*dto.Notes)
		dto.Notes = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	card, err := h.card(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	updated, err := h.Deck.Update(ctx, card.ID, dto)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if dto.IsActive != nil {
		if err := h.syncActiveSet(ctx, updated); err != nil {
			webjson.WriteError(w, h.Log, err)
			return
		}
	}
	webjson.Write(w, http.StatusOK, updated)
}

// Assign handles POST /api/deck/{cardID}/assign: the historized ownership
// change. AssignedBy is always the acting user. A concurrent assignment
// surfaces as CONFLICT and the client retries against the fresh record.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	var dto models.AssignCardDTO
	if err := webjson.Decode(r, &dto); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	dto.AssignedBy = apiauth.UserID(r.Context())
	dto.Note = sanitize.Text(dto.Note)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	card, err := h.card(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if dto.AssignedTo != nil {
		hh, err := h.Households.GetByID(ctx, card.HouseholdID)
		if err != nil {
			webjson.WriteError(w, h.Log, err)
			return
		}
		if !slices.Contains(hh.MemberIDs, *dto.AssignedTo) {
			webjson.WriteError(w, h.Log, apperror.Validation("assignee must be a household member"))
			return
		}
	}

	updated, err := h.Deck.AssignCard(ctx, card.ID, dto)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/deck/{cardID}: remove the instance and drop
// the template from the household's active set.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	card, err := h.card(ctx, r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Deck.Delete(ctx, card.ID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Households.RemoveCard(ctx, card.HouseholdID, card.CardID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusNoContent, nil)
}

// card loads the routed card instance and checks the acting user belongs
// to its household.
func (h *Handler) card(ctx context.Context, r *http.Request) (models.HouseholdCard, error) {
	card, err := h.Deck.GetByID(ctx, models.HouseholdCardID(chi.URLParam(r, "cardID")))
	if err != nil {
		return models.HouseholdCard{}, err
	}
	if _, err := h.member(ctx, r, card.HouseholdID); err != nil {
		return models.HouseholdCard{}, err
	}
	return card, nil
}

func (h *Handler) member(ctx context.Context, r *http.Request, householdID models.HouseholdID) (models.Household, error) {
	hh, err := h.Households.GetByID(ctx, householdID)
	if err != nil {
		return models.Household{}, err
	}
	if !slices.Contains(hh.MemberIDs, apiauth.UserID(r.Context())) {
		return models.Household{}, apperror.New(apperror.CodeAuthorization, "not a member of this household")
	}
	return hh, nil
}

// syncActiveSet keeps the household's active-card set aligned with the
// instance's flag.
func (h *Handler) syncActiveSet(ctx context.Context, card models.HouseholdCard) error {
	if card.IsActive {
		return h.Households.AddCard(ctx, card.HouseholdID, card.CardID)
	}
	return h.Households.RemoveCard(ctx, card.HouseholdID, card.CardID)
}
