// internal/app/features/invitations/handler.go
package invitations

import (
	"context"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tandemhq/tandem/internal/app/system/apiauth"
	"github.com/tandemhq/tandem/internal/app/system/invitecode"
	"github.com/tandemhq/tandem/internal/app/system/ratelimit"
	"github.com/tandemhq/tandem/internal/app/system/timeouts"
	"github.com/tandemhq/tandem/internal/app/system/webjson"
	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/domain/repository"
)

// Handler serves the invitation flow: issue a code, look it up, redeem or
// decline it. Redeeming joins the acting user to the household on both
// sides of the membership relation.
type Handler struct {
	Invitations repository.InvitationRepository
	Households  repository.HouseholdRepository
	Users       repository.UserRepository
	Limiter     *ratelimit.RedeemLimiter
	Log         *zap.Logger
}

func NewHandler(invitations repository.InvitationRepository, households repository.HouseholdRepository, users repository.UserRepository, logger *zap.Logger) *Handler {
	return &Handler{
		Invitations: invitations,
		Households:  households,
		Users:       users,
		Limiter:     ratelimit.NewRedeemLimiter(),
		Log:         logger,
	}
}

// Create handles POST /api/invitations. Only household members can
// invite.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto models.CreateInvitationDTO
	if err := webjson.Decode(r, &dto); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	dto.InvitedBy = apiauth.UserID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hh, err := h.Households.GetByID(ctx, dto.HouseholdID)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if !slices.Contains(hh.MemberIDs, dto.InvitedBy) {
		webjson.WriteError(w, h.Log, apperror.New(apperror.CodeAuthorization, "only members can invite to a household"))
		return
	}

	inv, err := h.Invitations.Create(ctx, dto)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusCreated, inv)
}

// Get handles GET /api/invitations/{code}: preview an invitation before
// redeeming it.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !invitecode.Valid(code) {
		webjson.WriteError(w, h.Log, apperror.NotFound("invitation not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inv, err := h.Invitations.GetByInviteCode(ctx, code)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, inv)
}

type acceptRequest struct {
	Code string `json:"code" validate:"required"`
}

// Accept handles POST /api/invitations/accept: redeem a code and join the
// household. The invitation flips to accepted only when it is pending and
// unexpired; the membership write happens after, so a failed redeem never
// half-joins.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	if ok, reason := h.Limiter.Check(r, req.Code); !ok {
		h.Log.Warn("invitation redeem rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		webjson.Write(w, http.StatusTooManyRequests, map[string]string{"error": reason})
		return
	}

	actor := apiauth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.Invitations.Accept(ctx, req.Code)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	h.Limiter.ResetCode(req.Code)
	if err := h.Households.AddMember(ctx, inv.HouseholdID, actor); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Users.AddHousehold(ctx, actor, inv.HouseholdID); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, inv)
}

// Decline handles POST /api/invitations/{id}/decline.
func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inv, err := h.Invitations.Decline(ctx, models.InvitationID(chi.URLParam(r, "id")))
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, inv)
}

// ListForHousehold handles GET /api/invitations?household={id}. Members
// only.
func (h *Handler) ListForHousehold(w http.ResponseWriter, r *http.Request) {
	householdID := models.HouseholdID(r.URL.Query().Get("household"))
	if householdID == "" {
		webjson.WriteError(w, h.Log, apperror.Validation("household query parameter is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	hh, err := h.Households.GetByID(ctx, householdID)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if !slices.Contains(hh.MemberIDs, apiauth.UserID(r.Context())) {
		webjson.WriteError(w, h.Log, apperror.New(apperror.CodeAuthorization, "not a member of this household"))
		return
	}

	invs, err := h.Invitations.GetByHouseholdID(ctx, householdID)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, invs)
}
