// internal/app/features/cards/handler.go
package cards

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tandemhq/tandem/internal/app/system/timeouts"
	"github.com/tandemhq/tandem/internal/app/system/webjson"
	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/domain/repository"
)

// Handler serves the read-only card template catalog.
type Handler struct {
	Cards repository.CardRepository
	Log   *zap.Logger
}

func NewHandler(cards repository.CardRepository, logger *zap.Logger) *Handler {
	return &Handler{Cards: cards, Log: logger}
}

// List handles GET /api/cards. `?category=` filters to one category and
// `?ids=a,b,c` fetches a specific batch; the two filters are exclusive.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	category := r.URL.Query().Get("category")
	idsParam := r.URL.Query().Get("ids")
	if category != "" && idsParam != "" {
		webjson.WriteError(w, h.Log, apperror.Validation("category and ids filters are exclusive"))
		return
	}

	switch {
	case category != "":
		cat := models.CardCategory(category)
		if !cat.Valid() {
			webjson.WriteError(w, h.Log, apperror.Validation("unknown category"))
			return
		}
		tpls, err := h.Cards.GetByCategory(ctx, cat)
		if err != nil {
			webjson.WriteError(w, h.Log, err)
			return
		}
		webjson.Write(w, http.StatusOK, tpls)

	case idsParam != "":
		var ids []models.CardID
		for _, raw := range strings.Split(idsParam, ",") {
			if raw = strings.TrimSpace(raw); raw != "" {
				ids = append(ids, models.CardID(raw))
			}
		}
		tpls, err := h.Cards.GetByIDs(ctx, ids)
		if err != nil {
			webjson.WriteError(w, h.Log, err)
			return
		}
		webjson.Write(w, http.StatusOK, tpls)

	default:
		tpls, err := h.Cards.GetAll(ctx)
		if err != nil {
			webjson.WriteError(w, h.Log, err)
			return
		}
		webjson.Write(w, http.StatusOK, tpls)
	}
}

// Get handles GET /api/cards/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tpl, err := h.Cards.GetByID(ctx, models.CardID(chi.URLParam(r, "id")))
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, tpl)
}
