// internal/domain/repository/card_repository.go
package repository

import (
	"context"

	"github.com/tandemhq/tandem/internal/domain/models"
)

// CardRepository reads the immutable card-template catalog. Nothing in the
// application mutates templates; they are seeded at startup.
type CardRepository interface {
	// GetAll lists every template in the catalog.
	GetAll(ctx context.Context) ([]models.CardTemplate, error)

	// GetByID retrieves one template, or NOT_FOUND.
	GetByID(ctx context.Context, id models.CardID) (models.CardTemplate, error)

	// GetByIDs retrieves the templates matching ids. The id list is split
	// into store-sized chunks internally; results carry no order guarantee
	// relative to ids, and ids with no matching template are dropped.
	GetByIDs(ctx context.Context, ids []models.CardID) ([]models.CardTemplate, error)

	// GetByCategory lists the templates in one category.
	GetByCategory(ctx context.Context, category models.CardCategory) ([]models.CardTemplate, error)
}
