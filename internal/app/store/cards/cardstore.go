// internal/app/store/cards/cardstore.go
package cardstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/domain/repository"
)

// BatchSize caps the number of ids per $in query. Ten matches the query cap
// of the document stores this schema came from, and keeps any single query
// small.
const BatchSize = 10

// Store reads the card-template catalog. Templates are seeded at startup and
// never mutated by the application.
type Store struct {
	c *mongo.Collection
}

var _ repository.CardRepository = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("card_templates")}
}

func (s *Store) GetAll(ctx context.Context) ([]models.CardTemplate, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperror.Unknown("failed to fetch card templates", err)
	}
	defer cur.Close(ctx)

	var cards []models.CardTemplate
	if err := cur.All(ctx, &cards); err != nil {
		return nil, apperror.Unknown("failed to decode card templates", err)
	}
	return cards, nil
}

func (s *Store) GetByID(ctx context.Context, id models.CardID) (models.CardTemplate, error) {
	var card models.CardTemplate
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if err == mongo.ErrNoDocuments {
		return models.CardTemplate{}, apperror.NotFound("card template not found")
	}
	if err != nil {
		return models.CardTemplate{}, apperror.Unknown("failed to fetch card template", err)
	}
	return card, nil
}

// GetByIDs fetches the templates matching ids, splitting the list into
// BatchSize chunks and issuing one $in query per chunk concurrently. Results
// carry no order guarantee relative to ids; ids with no matching template
// are dropped; a fault on any chunk fails the whole call.
func (s *Store) GetByIDs(ctx context.Context, ids []models.CardID) ([]models.CardTemplate, error) {
	if len(ids) == 0 {
		return []models.CardTemplate{}, nil
	}

	var (
		mu      sync.Mutex
		cards   []models.CardTemplate
		g, gctx = errgroup.WithContext(ctx)
	)
	for _, chunk := range chunkIDs(ids, BatchSize) {
		g.Go(func() error {
			cur, err := s.c.Find(gctx, bson.M{"_id": bson.M{"$in": chunk}})
			if err != nil {
				return err
			}
			defer cur.Close(gctx)

			var batch []models.CardTemplate
			if err := cur.All(gctx, &batch); err != nil {
				return err
			}
			mu.Lock()
			cards = append(cards, batch...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperror.Unknown("failed to fetch card templates by ids", err)
	}
	return cards, nil
}

func (s *Store) GetByCategory(ctx context.Context, category models.CardCategory) ([]models.CardTemplate, error) {
	cur, err := s.c.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, apperror.Unknown("failed to fetch card templates by category", err)
	}
	defer cur.Close(ctx)

	var cards []models.CardTemplate
	if err := cur.All(ctx, &cards); err != nil {
		return nil, apperror.Unknown("failed to decode card templates", err)
	}
	return cards, nil
}

// chunkIDs splits ids into slices of at most size elements. The last chunk
// may be shorter.
func chunkIDs(ids []models.CardID, size int) [][]models.CardID {
	if size <= 0 {
		return [][]models.CardID{ids}
	}
	chunks := make([][]models.CardID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
