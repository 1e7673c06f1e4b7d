// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	cardsfeature "github.com/tandemhq/tandem/internal/app/features/cards"
	deckfeature "github.com/tandemhq/tandem/internal/app/features/deck"
	healthfeature "github.com/tandemhq/tandem/internal/app/features/health"
	householdsfeature "github.com/tandemhq/tandem/internal/app/features/households"
	invitationsfeature "github.com/tandemhq/tandem/internal/app/features/invitations"
	usersfeature "github.com/tandemhq/tandem/internal/app/features/users"
	cardstore "github.com/tandemhq/tandem/internal/app/store/cards"
	householdstore "github.com/tandemhq/tandem/internal/app/store/households"
	householdcardstore "github.com/tandemhq/tandem/internal/app/store/householdcards"
	invitationstore "github.com/tandemhq/tandem/internal/app/store/invitations"
	userstore "github.com/tandemhq/tandem/internal/app/store/users"
	"github.com/tandemhq/tandem/internal/app/system/apiauth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Tandem builds the store layer over the
// connected database, wires each feature's handler, and mounts the feature
// routers: the health endpoint is public, everything under /api sits
// behind the bearer-token middleware.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	households := householdstore.New(db)
	cards := cardstore.New(db)
	deck := householdcardstore.New(db)
	invitations := invitationstore.New(db)

	auth := apiauth.New(appCfg.TokenSecret)

	userHandler := usersfeature.NewHandler(users, logger)
	householdHandler := householdsfeature.NewHandler(households, users, deck, logger)
	cardHandler := cardsfeature.NewHandler(cards, logger)
	deckHandler := deckfeature.NewHandler(deck, households, cards, logger)
	invitationHandler := invitationsfeature.NewHandler(invitations, households, users, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		api.Use(auth.Require)
		api.Mount("/users", usersfeature.Routes(userHandler))
		api.Mount("/households", householdsfeature.Routes(householdHandler, deckHandler))
		api.Mount("/cards", cardsfeature.Routes(cardHandler))
		api.Mount("/deck", deckfeature.Routes(deckHandler))
		api.Mount("/invitations", invitationsfeature.Routes(invitationHandler))
	})

	return r, nil
}
