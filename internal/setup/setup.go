package setup

import (
	"github.com/recipebox-dev/recipebox/internal/config"
	"github.com/recipebox-dev/recipebox/internal/domain"
	"github.com/recipebox-dev/recipebox/internal/handler"
	"github.com/recipebox-dev/recipebox/internal/middleware"
	"github.com/recipebox-dev/recipebox/internal/service"
	"github.com/recipebox-dev/recipebox/internal/storage/fs"
	"github.com/recipebox-dev/recipebox/internal/storage/pg"
)

// Dependencies holds all initialized collaborators of the service.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Media          *fs.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
}

// SetupDependencies initializes everything required to run the API.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.MediaRoot)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	auth := service.NewAuth(storage)
	tags := service.NewAttribute(storage, domain.TagKind)
	ingredients := service.NewAttribute(storage, domain.IngredientKind)
	recipes := service.NewRecipe(storage, media)

	h := handler.New(auth, tags, ingredients, recipes, cfg, storage)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Media:          media,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(auth),
	}, nil
}
