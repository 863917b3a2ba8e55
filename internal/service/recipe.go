package service

import (
	"bytes"

	"github.com/recipebox-dev/recipebox/internal/domain"
	"github.com/recipebox-dev/recipebox/internal/logger"
	"github.com/recipebox-dev/recipebox/internal/validation"
)

// to mock service in tests
type RecipeService interface {
	List(user domain.User) ([]domain.Recipe, error)
	Create(user domain.User, data domain.RecipeData) (domain.Recipe, error)
	Get(user domain.User, id domain.RecipeId) (domain.Recipe, error)
	Update(user domain.User, id domain.RecipeId, data domain.RecipeData) (domain.Recipe, error)
	Patch(user domain.User, id domain.RecipeId, patch domain.RecipePatch) (domain.Recipe, error)
	Delete(user domain.User, id domain.RecipeId) error
	UploadImage(user domain.User, id domain.RecipeId, payload []byte) (domain.Recipe, error)
}

type Recipe struct {
	storage RecipeStorage
	media   MediaStorage
}

type RecipeStorage interface {
	Recipes(owner domain.UserId) ([]domain.Recipe, error)
	Recipe(owner domain.UserId, id domain.RecipeId) (domain.Recipe, error)
	CreateRecipe(owner domain.UserId, data domain.RecipeData) (domain.RecipeId, error)
	UpdateRecipe(owner domain.UserId, id domain.RecipeId, data domain.RecipeData) error
	PatchRecipe(owner domain.UserId, id domain.RecipeId, patch domain.RecipePatch) error
	DeleteRecipe(owner domain.UserId, id domain.RecipeId) (oldImage string, err error)
	SetRecipeImage(owner domain.UserId, id domain.RecipeId, image string) (oldImage string, err error)
}

func NewRecipe(storage RecipeStorage, media MediaStorage) *Recipe {
	return &Recipe{storage: storage, media: media}
}

// List returns the requester's recipes in natural storage order,
// associations as bare id sets.
func (s *Recipe) List(user domain.User) ([]domain.Recipe, error) {
	return s.storage.Recipes(user.Id)
}

// Create persists a recipe owned by the requester along with its
// tag/ingredient associations in one transaction.
func (s *Recipe) Create(user domain.User, data domain.RecipeData) (domain.Recipe, error) {
	id, err := s.storage.CreateRecipe(user.Id, data)
	if err != nil {
		return domain.Recipe{}, err
	}
	return s.storage.Recipe(user.Id, id)
}

// Get returns the detail shape with expanded associations. A recipe
// outside the requester's ownership behaves as not found.
func (s *Recipe) Get(user domain.User, id domain.RecipeId) (domain.Recipe, error) {
	return s.storage.Recipe(user.Id, id)
}

// Update replaces every field. Associations omitted from data are
// cleared, matching replace semantics.
func (s *Recipe) Update(user domain.User, id domain.RecipeId, data domain.RecipeData) (domain.Recipe, error) {
	if err := s.storage.UpdateRecipe(user.Id, id, data); err != nil {
		return domain.Recipe{}, err
	}
	return s.storage.Recipe(user.Id, id)
}

// Patch merges only the supplied fields into the stored recipe.
func (s *Recipe) Patch(user domain.User, id domain.RecipeId, patch domain.RecipePatch) (domain.Recipe, error) {
	if err := s.storage.PatchRecipe(user.Id, id, patch); err != nil {
		return domain.Recipe{}, err
	}
	return s.storage.Recipe(user.Id, id)
}

// Delete removes the recipe and its stored image file, if any.
func (s *Recipe) Delete(user domain.User, id domain.RecipeId) error {
	oldImage, err := s.storage.DeleteRecipe(user.Id, id)
	if err != nil {
		return err
	}
	if oldImage != "" {
		if err := s.media.Delete(oldImage); err != nil {
			// Row is gone; a stray file is not worth failing the request
			logger.Log.Warn("failed to remove recipe image file", "path", oldImage, "error", err)
		}
	}
	return nil
}

// UploadImage validates that payload is a real image, stores it and
// attaches it to the recipe. A previous image is superseded and its
// file removed. Nothing is written to storage for invalid payloads.
func (s *Recipe) UploadImage(user domain.User, id domain.RecipeId, payload []byte) (domain.Recipe, error) {
	// Ownership check happens before any write
	if _, err := s.storage.Recipe(user.Id, id); err != nil {
		return domain.Recipe{}, err
	}

	ext, err := validation.ValidateImage(payload)
	if err != nil {
		return domain.Recipe{}, err
	}

	path, err := s.media.Save(bytes.NewReader(payload), ext)
	if err != nil {
		return domain.Recipe{}, err
	}

	oldImage, err := s.storage.SetRecipeImage(user.Id, id, path)
	if err != nil {
		// DB update failed, don't leave the new file orphaned
		if cleanupErr := s.media.Delete(path); cleanupErr != nil {
			logger.Log.Warn("failed to remove orphaned image file", "path", path, "error", cleanupErr)
		}
		return domain.Recipe{}, err
	}
	if oldImage != "" && oldImage != path {
		if err := s.media.Delete(oldImage); err != nil {
			logger.Log.Warn("failed to remove superseded image file", "path", oldImage, "error", err)
		}
	}

	return s.storage.Recipe(user.Id, id)
}
