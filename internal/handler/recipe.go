package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/recipebox-dev/recipebox/internal/api"
	"github.com/recipebox-dev/recipebox/internal/domain"
	mw "github.com/recipebox-dev/recipebox/internal/middleware"
	"github.com/recipebox-dev/recipebox/internal/utils"
)

func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	recipes, err := h.recipes.List(*user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	items := make([]api.RecipeResponse, len(recipes))
	for i, rec := range recipes {
		items[i] = recipeResponse(rec)
	}
	writeJSON(w, http.StatusOK, api.RecipeListResponse{Recipes: items})
}

func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.RecipeRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	recipe, err := h.recipes.Create(*user, recipeData(body))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, recipeResponse(recipe))
}

// GetRecipe is the detail read path: associations come back expanded.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.recipeRequest(w, r)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(*user, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeDetailResponse(recipe))
}

// UpdateRecipe replaces every field; omitted optional fields reset and
// omitted association sets are cleared.
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.recipeRequest(w, r)
	if !ok {
		return
	}

	var body api.RecipeRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	recipe, err := h.recipes.Update(*user, id, recipeData(body))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeResponse(recipe))
}

// PatchRecipe merges only the supplied fields.
func (h *Handler) PatchRecipe(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.recipeRequest(w, r)
	if !ok {
		return
	}

	var body api.RecipePatchRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	recipe, err := h.recipes.Patch(*user, id, domain.RecipePatch{
		Title:       body.Title,
		TimeMinutes: body.TimeMinutes,
		Price:       body.Price,
		Link:        body.Link,
		Tags:        body.Tags,
		Ingredients: body.Ingredients,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeResponse(recipe))
}

func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.recipeRequest(w, r)
	if !ok {
		return
	}

	if err := h.recipes.Delete(*user, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// recipeRequest extracts the authenticated user and the recipe id
// from the request, writing the error response itself on failure.
func (h *Handler) recipeRequest(w http.ResponseWriter, r *http.Request) (*domain.User, domain.RecipeId, bool) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return nil, 0, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "recipe"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid recipe id: must be an integer", http.StatusBadRequest)
		return nil, 0, false
	}
	return user, id, true
}

func recipeData(body api.RecipeRequest) domain.RecipeData {
	return domain.RecipeData{
		Title:       body.Title,
		TimeMinutes: *body.TimeMinutes,
		Price:       *body.Price,
		Link:        body.Link,
		Tags:        body.Tags,
		Ingredients: body.Ingredients,
	}
}

func recipeResponse(r domain.Recipe) api.RecipeResponse {
	return api.RecipeResponse{
		Id:          r.Id,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        idsOrEmpty(r.TagIds),
		Ingredients: idsOrEmpty(r.IngredientIds),
		Image:       r.Image,
	}
}

func recipeDetailResponse(r domain.Recipe) api.RecipeDetailResponse {
	tags := make([]api.AttributeResponse, len(r.Tags))
	for i, t := range r.Tags {
		tags[i] = attributeResponse(t)
	}
	ingredients := make([]api.AttributeResponse, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = attributeResponse(ing)
	}
	return api.RecipeDetailResponse{
		Id:          r.Id,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        tags,
		Ingredients: ingredients,
		Image:       r.Image,
	}
}

func idsOrEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
