package api

type CreateAttributeRequest struct {
	Name string `json:"name" validate:"required"`
}

type AttributeResponse struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

// RecipeRequest is the write model for create and for full (replace
// semantics) updates: omitted optional fields reset to empty.
type RecipeRequest struct {
	Title       string   `json:"title" validate:"required"`
	TimeMinutes *int     `json:"time_minutes" validate:"required,gte=0"`
	Price       *float64 `json:"price" validate:"required,gte=0,lte=999.99"`
	Link        string   `json:"link"`
	Tags        []int64  `json:"tags"`
	Ingredients []int64  `json:"ingredients"`
}

// RecipePatchRequest is the merge write model: nil fields are left
// untouched, supplied association sets replace the stored ones.
type RecipePatchRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0,lte=999.99"`
	Link        *string  `json:"link"`
	Tags        *[]int64 `json:"tags"`
	Ingredients *[]int64 `json:"ingredients"`
}

// RecipeResponse is the summary shape: associations as bare id sets.
type RecipeResponse struct {
	Id          int64   `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Tags        []int64 `json:"tags"`
	Ingredients []int64 `json:"ingredients"`
	Image       string  `json:"image,omitempty"`
}

// RecipeDetailResponse expands tags and ingredients to full objects.
// Only the detail read path returns this shape.
type RecipeDetailResponse struct {
	Id          int64               `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       float64             `json:"price"`
	Link        string              `json:"link"`
	Tags        []AttributeResponse `json:"tags"`
	Ingredients []AttributeResponse `json:"ingredients"`
	Image       string              `json:"image,omitempty"`
}

type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
}

type AttributeListResponse struct {
	Items []AttributeResponse `json:"items"`
}
