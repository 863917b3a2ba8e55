package domain

// Attribute is a user-owned recipe attribute: a tag or an ingredient.
// Both share the same shape and the same append/list-only lifecycle.
type Attribute struct {
	Id    AttributeId
	Name  string
	Owner UserId
}

type Recipe struct {
	Id          RecipeId
	Owner       UserId
	Title       string
	TimeMinutes int
	Price       float64
	Link        string
	Image       string // relative media path, empty when no image uploaded

	// Id sets, always populated.
	TagIds        []AttributeId
	IngredientIds []AttributeId

	// Expanded associations, populated on the detail read path only.
	Tags        []Attribute
	Ingredients []Attribute
}

// RecipeData is the full write model. Used for create and for
// replace-semantics updates: zero values overwrite stored fields.
type RecipeData struct {
	Title       string
	TimeMinutes int
	Price       float64
	Link        string
	Tags        []AttributeId
	Ingredients []AttributeId
}

// RecipePatch is the merge write model. Nil fields keep their stored
// values; a non-nil Tags/Ingredients replaces that association set.
type RecipePatch struct {
	Title       *string
	TimeMinutes *int
	Price       *float64
	Link        *string
	Tags        *[]AttributeId
	Ingredients *[]AttributeId
}
