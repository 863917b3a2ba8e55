package domain

type (
	Email    = string
	Password = string
	UserId   = int64

	AttributeId = int64
	RecipeId    = int64
)

// AttributeKind selects which owned recipe attribute a generic
// service or storage call operates on.
type AttributeKind string

const (
	TagKind        AttributeKind = "tag"
	IngredientKind AttributeKind = "ingredient"
)
