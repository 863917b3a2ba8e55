package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/recipebox-dev/recipebox/internal/domain"
	internal_errors "github.com/recipebox-dev/recipebox/internal/errors"
)

var errRecipeNotFound = &internal_errors.ErrorWithStatusCode{Message: "Recipe not found", StatusCode: http.StatusNotFound}

// =========================================================================
// Public methods (satisfy the service.RecipeStorage interface)
// =========================================================================

// Recipes returns the owner's recipes with associations as id sets.
// No explicit ordering beyond storage order.
func (s *Storage) Recipes(owner domain.UserId) ([]domain.Recipe, error) {
	rows, err := s.db.Query(`
        SELECT r.id, r.user_id, r.title, r.time_minutes, r.price, r.link, r.image,
               COALESCE(array_agg(DISTINCT rt.tag_id) FILTER (WHERE rt.tag_id IS NOT NULL), '{}'),
               COALESCE(array_agg(DISTINCT ri.ingredient_id) FILTER (WHERE ri.ingredient_id IS NOT NULL), '{}')
        FROM recipes r
        LEFT JOIN recipe_tags rt ON rt.recipe_id = r.id
        LEFT JOIN recipe_ingredients ri ON ri.recipe_id = r.id
        WHERE r.user_id = $1
        GROUP BY r.id`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		var r domain.Recipe
		var tagIds, ingredientIds pq.Int64Array
		if err := rows.Scan(&r.Id, &r.Owner, &r.Title, &r.TimeMinutes, &r.Price, &r.Link, &r.Image, &tagIds, &ingredientIds); err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		r.TagIds = tagIds
		r.IngredientIds = ingredientIds
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipe rows: %w", err)
	}
	return recipes, nil
}

// Recipe returns the detail shape: the row plus expanded tag and
// ingredient objects. A recipe owned by someone else is not found.
func (s *Storage) Recipe(owner domain.UserId, id domain.RecipeId) (domain.Recipe, error) {
	var r domain.Recipe
	err := s.db.QueryRow(`
        SELECT id, user_id, title, time_minutes, price, link, image
        FROM recipes WHERE id = $1 AND user_id = $2`,
		id, owner,
	).Scan(&r.Id, &r.Owner, &r.Title, &r.TimeMinutes, &r.Price, &r.Link, &r.Image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Recipe{}, errRecipeNotFound
		}
		return domain.Recipe{}, fmt.Errorf("failed to query recipe: %w", err)
	}

	r.Tags, err = s.recipeAttributes(s.db, id, domain.TagKind)
	if err != nil {
		return domain.Recipe{}, err
	}
	r.Ingredients, err = s.recipeAttributes(s.db, id, domain.IngredientKind)
	if err != nil {
		return domain.Recipe{}, err
	}

	r.TagIds = make([]domain.AttributeId, len(r.Tags))
	for i, t := range r.Tags {
		r.TagIds[i] = t.Id
	}
	r.IngredientIds = make([]domain.AttributeId, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		r.IngredientIds[i] = ing.Id
	}
	return r, nil
}

// CreateRecipe inserts the recipe row and its association rows in one
// transaction, so they commit or fail together.
func (s *Storage) CreateRecipe(owner domain.UserId, data domain.RecipeData) (domain.RecipeId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id domain.RecipeId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(`
            INSERT INTO recipes(user_id, title, time_minutes, price, link)
            VALUES($1, $2, $3, $4, $5) RETURNING id`,
			owner, data.Title, data.TimeMinutes, data.Price, data.Link,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert recipe: %w", err)
		}
		return s.replaceAssociations(tx, id, data.Tags, data.Ingredients)
	})
	return id, err
}

// UpdateRecipe replaces every field of the recipe. Associations are
// rewritten to exactly the supplied sets; empty sets clear them.
func (s *Storage) UpdateRecipe(owner domain.UserId, id domain.RecipeId, data domain.RecipeData) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
            UPDATE recipes SET title = $1, time_minutes = $2, price = $3, link = $4
            WHERE id = $5 AND user_id = $6`,
			data.Title, data.TimeMinutes, data.Price, data.Link, id, owner,
		)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if err := requireRowsAffected(result, "recipe update"); err != nil {
			return err
		}
		if err := s.clearAssociations(tx, id); err != nil {
			return err
		}
		return s.replaceAssociations(tx, id, data.Tags, data.Ingredients)
	})
}

// PatchRecipe merges only the supplied fields; nil pointers keep the
// stored values. Supplied association sets replace the stored ones.
func (s *Storage) PatchRecipe(owner domain.UserId, id domain.RecipeId, patch domain.RecipePatch) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
            UPDATE recipes SET
                title = COALESCE($1, title),
                time_minutes = COALESCE($2, time_minutes),
                price = COALESCE($3, price),
                link = COALESCE($4, link)
            WHERE id = $5 AND user_id = $6`,
			patch.Title, patch.TimeMinutes, patch.Price, patch.Link, id, owner,
		)
		if err != nil {
			return fmt.Errorf("failed to patch recipe: %w", err)
		}
		if err := requireRowsAffected(result, "recipe patch"); err != nil {
			return err
		}
		if patch.Tags != nil {
			if err := s.clearAttributeLinks(tx, id, domain.TagKind); err != nil {
				return err
			}
			if err := s.insertAttributeLinks(tx, id, domain.TagKind, *patch.Tags); err != nil {
				return err
			}
		}
		if patch.Ingredients != nil {
			if err := s.clearAttributeLinks(tx, id, domain.IngredientKind); err != nil {
				return err
			}
			if err := s.insertAttributeLinks(tx, id, domain.IngredientKind, *patch.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteRecipe removes the recipe; join rows cascade. It returns the
// stored image path so the caller can dispose of the file.
func (s *Storage) DeleteRecipe(owner domain.UserId, id domain.RecipeId) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var image string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(
			"DELETE FROM recipes WHERE id = $1 AND user_id = $2 RETURNING image",
			id, owner,
		).Scan(&image)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errRecipeNotFound
			}
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
	return image, err
}

// SetRecipeImage attaches an image path to the recipe and returns the
// superseded path, empty when the recipe had no image.
func (s *Storage) SetRecipeImage(owner domain.UserId, id domain.RecipeId, image string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var old string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(
			"SELECT image FROM recipes WHERE id = $1 AND user_id = $2 FOR UPDATE",
			id, owner,
		).Scan(&old)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errRecipeNotFound
			}
			return fmt.Errorf("failed to lock recipe for image update: %w", err)
		}
		if _, err := tx.Exec("UPDATE recipes SET image = $1 WHERE id = $2", image, id); err != nil {
			return fmt.Errorf("failed to set recipe image: %w", err)
		}
		return nil
	})
	return old, err
}

// =========================================================================
// Internal methods (core database logic, transaction-agnostic)
// =========================================================================

func (s *Storage) recipeAttributes(q Querier, id domain.RecipeId, kind domain.AttributeKind) ([]domain.Attribute, error) {
	table := attributeTable(kind)
	query := fmt.Sprintf(`
        SELECT a.id, a.name, a.user_id
        FROM %s a
        JOIN %s l ON l.%s = a.id
        WHERE l.recipe_id = $1
        ORDER BY a.name DESC`,
		table, linkTable(kind), linkColumn(kind))
	rows, err := q.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe %s: %w", table, err)
	}
	defer rows.Close()

	attrs := []domain.Attribute{}
	for rows.Next() {
		var a domain.Attribute
		if err := rows.Scan(&a.Id, &a.Name, &a.Owner); err != nil {
			return nil, fmt.Errorf("failed to scan recipe %s row: %w", table, err)
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}

func (s *Storage) replaceAssociations(tx *sql.Tx, id domain.RecipeId, tags, ingredients []domain.AttributeId) error {
	if err := s.insertAttributeLinks(tx, id, domain.TagKind, tags); err != nil {
		return err
	}
	return s.insertAttributeLinks(tx, id, domain.IngredientKind, ingredients)
}

func (s *Storage) clearAssociations(tx *sql.Tx, id domain.RecipeId) error {
	if err := s.clearAttributeLinks(tx, id, domain.TagKind); err != nil {
		return err
	}
	return s.clearAttributeLinks(tx, id, domain.IngredientKind)
}

func linkTable(kind domain.AttributeKind) string {
	if kind == domain.IngredientKind {
		return "recipe_ingredients"
	}
	return "recipe_tags"
}

func linkColumn(kind domain.AttributeKind) string {
	if kind == domain.IngredientKind {
		return "ingredient_id"
	}
	return "tag_id"
}

func (s *Storage) clearAttributeLinks(tx *sql.Tx, id domain.RecipeId, kind domain.AttributeKind) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE recipe_id = $1", linkTable(kind))
	if _, err := tx.Exec(query, id); err != nil {
		return fmt.Errorf("failed to clear %s: %w", linkTable(kind), err)
	}
	return nil
}

// insertAttributeLinks associates the given attribute ids with the
// recipe. Every id must exist; ownership of the attribute is not
// checked, matching the API's loose association rules.
func (s *Storage) insertAttributeLinks(tx *sql.Tx, id domain.RecipeId, kind domain.AttributeKind, ids []domain.AttributeId) error {
	ids = dedupIds(ids)
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
        INSERT INTO %s(recipe_id, %s)
        SELECT $1, id FROM %s WHERE id = ANY($2)`,
		linkTable(kind), linkColumn(kind), attributeTable(kind))
	result, err := tx.Exec(query, id, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", linkTable(kind), err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for %s: %w", linkTable(kind), err)
	}
	if inserted != int64(len(ids)) {
		return &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Unknown %s id", kind),
			StatusCode: http.StatusBadRequest,
		}
	}
	return nil
}

func dedupIds(ids []domain.AttributeId) []domain.AttributeId {
	seen := make(map[domain.AttributeId]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func requireRowsAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for %s: %w", op, err)
	}
	if rowsAffected == 0 {
		return errRecipeNotFound
	}
	return nil
}
