package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/recipebox-dev/recipebox/internal/domain"
)

// attributeTable maps an attribute kind to its table. Only these two
// constants ever reach the query text, so no identifier quoting is needed.
func attributeTable(kind domain.AttributeKind) string {
	if kind == domain.IngredientKind {
		return "ingredients"
	}
	return "tags"
}

// Attributes returns the owner's attributes of the given kind,
// name-descending. Other accounts' rows are filtered in SQL.
func (s *Storage) Attributes(kind domain.AttributeKind, owner domain.UserId) ([]domain.Attribute, error) {
	query := fmt.Sprintf("SELECT id, name, user_id FROM %s WHERE user_id = $1 ORDER BY name DESC", attributeTable(kind))
	rows, err := s.db.Query(query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", attributeTable(kind), err)
	}
	defer rows.Close()

	attrs := []domain.Attribute{}
	for rows.Next() {
		var a domain.Attribute
		if err := rows.Scan(&a.Id, &a.Name, &a.Owner); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", attributeTable(kind), err)
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", attributeTable(kind), err)
	}
	return attrs, nil
}

// CreateAttribute inserts an attribute row for its owner.
func (s *Storage) CreateAttribute(kind domain.AttributeKind, attr domain.Attribute) (domain.AttributeId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id domain.AttributeId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf("INSERT INTO %s(name, user_id) VALUES($1, $2) RETURNING id", attributeTable(kind))
		if err := tx.QueryRow(query, attr.Name, attr.Owner).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", attributeTable(kind), err)
		}
		return nil
	})
	return id, err
}
