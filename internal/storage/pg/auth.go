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

const pqUniqueViolation = "23505"

// =========================================================================
// Public methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new account row. A duplicate email surfaces as a
// 400 so registration reports it to the caller.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// User fetches an account by email using the connection pool.
func (s *Storage) User(email domain.Email) (domain.User, error) {
	return s.user(s.db, email)
}

// UpdateUser persists name, password hash and flags of an existing account.
func (s *Storage) UpdateUser(user domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateUser(tx, user)
	})
}

// GetOrCreateToken returns the account's durable token key, inserting
// candidateKey when no token exists yet. The no-op update on conflict
// makes RETURNING yield the existing key, so concurrent logins agree.
func (s *Storage) GetOrCreateToken(userId domain.UserId, candidateKey string) (string, error) {
	var key string
	err := s.db.QueryRow(`
        INSERT INTO auth_tokens(key, user_id) VALUES($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET user_id = auth_tokens.user_id
        RETURNING key`,
		candidateKey, userId,
	).Scan(&key)
	if err != nil {
		return "", fmt.Errorf("failed to get or create token: %w", err)
	}
	return key, nil
}

// UserByToken resolves a bearer token key to its owning account.
func (s *Storage) UserByToken(key string) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
        SELECT u.id, u.email, u.name, u.password_hash, u.is_active, u.is_staff, u.is_superuser
        FROM auth_tokens t
        JOIN users u ON u.id = t.user_id
        WHERE t.key = $1`,
		key,
	).Scan(&user.Id, &user.Email, &user.Name, &user.PassHash, &user.IsActive, &user.IsStaff, &user.IsSuperuser)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Token not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user by token: %w", err)
	}
	return user, nil
}

// =========================================================================
// Internal methods (core database logic, transaction-agnostic)
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	var id int64
	err := q.QueryRow(`
        INSERT INTO users(email, password_hash, name, is_active, is_staff, is_superuser)
        VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
		user.Email, user.PassHash, user.Name, user.IsActive, user.IsStaff, user.IsSuperuser,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "User with this email already exists", StatusCode: http.StatusBadRequest}
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) user(q Querier, email domain.Email) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(`
        SELECT id, email, name, password_hash, is_active, is_staff, is_superuser
        FROM users WHERE email = $1`,
		email,
	).Scan(&user.Id, &user.Email, &user.Name, &user.PassHash, &user.IsActive, &user.IsStaff, &user.IsSuperuser)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) updateUser(q Querier, user domain.User) error {
	result, err := q.Exec(`
        UPDATE users SET name = $1, password_hash = $2, is_active = $3, is_staff = $4, is_superuser = $5
        WHERE id = $6`,
		user.Name, user.PassHash, user.IsActive, user.IsStaff, user.IsSuperuser, user.Id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for user update: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found for update", StatusCode: http.StatusNotFound}
	}
	return nil
}
