package service

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/recipebox-dev/recipebox/internal/domain"
	"github.com/recipebox-dev/recipebox/internal/errors"
	"github.com/recipebox-dev/recipebox/internal/logger"
	"github.com/recipebox-dev/recipebox/internal/utils"
)

const MinPasswordLen = 5

// to mock service in tests
type AuthService interface {
	Register(creds domain.Credentials, name string) (domain.User, error)
	CreateSuperuser(creds domain.Credentials) (domain.User, error)
	Login(creds domain.Credentials) (string, error)
	ResolveToken(key string) (domain.User, error)
	UpdateProfile(user domain.User, upd domain.ProfileUpdate) (domain.User, error)
}

type Auth struct {
	storage AuthStorage
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(email domain.Email) (domain.User, error)
	UpdateUser(user domain.User) error
	GetOrCreateToken(userId domain.UserId, candidateKey string) (string, error)
	UserByToken(key string) (domain.User, error)
}

func NewAuth(storage AuthStorage) *Auth {
	return &Auth{storage: storage}
}

// NormalizeEmail lower-cases the domain part of an email address.
// The local part is left untouched.
func NormalizeEmail(email domain.Email) domain.Email {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func validateCredentials(creds domain.Credentials) error {
	if strings.TrimSpace(creds.Email) == "" {
		return errors.Validation("Email is required")
	}
	if len(creds.Password) < MinPasswordLen {
		return errors.Validation("Password must be at least 5 characters")
	}
	return nil
}

// Register creates a new active account with a hashed password.
// The stored email has its domain part lower-cased.
func (a *Auth) Register(creds domain.Credentials, name string) (domain.User, error) {
	if err := validateCredentials(creds); err != nil {
		return domain.User{}, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	user := domain.User{
		Email:    NormalizeEmail(creds.Email),
		Name:     name,
		PassHash: string(passHash),
		IsActive: true,
	}
	id, err := a.storage.SaveUser(user)
	if err != nil {
		return domain.User{}, err
	}
	user.Id = id
	return user, nil
}

// CreateSuperuser delegates to Register and elevates the flags.
func (a *Auth) CreateSuperuser(creds domain.Credentials) (domain.User, error) {
	user, err := a.Register(creds, "")
	if err != nil {
		return domain.User{}, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := a.storage.UpdateUser(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login verifies credentials and returns the account's durable bearer
// token, creating one on first login. Unknown email and wrong password
// fail with the same error so account existence doesn't leak.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	badCredentials := &errors.ErrorWithStatusCode{
		Message:    "Unable to authenticate with provided credentials",
		StatusCode: http.StatusBadRequest,
	}

	user, err := a.storage.User(NormalizeEmail(creds.Email))
	if err != nil {
		if errors.IsNotFound(err) {
			return "", badCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", badCredentials
	}
	if !user.IsActive {
		return "", badCredentials
	}

	key, err := a.storage.GetOrCreateToken(user.Id, utils.GenerateTokenKey())
	if err != nil {
		logger.Log.Error("failed to issue token", "user_id", user.Id, "error", err)
		return "", err
	}
	return key, nil
}

// ResolveToken maps a bearer token back to its account. Any failure
// surfaces as 401 without detail.
func (a *Auth) ResolveToken(key string) (domain.User, error) {
	if key == "" {
		return domain.User{}, errors.Unauthorized("Invalid token")
	}
	user, err := a.storage.UserByToken(key)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.User{}, errors.Unauthorized("Invalid token")
		}
		return domain.User{}, err
	}
	if !user.IsActive {
		return domain.User{}, errors.Unauthorized("Invalid token")
	}
	return user, nil
}

// UpdateProfile applies merge-semantics changes to the requesting
// account. A supplied password is re-hashed before storage.
func (a *Auth) UpdateProfile(user domain.User, upd domain.ProfileUpdate) (domain.User, error) {
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Password != nil {
		if len(*upd.Password) < MinPasswordLen {
			return domain.User{}, errors.Validation("Password must be at least 5 characters")
		}
		passHash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Error("failed to hash password", "error", err)
			return domain.User{}, err
		}
		user.PassHash = string(passHash)
	}
	if err := a.storage.UpdateUser(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
