package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox-dev/recipebox/internal/api"
	"github.com/recipebox-dev/recipebox/internal/domain"
	"github.com/recipebox-dev/recipebox/internal/errors"
)

func TestCreateUser(t *testing.T) {
	t.Run("success returns 201 without password", func(t *testing.T) {
		auth := &MockAuthService{
			MockRegister: func(creds domain.Credentials, name string) (domain.User, error) {
				assert.Equal(t, "test@example.com", creds.Email)
				assert.Equal(t, "testpass", creds.Password)
				assert.Equal(t, "Test Name", name)
				return domain.User{Id: 42, Email: creds.Email, Name: name}, nil
			},
		}
		r := newTestRouter(testServices{auth: auth})

		rr := doRequest(t, r, http.MethodPost, "/user/create", map[string]string{
			"email": "test@example.com", "password": "testpass", "name": "Test Name",
		}, false)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "testpass")
		assert.NotContains(t, rr.Body.String(), "password")

		var body api.UserResponse
		decodeBody(t, rr, &body)
		assert.Equal(t, int64(42), body.Id)
		assert.Equal(t, "test@example.com", body.Email)
		assert.Equal(t, "Test Name", body.Name)
	})

	t.Run("short password fails with 400", func(t *testing.T) {
		auth := &MockAuthService{
			MockRegister: func(creds domain.Credentials, name string) (domain.User, error) {
				t.Fatal("Register should not be called")
				return domain.User{}, nil
			},
		}
		r := newTestRouter(testServices{auth: auth})

		rr := doRequest(t, r, http.MethodPost, "/user/create", map[string]string{
			"email": "test@example.com", "password": "pw",
		}, false)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed email fails with 400", func(t *testing.T) {
		r := newTestRouter(testServices{})

		rr := doRequest(t, r, http.MethodPost, "/user/create", map[string]string{
			"email": "not-an-email", "password": "testpass",
		}, false)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email surfaces service error", func(t *testing.T) {
		auth := &MockAuthService{
			MockRegister: func(creds domain.Credentials, name string) (domain.User, error) {
				return domain.User{}, errors.Validation("User with this email already exists")
			},
		}
		r := newTestRouter(testServices{auth: auth})

		rr := doRequest(t, r, http.MethodPost, "/user/create", map[string]string{
			"email": "test@example.com", "password": "testpass",
		}, false)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "already exists")
	})
}

func TestCreateToken(t *testing.T) {
	t.Run("valid credentials return token", func(t *testing.T) {
		auth := &MockAuthService{
			MockLogin: func(creds domain.Credentials) (string, error) {
				assert.Equal(t, "test@example.com", creds.Email)
				return "issued-token", nil
			},
		}
		r := newTestRouter(testServices{auth: auth})

		rr := doRequest(t, r, http.MethodPost, "/user/token", map[string]string{
			"email": "test@example.com", "password": "testpass",
		}, false)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body api.TokenResponse
		decodeBody(t, rr, &body)
		assert.Equal(t, "issued-token", body.Token)
	})

	t.Run("bad credentials fail with 400", func(t *testing.T) {
		auth := &MockAuthService{
			MockLogin: func(creds domain.Credentials) (string, error) {
				return "", &errors.ErrorWithStatusCode{
					Message:    "Unable to authenticate with provided credentials",
					StatusCode: http.StatusBadRequest,
				}
			},
		}
		r := newTestRouter(testServices{auth: auth})

		rr := doRequest(t, r, http.MethodPost, "/user/token", map[string]string{
			"email": "test@example.com", "password": "wrong",
		}, false)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing fields fail with 400", func(t *testing.T) {
		r := newTestRouter(testServices{})

		rr := doRequest(t, r, http.MethodPost, "/user/token", map[string]string{
			"email": "test@example.com",
		}, false)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMe(t *testing.T) {
	t.Run("returns authenticated profile", func(t *testing.T) {
		r := newTestRouter(testServices{})

		rr := doRequest(t, r, http.MethodGet, "/user/me/", nil, true)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body api.ProfileResponse
		decodeBody(t, rr, &body)
		assert.Equal(t, testUser.Email, body.Email)
		assert.Equal(t, testUser.Name, body.Name)
	})

	t.Run("requires authentication", func(t *testing.T) {
		r := newTestRouter(testServices{})

		rr := doRequest(t, r, http.MethodGet, "/user/me/", nil, false)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpdateMe(t *testing.T) {
	t.Run("merges supplied fields", func(t *testing.T) {
		var gotUpd domain.ProfileUpdate
		auth := &MockAuthService{
			MockUpdateProfile: func(user domain.User, upd domain.ProfileUpdate) (domain.User, error) {
				gotUpd = upd
				user.Name = *upd.Name
				return user, nil
			},
		}
		r := newTestRouter(testServices{auth: auth})

		rr := doRequest(t, r, http.MethodPatch, "/user/me/", map[string]string{"name": "New Name"}, true)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotUpd.Name)
		assert.Equal(t, "New Name", *gotUpd.Name)
		assert.Nil(t, gotUpd.Password)

		var body api.ProfileResponse
		decodeBody(t, rr, &body)
		assert.Equal(t, "New Name", body.Name)
	})

	t.Run("short password fails with 400", func(t *testing.T) {
		r := newTestRouter(testServices{})

		rr := doRequest(t, r, http.MethodPatch, "/user/me/", map[string]string{"password": "pw"}, true)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		r := newTestRouter(testServices{})

		rr := doRequest(t, r, http.MethodPatch, "/user/me/", map[string]string{"name": "X"}, false)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
