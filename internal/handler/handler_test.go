package handler_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recipebox-dev/recipebox/internal/config"
	"github.com/recipebox-dev/recipebox/internal/domain"
	"github.com/recipebox-dev/recipebox/internal/errors"
	"github.com/recipebox-dev/recipebox/internal/handler"
	"github.com/recipebox-dev/recipebox/internal/middleware"
	"github.com/recipebox-dev/recipebox/internal/router"
	"github.com/recipebox-dev/recipebox/internal/setup"
)

const testToken = "testtoken"

var testUser = domain.User{Id: 1, Email: "test@example.com", Name: "Test User", IsActive: true}

type MockAuthService struct {
	MockRegister        func(creds domain.Credentials, name string) (domain.User, error)
	MockCreateSuperuser func(creds domain.Credentials) (domain.User, error)
	MockLogin           func(creds domain.Credentials) (string, error)
	MockResolveToken    func(key string) (domain.User, error)
	MockUpdateProfile   func(user domain.User, upd domain.ProfileUpdate) (domain.User, error)
}

func (m *MockAuthService) Register(creds domain.Credentials, name string) (domain.User, error) {
	if m.MockRegister != nil {
		return m.MockRegister(creds, name)
	}
	return domain.User{}, nil
}

func (m *MockAuthService) CreateSuperuser(creds domain.Credentials) (domain.User, error) {
	if m.MockCreateSuperuser != nil {
		return m.MockCreateSuperuser(creds)
	}
	return domain.User{}, nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return "", nil
}

func (m *MockAuthService) ResolveToken(key string) (domain.User, error) {
	if m.MockResolveToken != nil {
		return m.MockResolveToken(key)
	}
	if key == testToken {
		return testUser, nil
	}
	return domain.User{}, errors.Unauthorized("Invalid token")
}

func (m *MockAuthService) UpdateProfile(user domain.User, upd domain.ProfileUpdate) (domain.User, error) {
	if m.MockUpdateProfile != nil {
		return m.MockUpdateProfile(user, upd)
	}
	return user, nil
}

type MockAttributeService struct {
	MockList   func(user domain.User) ([]domain.Attribute, error)
	MockCreate func(user domain.User, name string) (domain.Attribute, error)
}

func (m *MockAttributeService) List(user domain.User) ([]domain.Attribute, error) {
	if m.MockList != nil {
		return m.MockList(user)
	}
	return nil, nil
}

func (m *MockAttributeService) Create(user domain.User, name string) (domain.Attribute, error) {
	if m.MockCreate != nil {
		return m.MockCreate(user, name)
	}
	return domain.Attribute{Id: 1, Name: name, Owner: user.Id}, nil
}

type MockRecipeService struct {
	MockList        func(user domain.User) ([]domain.Recipe, error)
	MockCreate      func(user domain.User, data domain.RecipeData) (domain.Recipe, error)
	MockGet         func(user domain.User, id domain.RecipeId) (domain.Recipe, error)
	MockUpdate      func(user domain.User, id domain.RecipeId, data domain.RecipeData) (domain.Recipe, error)
	MockPatch       func(user domain.User, id domain.RecipeId, patch domain.RecipePatch) (domain.Recipe, error)
	MockDelete      func(user domain.User, id domain.RecipeId) error
	MockUploadImage func(user domain.User, id domain.RecipeId, payload []byte) (domain.Recipe, error)
}

func (m *MockRecipeService) List(user domain.User) ([]domain.Recipe, error) {
	if m.MockList != nil {
		return m.MockList(user)
	}
	return nil, nil
}

func (m *MockRecipeService) Create(user domain.User, data domain.RecipeData) (domain.Recipe, error) {
	if m.MockCreate != nil {
		return m.MockCreate(user, data)
	}
	return domain.Recipe{Id: 1, Owner: user.Id, Title: data.Title, TimeMinutes: data.TimeMinutes, Price: data.Price}, nil
}

func (m *MockRecipeService) Get(user domain.User, id domain.RecipeId) (domain.Recipe, error) {
	if m.MockGet != nil {
		return m.MockGet(user, id)
	}
	return domain.Recipe{Id: id, Owner: user.Id}, nil
}

func (m *MockRecipeService) Update(user domain.User, id domain.RecipeId, data domain.RecipeData) (domain.Recipe, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(user, id, data)
	}
	return domain.Recipe{Id: id, Owner: user.Id, Title: data.Title}, nil
}

func (m *MockRecipeService) Patch(user domain.User, id domain.RecipeId, patch domain.RecipePatch) (domain.Recipe, error) {
	if m.MockPatch != nil {
		return m.MockPatch(user, id, patch)
	}
	return domain.Recipe{Id: id, Owner: user.Id}, nil
}

func (m *MockRecipeService) Delete(user domain.User, id domain.RecipeId) error {
	if m.MockDelete != nil {
		return m.MockDelete(user, id)
	}
	return nil
}

func (m *MockRecipeService) UploadImage(user domain.User, id domain.RecipeId, payload []byte) (domain.Recipe, error) {
	if m.MockUploadImage != nil {
		return m.MockUploadImage(user, id, payload)
	}
	return domain.Recipe{Id: id, Owner: user.Id}, nil
}

type MockPinger struct {
	MockPing func() error
}

func (m *MockPinger) Ping() error {
	if m.MockPing != nil {
		return m.MockPing()
	}
	return nil
}

type testServices struct {
	auth        *MockAuthService
	tags        *MockAttributeService
	ingredients *MockAttributeService
	recipes     *MockRecipeService
	db          *MockPinger
}

func newTestRouter(svcs testServices) http.Handler {
	if svcs.auth == nil {
		svcs.auth = &MockAuthService{}
	}
	if svcs.tags == nil {
		svcs.tags = &MockAttributeService{}
	}
	if svcs.ingredients == nil {
		svcs.ingredients = &MockAttributeService{}
	}
	if svcs.recipes == nil {
		svcs.recipes = &MockRecipeService{}
	}
	if svcs.db == nil {
		svcs.db = &MockPinger{}
	}

	cfg := &config.Config{}
	cfg.Public.MaxImageSizeBytes = 10 << 20

	h := handler.New(svcs.auth, svcs.tags, svcs.ingredients, svcs.recipes, cfg, svcs.db)
	return router.New(&setup.Dependencies{
		Config:         cfg,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(svcs.auth),
	})
}

// doRequest performs a JSON request against the test router, attaching
// the bearer token when authed is set.
func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Token "+testToken)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v))
}

func multipartImage(t *testing.T, field string, payload []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	fw, err := mp.CreateFormFile(field, "upload.png")
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mp.Close())
	return &buf, mp.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}
