package projectmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/project-manager/internal/cache"
	"github.com/magabrotheeeer/project-manager/internal/config"
	"github.com/magabrotheeeer/project-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/project-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/project-manager/internal/lib/sl"
	"github.com/magabrotheeeer/project-manager/internal/models"
	authservice "github.com/magabrotheeeer/project-manager/internal/services/auth"
	projectservice "github.com/magabrotheeeer/project-manager/internal/services/project"
	userservice "github.com/magabrotheeeer/project-manager/internal/services/user"
	"github.com/magabrotheeeer/project-manager/internal/storage"
)

// memStore — хранилище в памяти с той же семантикой ошибок, что и storage.Storage.
type memStore struct {
	mu       sync.Mutex
	users    []models.User
	projects map[int64]models.Project
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{projects: map[int64]models.Project{}}
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) CreateUser(_ context.Context, u models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, storage.ErrUserExists
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.users = append(m.users, u)
	return &u, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) CreateProject(_ context.Context, p models.Project) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p.ID = m.nextID
	m.projects[p.ID] = p
	return &p, nil
}

func (m *memStore) GetProject(_ context.Context, id int64) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) ListProjects(_ context.Context) ([]*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]*models.Project, 0, len(m.projects))
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.projects[id]; ok {
			res = append(res, &p)
		}
	}
	return res, nil
}

func (m *memStore) UpdateProject(_ context.Context, p models.Project) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	m.projects[p.ID] = p
	return &p, nil
}

func (m *memStore) DeleteProject(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func newTestRouter(t *testing.T, enforce bool) (http.Handler, *memStore) {
	t.Helper()
	store := newMemStore()
	log := sl.Discard()
	cfg := &config.Config{
		JWTToken: config.JWTToken{JWTSecretKey: "test_secret", ExpireMinutes: 10, EnforceOnProjects: enforce},
		Auth:     config.Auth{RateLimit: 1000, RateBurst: 1000},
	}

	svc := Services{
		Auth:     authservice.NewAuthService(store, jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL()), log),
		Users:    userservice.NewService(store, false, log),
		Projects: projectservice.NewService(store, cache.Noop{}, time.Minute, log),
		Storage:  store,
	}
	r := chi.NewRouter()
	RegisterRoutes(r, log, cfg, svc, middlewarectx.NewMetrics(prometheus.NewRegistry()))
	return r, store
}

func do(t *testing.T, h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, h http.Handler, email string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":"John","surname":"Smith","email":%q,"password":"secret","password_confirmation":"secret"}`, email)
	w := do(t, h, http.MethodPost, "/user", body, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func loginUser(t *testing.T, h http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	return do(t, h, http.MethodPost, "/auth/token", form.Encode(),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
}

func TestRoutes_Root(t *testing.T) {
	h, _ := newTestRouter(t, false)

	w := do(t, h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_RegisterAndLogin(t *testing.T) {
	h, _ := newTestRouter(t, false)
	registerUser(t, h, "john@example.com")

	w := do(t, h, http.MethodPost, "/user",
		`{"name":"Jane","surname":"Smith","email":"john@example.com","password":"secret","password_confirmation":"secret"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodPost, "/user/",
		`{"name":"Jane","surname":"Smith","email":"jane@example.com","password":"secret","password_confirmation":"nope"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = loginUser(t, h, " john@example.com ", " secret ")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok models.TokenRead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	assert.Equal(t, 600, tok.ExpiresIn)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.NotEmpty(t, tok.AccessToken)

	w = loginUser(t, h, "john@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid password")

	w = loginUser(t, h, "nobody@example.com", "secret")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user")
}

func TestRoutes_ProjectLifecycle(t *testing.T) {
	h, _ := newTestRouter(t, false)

	ids := make([]int64, 0, 3)
	for i := range 3 {
		w := do(t, h, http.MethodPost, "/project",
			fmt.Sprintf(`{"name":"Project %d","description":"description %d"}`, i, i), nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var p models.ProjectRead
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.False(t, p.IsFinished)
		ids = append(ids, p.ID)
	}

	w := do(t, h, http.MethodGet, "/project/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.ProjectRead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 3)

	for _, id := range ids {
		w = do(t, h, http.MethodGet, fmt.Sprintf("/project/%d", id), "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w = do(t, h, http.MethodPost, "/project", `{"name":"ab","description":"too short name"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	path := fmt.Sprintf("/project/%d", ids[0])
	w = do(t, h, http.MethodPatch, path, `{"is_finished":true}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"name":"Project 0","description":"description 0","is_finished":true}`, ids[0]), w.Body.String())

	w = do(t, h, http.MethodPatch, path, `{"id":999}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodDelete, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Project deleted"}`, w.Body.String())

	w = do(t, h, http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/project/999999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Project not found")
}

func TestRoutes_EnforcedToken(t *testing.T) {
	h, store := newTestRouter(t, true)

	w := do(t, h, http.MethodGet, "/project", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	registerUser(t, h, "owner@example.com")
	w = loginUser(t, h, "owner@example.com", "secret")
	require.Equal(t, http.StatusOK, w.Code)
	var tok models.TokenRead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	auth := map[string]string{"Authorization": "Bearer " + tok.AccessToken}

	w = do(t, h, http.MethodPost, "/project", `{"name":"Owned","description":"owned project"}`, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p models.ProjectRead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	owner, err := store.GetUserByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	stored, err := store.GetProject(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, owner.ID, *stored.UserID)
}
