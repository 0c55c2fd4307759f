package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"radioplayer/internal/database"
	"radioplayer/internal/domain"
	"radioplayer/internal/middleware"
	"radioplayer/internal/modules/auth"
	"radioplayer/internal/modules/directory"
	"radioplayer/internal/modules/pages"
	"radioplayer/internal/modules/station"
	jwtsvc "radioplayer/internal/pkg/jwt"
	"radioplayer/internal/repository"
)

type testEnv struct {
	router *gin.Engine
}

// envelope matches the flat {success,...} wire format of every endpoint.
type envelope struct {
	Success   bool                `json:"success"`
	Error     string              `json:"error"`
	Message   string              `json:"message"`
	Token     string              `json:"token"`
	Count     int                 `json:"count"`
	Stations  []directory.Station `json:"stations"`
	Favorites []domain.Station    `json:"favorites"`
	Recent    []map[string]any    `json:"recent"`
	Station   *domain.Station     `json:"station"`
	User      *struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Genres    []string `json:"genres"`
	Countries []string `json:"countries"`
}

// setupEnv builds the full application against an in-memory database and
// the given directory base URL, mirroring the production wiring.
func setupEnv(t *testing.T, directoryURL string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	db.Logger = logger.Default.LogMode(logger.Silent)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	stationRepo := repository.NewStationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	recentRepo := repository.NewRecentlyPlayedRepository(db)

	j := jwtsvc.New("e2e-test-secret", time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		SameSite: http.SameSiteLaxMode,
		TTL:      time.Hour,
	})

	stationService := station.NewService(stationRepo, favoriteRepo, recentRepo)
	stationHandler := station.NewHandler(stationService)

	directoryClient := directory.NewClient(directoryURL, 200*time.Millisecond)
	directoryHandler := directory.NewHandler(directoryClient)

	pagesHandler := pages.NewHandler(authService)

	_, err = stationService.EnsureDemoStation(context.Background())
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(pages.Templates())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CurrentUser(j))

	pagesHandler.RegisterRoutes(r)
	authHandler.RegisterRoutes(r)

	api := r.Group("/api")
	directoryHandler.RegisterRoutes(api)
	protected := api.Group("/")
	protected.Use(middleware.RequireAuth())
	stationHandler.RegisterRoutes(api, protected)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Endpoint not found"})
	})

	return &testEnv{router: r}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (e *testEnv) signUp(t *testing.T, username, password string) string {
	t.Helper()
	w, env := e.do(t, "POST", "/signup", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func unreachableURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	return server.URL
}

func TestFavoriteLifecycle(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))

	token := env.signUp(t, "alice", "pw123")

	w, resp := env.do(t, "POST", "/api/favorites", token, gin.H{"url": "http://x/stream", "name": "Test FM"})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Station)
	stationID := resp.Station.ID

	w, resp = env.do(t, "GET", "/api/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Favorites, 1)
	assert.Equal(t, "http://x/stream", resp.Favorites[0].URL)

	w, resp = env.do(t, "DELETE", fmt.Sprintf("/api/favorites/%d", stationID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	w, resp = env.do(t, "GET", "/api/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Favorites)
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))
	token := env.signUp(t, "alice", "pw123")

	w, first := env.do(t, "POST", "/api/favorites", token, gin.H{"url": "http://x/stream"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Station added to favorites", first.Message)

	w, second := env.do(t, "POST", "/api/favorites", token, gin.H{"url": "http://x/stream"})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, second.Success)
	assert.Equal(t, "Station is already in favorites", second.Message)

	_, list := env.do(t, "GET", "/api/favorites", token, nil)
	assert.Len(t, list.Favorites, 1)
}

func TestFavoriteValidationAndAuth(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))

	// anonymous writes are rejected
	w, _ := env.do(t, "POST", "/api/favorites", "", gin.H{"url": "http://x/stream"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = env.do(t, "DELETE", "/api/favorites/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := env.signUp(t, "alice", "pw123")

	w, resp := env.do(t, "POST", "/api/favorites", token, gin.H{"name": "no reference"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)

	w, _ = env.do(t, "POST", "/api/favorites", token, gin.H{"id": 99999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(t, "DELETE", "/api/favorites/99999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDemoStationCannotBeRemoved(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))
	token := env.signUp(t, "alice", "pw123")

	// find the demo station through the legacy global favorites view
	w, resp := env.do(t, "GET", "/api/favorites", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Favorites, 1)
	demoID := resp.Favorites[0].ID
	require.Equal(t, domain.DemoStationURL, resp.Favorites[0].URL)

	// forbidden whether or not the user ever favorited it
	w, resp = env.do(t, "DELETE", fmt.Sprintf("/api/favorites/%d", demoID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, resp.Success)

	_, _ = env.do(t, "POST", "/api/favorites", token, gin.H{"id": demoID})
	w, _ = env.do(t, "DELETE", fmt.Sprintf("/api/favorites/%d", demoID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRecentlyPlayedFlow(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))

	// anonymous read is an empty success, not an error
	w, resp := env.do(t, "GET", "/api/recently-played", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	assert.Empty(t, resp.Recent)

	// anonymous write is rejected
	w, _ = env.do(t, "POST", "/api/recently-played", "", gin.H{"station_url": "url1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := env.signUp(t, "alice", "pw123")

	w, _ = env.do(t, "POST", "/api/recently-played", token, gin.H{"station_name": "Name"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing url")

	for _, url := range []string{"url1", "url2", "url1"} {
		w, _ = env.do(t, "POST", "/api/recently-played", token, gin.H{"station_name": "Name", "station_url": url})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, resp = env.do(t, "GET", "/api/recently-played", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Recent, 2, "url1 must be deduplicated")
	assert.Equal(t, "url1", resp.Recent[0]["station_url"], "replayed station moves to the top")
}

func TestPopularFallsBackToDemoEntry(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))

	w, resp := env.do(t, "GET", "/api/popular", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	require.Equal(t, 1, resp.Count)
	require.Len(t, resp.Stations, 1)
	assert.Equal(t, domain.DemoStationURL, resp.Stations[0].URL)
}

func TestSearchProxiesDirectory(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stations/search":
			w.Write([]byte(`[{"name":"Jazz24","url":"http://jazz24.example/stream","tags":"jazz","clickcount":42}]`))
		case "/tags":
			w.Write([]byte(`[{"name":"jazz"}]`))
		case "/countries":
			w.Write([]byte(`[{"name":"Norway"}]`))
		}
	}))
	defer upstream.Close()

	env := setupEnv(t, upstream.URL)

	w, resp := env.do(t, "GET", "/api/search?q=jazz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Jazz24", resp.Stations[0].Name)

	_, resp = env.do(t, "GET", "/api/genres", "", nil)
	assert.Equal(t, []string{"jazz"}, resp.Genres)

	_, resp = env.do(t, "GET", "/api/countries", "", nil)
	assert.Equal(t, []string{"Norway"}, resp.Countries)
}

func TestAuthFlows(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))

	token := env.signUp(t, "alice", "pw123")
	require.NotEmpty(t, token)

	// duplicate username
	w, resp := env.do(t, "POST", "/signup", "", gin.H{"username": "Alice", "password": "other"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)

	// bad credentials
	w, _ = env.do(t, "POST", "/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = env.do(t, "POST", "/login", "", gin.H{"username": "nobody", "password": "pw123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// good login returns a fresh token and sets the session cookie
	w, resp = env.do(t, "POST", "/login", "", gin.H{"username": "alice", "password": "pw123"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice", resp.User.Username)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookieName+"=")
}

func TestSignupPasswordRules(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))

	// any non-empty password is accepted, however short
	w, resp := env.do(t, "POST", "/signup", "", gin.H{"username": "bob", "password": "abc"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)

	w, _ = env.do(t, "POST", "/login", "", gin.H{"username": "bob", "password": "abc"})
	assert.Equal(t, http.StatusOK, w.Code)

	// a missing or empty password is rejected before the service runs
	w, resp = env.do(t, "POST", "/signup", "", gin.H{"username": "carol"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)

	w, _ = env.do(t, "POST", "/signup", "", gin.H{"username": "carol", "password": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownEndpointEnvelope(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))

	w, resp := env.do(t, "GET", "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Endpoint not found", resp.Error)
}

func TestIndexPageRendersDemoStation(t *testing.T) {
	env := setupEnv(t, unreachableURL(t))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), domain.DemoStationURL)
	assert.Contains(t, w.Body.String(), "Sign up")
}
