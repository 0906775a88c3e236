package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	apirest "socialnet/api/rest"
	"socialnet/api/sse"
	"socialnet/audit"
	"socialnet/auth"
	"socialnet/cache"
	"socialnet/config"
	"socialnet/event"
	"socialnet/feed"
	"socialnet/graph"
	mw "socialnet/middleware"
	"socialnet/repository"
	"socialnet/scheduler"
	"socialnet/social"
	"socialnet/testutil"
)

// TestServer wraps a real HTTP server with every subsystem wired together.
type TestServer struct {
	DB       *gorm.DB
	Cache    cache.Cache
	PubSub   cache.PubSub
	Bus      *event.Bus
	Svc      *social.Service
	Recorder *audit.Recorder
	Server   *httptest.Server
	URL      string // http://127.0.0.1:<port>
	Sec      config.SecurityConfig
	sched    *scheduler.Scheduler
}

// NewTestServer creates a fully wired server for integration testing.
// It mirrors the dependency wiring in main.go.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// ---- Infrastructure ----
	db := testutil.SetupTestDB(t)
	c, pubsub := testutil.SetupTestCache(t)
	logger := zap.NewNop()

	sec := config.SecurityConfig{
		JWTSecret:      "integration-test-secret",
		JWTTTLH:        72 * time.Hour,
		BcryptCost:     4, // fast hashing in tests
		RateLimitRPS:   1000,
		RateLimitBurst: 2000,
	}

	// ---- Bus and observers ----
	bus := event.NewBus()
	recorder := audit.NewRecorder(db, logger)
	bus.Subscribe(recorder)
	bus.Subscribe(feed.NewBridge(pubsub, logger))

	// ---- Service ----
	svc := social.NewService(social.Config{
		Users:    repository.NewUsers(db),
		Friends:  repository.NewFriendships(db),
		Requests: repository.NewFriendRequests(db),
		Messages: repository.NewMessages(db),
		Hasher:   auth.NewBcryptHasher(sec.BcryptCost),
		Bus:      bus,
		Logger:   logger,
		Graph:    graph.Options{},
	})

	sched := scheduler.New(logger)

	// ---- Handlers ----
	authH := apirest.NewAuthHandler(svc, c, sec)
	userH := apirest.NewUserHandler(svc)
	friendH := apirest.NewFriendHandler(svc)
	requestH := apirest.NewRequestHandler(svc)
	messageH := apirest.NewMessageHandler(svc)
	analyticsH := apirest.NewAnalyticsHandler(svc, c, logger)
	sseH := sse.NewHandler(pubsub, c, sec, logger)

	r := gin.New()
	r.Use(mw.TraceID(), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(sec.RateLimitRPS), sec.RateLimitBurst))

	api := r.Group("/api")
	{
		authG := api.Group("/auth")
		authG.POST("/signup", authH.Signup)
		authG.POST("/login", authH.Login)
		authG.POST("/logout", mw.Auth(sec, c), authH.Logout)
		authG.POST("/refresh", mw.Auth(sec, c), authH.Refresh)

		usersG := api.Group("/users")
		usersG.Use(mw.Auth(sec, c))
		usersG.GET("", userH.List)
		usersG.GET("/:id", userH.Get)
		usersG.PUT("/me", userH.UpdateMe)
		usersG.DELETE("/me", userH.DeleteMe)

		friendsG := api.Group("/friends")
		friendsG.Use(mw.Auth(sec, c))
		friendsG.GET("", friendH.List)
		friendsG.GET("/from-month/:month", friendH.FromMonth)
		friendsG.DELETE("/:id", friendH.Remove)

		requestsG := api.Group("/requests")
		requestsG.Use(mw.Auth(sec, c))
		requestsG.POST("", requestH.Send)
		requestsG.GET("/pending", requestH.Pending)
		requestsG.POST("/accept", requestH.Accept)
		requestsG.POST("/reject", requestH.Reject)

		messagesG := api.Group("/messages")
		messagesG.Use(mw.Auth(sec, c))
		messagesG.POST("", messageH.Send)
		messagesG.GET("/with/:id", messageH.Conversation)

		analyticsG := api.Group("/analytics")
		analyticsG.Use(mw.Auth(sec, c))
		analyticsG.GET("/communities", analyticsH.Communities)
		analyticsG.GET("/sociable", analyticsH.Sociable)
	}
	r.GET("/sse", sseH.ServeSSE)

	server := httptest.NewServer(r)

	return &TestServer{
		DB:       db,
		Cache:    c,
		PubSub:   pubsub,
		Bus:      bus,
		Svc:      svc,
		Recorder: recorder,
		Server:   server,
		URL:      server.URL,
		Sec:      sec,
		sched:    sched,
	}
}

// Close shuts down the test server and background workers.
func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.sched.Stop()
	ts.Recorder.Stop(context.Background())
}

// --- HTTP helpers ---

// PostJSON sends a POST request with JSON body and optional Bearer token.
func (ts *TestServer) PostJSON(t *testing.T, path string, body interface{}, token string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", ts.URL+path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// Get sends a GET request with optional Bearer token.
func (ts *TestServer) Get(t *testing.T, path string, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest("GET", ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// Put sends a PUT request with JSON body and optional Bearer token.
func (ts *TestServer) Put(t *testing.T, path string, body interface{}, token string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest("PUT", ts.URL+path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// Delete sends a DELETE request with optional Bearer token.
func (ts *TestServer) Delete(t *testing.T, path string, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest("DELETE", ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// ReadJSON reads and decodes a JSON response body into the given target.
func ReadJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target), "body: %s", string(data))
}

// --- Auth helpers ---

var testCounter uint64

// UniqueEmail returns an email no previous test user has used.
func UniqueEmail(prefix string) string {
	n := atomic.AddUint64(&testCounter, 1)
	return fmt.Sprintf("%s%d@mail.com", prefix, n)
}

// Signup registers a user and returns the user id as a string.
func (ts *TestServer) Signup(t *testing.T, first, last, email, password string) string {
	t.Helper()
	resp := ts.PostJSON(t, "/api/auth/signup", map[string]string{
		"first_name": first,
		"last_name":  last,
		"email":      email,
		"password":   password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var result map[string]interface{}
	ReadJSON(t, resp, &result)
	user := result["user"].(map[string]interface{})
	return user["id"].(string)
}

// Login authenticates and returns the token and user id.
func (ts *TestServer) Login(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	resp := ts.PostJSON(t, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result map[string]interface{}
	ReadJSON(t, resp, &result)
	return result["token"].(string), result["user_id"].(string)
}

// SignupAndLogin registers a user with a unique email and logs in.
func (ts *TestServer) SignupAndLogin(t *testing.T, first, last string) (token, userID string) {
	t.Helper()
	email := UniqueEmail("user")
	ts.Signup(t, first, last, email, "pass1234")
	return ts.Login(t, email, "pass1234")
}
