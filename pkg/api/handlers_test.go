package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/joeydtaylor/steeze-activities/pkg/activity"
	"github.com/joeydtaylor/steeze-activities/pkg/catalog"
	"github.com/joeydtaylor/steeze-activities/pkg/core"
	"github.com/joeydtaylor/steeze-activities/pkg/events"
	"github.com/joeydtaylor/steeze-activities/pkg/transport/httpx"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.RosterEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.RosterEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type testServer struct {
	handler  http.Handler
	registry *activity.Registry
	pub      *recordingPublisher
}

func newTestServer(t *testing.T, staticDir string) *testServer {
	t.Helper()

	cfg, err := catalog.Default()
	require.NoError(t, err)

	reg := activity.NewRegistry(cfg.Seed())
	pub := &recordingPublisher{}
	h := NewHandler(reg, pub, zap.NewNop())

	return &testServer{
		handler: core.BuildRouter(core.BuildDeps{
			Router:    httpx.NewChi(),
			Routes:    h.Routes(),
			StaticDir: staticDir,
			Timeout:   time.Second,
		}),
		registry: reg,
		pub:      pub,
	}
}

func (s *testServer) do(method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestGetActivities(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	raw := decode[map[string]map[string]any](t, rr)
	require.NotEmpty(t, raw)
	chess, ok := raw["Chess Club"]
	require.True(t, ok)
	for _, key := range []string{"description", "schedule", "max_participants", "participants"} {
		assert.Contains(t, chess, key)
	}
	assert.IsType(t, []any{}, chess["participants"])

	tennis := raw["Tennis Club"]
	assert.Equal(t, []any{}, tennis["participants"])
}

func TestSignupSuccess(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodPost, "/activities/Chess%20Club/signup?email=test@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[MessageResponse](t, rr)
	assert.Contains(t, resp.Message, "test@mergington.edu")
	assert.Contains(t, resp.Message, "Chess Club")

	a := s.registry.List()["Chess Club"]
	assert.Equal(t, "test@mergington.edu", a.Participants[len(a.Participants)-1])

	require.Len(t, s.pub.events, 1)
	assert.Equal(t, events.TypeSignup, s.pub.events[0].Type)
	assert.Equal(t, "Chess Club", s.pub.events[0].Activity)
	assert.Equal(t, "test@mergington.edu", s.pub.events[0].Email)
}

func TestSignupAlreadySignedUp(t *testing.T) {
	s := newTestServer(t, "")

	first := s.do(http.MethodPost, "/activities/Chess%20Club/signup?email=duplicate@mergington.edu")
	require.Equal(t, http.StatusOK, first.Code)

	rr := s.do(http.MethodPost, "/activities/Chess%20Club/signup?email=duplicate@mergington.edu")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[core.ErrorResponse](t, rr).Detail, "already signed up")
	assert.Len(t, s.pub.events, 1)
}

func TestSignupNonexistentActivity(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodPost, "/activities/Nonexistent%20Activity/signup?email=test@mergington.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Activity not found", decode[core.ErrorResponse](t, rr).Detail)
}

func TestSignupMissingEmail(t *testing.T) {
	s := newTestServer(t, "")

	for _, target := range []string{"/activities/Chess%20Club/signup", "/activities/Chess%20Club/signup?name=x"} {
		rr := s.do(http.MethodPost, target)
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code, target)
		assert.Contains(t, decode[core.ErrorResponse](t, rr).Detail, "email")
	}
}

func TestSignupStoresEmailAsSent(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodPost, "/activities/Tennis%20Club/signup?email=%20pad@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Signed up  pad@mergington.edu for Tennis Club", decode[MessageResponse](t, rr).Message)

	list := decode[ListActivitiesResponse](t, s.do(http.MethodGet, "/activities"))
	assert.Contains(t, list["Tennis Club"].Participants, " pad@mergington.edu")

	rr = s.do(http.MethodDelete, "/activities/Tennis%20Club/participants/%20pad@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Unregistered  pad@mergington.edu from Tennis Club", decode[MessageResponse](t, rr).Message)
}

func TestSignupEmptyEmailIsAccepted(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodPost, "/activities/Tennis%20Club/signup?email=")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodPost, "/activities/Tennis%20Club/signup?email=")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSignupThenUnregister(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodPost, "/activities/Tennis%20Club/signup?email=unregister@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodDelete, "/activities/Tennis%20Club/participants/unregister@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[MessageResponse](t, rr)
	assert.Contains(t, resp.Message, "unregister@mergington.edu")
	assert.Contains(t, resp.Message, "Tennis Club")

	list := decode[ListActivitiesResponse](t, s.do(http.MethodGet, "/activities"))
	assert.NotContains(t, list["Tennis Club"].Participants, "unregister@mergington.edu")

	require.Len(t, s.pub.events, 2)
	assert.Equal(t, events.TypeUnregister, s.pub.events[1].Type)
}

func TestUnregisterNotSignedUp(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodDelete, "/activities/Chess%20Club/participants/notsignedup@mergington.edu")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[core.ErrorResponse](t, rr).Detail, "not signed up")
}

func TestUnregisterNonexistentActivity(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodDelete, "/activities/Nonexistent%20Activity/participants/test@mergington.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Activity not found", decode[core.ErrorResponse](t, rr).Detail)
}

func TestUnregisterEscapedEmail(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodPost, "/activities/Chess%20Club/signup?email=a%2Bb@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodDelete, "/activities/Chess%20Club/participants/a+b@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestRootRedirect(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodGet, "/")
	require.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/static/index.html")
}

func TestFallbacks(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodGet, "/nope")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not Found", decode[core.ErrorResponse](t, rr).Detail)

	rr = s.do(http.MethodGet, "/activities/Chess%20Club/signup")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "Method Not Allowed", decode[core.ErrorResponse](t, rr).Detail)
}

func TestHeartbeat(t *testing.T) {
	s := newTestServer(t, "")

	rr := s.do(http.MethodGet, "/ping")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles.css"), []byte("body { color: navy; }"), 0o600))
	s := newTestServer(t, dir)

	rr := s.do(http.MethodGet, "/static/styles.css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "navy")

	rr = s.do(http.MethodGet, "/static/missing.css")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPublishFailureDoesNotFailSignup(t *testing.T) {
	cfg, err := catalog.Default()
	require.NoError(t, err)

	obs, logs := observer.New(zap.WarnLevel)
	reg := activity.NewRegistry(cfg.Seed())
	h := NewHandler(reg, &recordingPublisher{err: errors.New("broker down")}, zap.New(obs))
	srv := core.BuildRouter(core.BuildDeps{Router: httpx.NewChi(), Routes: h.Routes()})

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/activities/Art%20Club/signup?email=x@mergington.edu", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	a := reg.List()["Art Club"]
	assert.True(t, a.HasParticipant("x@mergington.edu"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "roster event publish failed", logs.All()[0].Message)
}

func TestNewHandlerDefaults(t *testing.T) {
	h := NewHandler(activity.NewRegistry(nil), nil, nil)
	assert.IsType(t, events.Noop{}, h.events)
	assert.NotNil(t, h.log)
}
