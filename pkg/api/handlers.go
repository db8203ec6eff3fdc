// Package api exposes the activity registry over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/joeydtaylor/steeze-activities/pkg/activity"
	"github.com/joeydtaylor/steeze-activities/pkg/codec"
	"github.com/joeydtaylor/steeze-activities/pkg/core"
	"github.com/joeydtaylor/steeze-activities/pkg/events"
	"github.com/joeydtaylor/steeze-activities/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-activities/pkg/transport/httpx"
)

// IndexPath is where GET / redirects.
const IndexPath = "/static/index.html"

// Registry is the roster store the handlers operate on.
type Registry interface {
	List() map[string]activity.Activity
	Signup(name, email string) (activity.Activity, error)
	Unregister(name, email string) (activity.Activity, error)
}

// Handler coordinates HTTP requests with the registry.
type Handler struct {
	registry Registry
	events   events.Publisher
	log      *zap.Logger
	now      func() time.Time
}

// NewHandler builds a Handler. A nil publisher or logger is replaced by a no-op.
func NewHandler(registry Registry, pub events.Publisher, log *zap.Logger) *Handler {
	if pub == nil {
		pub = events.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{registry: registry, events: pub, log: log, now: time.Now}
}

// Routes lists the endpoints served by the handler.
func (h *Handler) Routes() []core.Route {
	return []core.Route{
		{Method: http.MethodGet, Path: "/", Handler: h.root},
		{Method: http.MethodGet, Path: "/activities", Handler: h.listActivities},
		{Method: http.MethodPost, Path: "/activities/{name}/signup", Handler: h.signup},
		{Method: http.MethodDelete, Path: "/activities/{name}/participants/{email}", Handler: h.unregister},
	}
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

func (h *Handler) listActivities(w http.ResponseWriter, _ *http.Request) {
	all := h.registry.List()
	resp := make(ListActivitiesResponse, len(all))
	for name, a := range all {
		resp[name] = toActivityView(a)
	}
	codec.Write(w, codec.JSON, http.StatusOK, resp)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("email") {
		core.WriteError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return
	}
	email := q.Get("email")
	name := httpx.Param(r, "name")

	a, err := h.registry.Signup(name, email)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.RecordSignup(a.Name, len(a.Participants))
	h.publish(r.Context(), events.TypeSignup, a.Name, email)
	codec.Write(w, codec.JSON, http.StatusOK, MessageResponse{
		Message: "Signed up " + email + " for " + a.Name,
	})
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request) {
	name := httpx.Param(r, "name")
	email := httpx.Param(r, "email")

	a, err := h.registry.Unregister(name, email)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.RecordUnregister(a.Name, len(a.Participants))
	h.publish(r.Context(), events.TypeUnregister, a.Name, email)
	codec.Write(w, codec.JSON, http.StatusOK, MessageResponse{
		Message: "Unregistered " + email + " from " + a.Name,
	})
}

// publish never fails the request; the roster change has already happened.
func (h *Handler) publish(ctx context.Context, t events.Type, name, email string) {
	ev := events.NewRosterEvent(t, name, email, h.now())
	if err := h.events.Publish(context.WithoutCancel(ctx), ev); err != nil {
		h.log.Warn("roster event publish failed",
			zap.String("eventId", ev.ID),
			zap.String("type", string(t)),
			zap.String("activity", name),
			zap.Error(err),
		)
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activity.ErrActivityNotFound):
		core.WriteError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, activity.ErrAlreadySignedUp):
		core.WriteError(w, http.StatusBadRequest, "Student is already signed up")
	case errors.Is(err, activity.ErrNotSignedUp):
		core.WriteError(w, http.StatusBadRequest, "Student is not signed up for this activity")
	default:
		core.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
