package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/wavecx/wavecx-go/pkg/clientip"
	"github.com/wavecx/wavecx-go/pkg/httpserver"
	"github.com/wavecx/wavecx-go/pkg/logger"
	"github.com/wavecx/wavecx-go/pkg/requestid"
	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
	"github.com/wavecx/wavecx-go/pkg/verification"
)

const maxRequestBytes = 1 << 20

// RecordedEvent is an event accepted by the API.
type RecordedEvent struct {
	OrganizationCode string
	Type             targetedcontent.EventType
	UserID           string
	TriggerPoint     string
	SessionToken     string
	Platform         string
	RequestID        string
	ClientIP         string
	ReceivedAt       time.Time
}

type eventRequest struct {
	Type               targetedcontent.EventType `json:"type"`
	UserID             string                    `json:"userId"`
	UserIDVerification string                    `json:"userIdVerification"`
	TriggerPoint       string                    `json:"triggerPoint"`
	SessionToken       string                    `json:"sessionToken"`
	Platform           string                    `json:"platform"`
	UserData           struct {
		Attributes map[string]any `json:"attributes"`
	} `json:"userData"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type session struct {
	organizationCode string
	userID           string
	expiresAt        time.Time
}

func (s session) expired(now time.Time) bool {
	return !s.expiresAt.IsZero() && !now.Before(s.expiresAt)
}

// API is the mock targeted-content API handler.
type API struct {
	catalog  *Catalog
	tokenTTL time.Duration
	now      func() time.Time
	logger   *slog.Logger
	clientIP *clientip.Resolver

	mu       sync.Mutex
	sessions map[string]session
	events   []RecordedEvent
}

// New creates an API serving catalog.
func New(catalog *Catalog, opts ...Option) *API {
	if catalog == nil {
		catalog = &Catalog{}
	}
	a := &API{
		catalog:  catalog,
		tokenTTL: 15 * time.Minute,
		now:      time.Now,
		logger:   logger.Discard(),
		clientIP: clientip.New(),
		sessions: make(map[string]session),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Routes returns the HTTP handler.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(a.clientIP.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthHandler(a.logger))
	r.Post("/{organizationCode}/targeted-content-events", a.handleEvent)
	return r
}

// Events returns a copy of the recorded events in arrival order.
func (a *API) Events() []RecordedEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.events)
}

// Reset forgets sessions and recorded events.
func (a *API) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions = make(map[string]session)
	a.events = nil
}

func (a *API) handleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	org := chi.URLParam(r, "organizationCode")
	log := a.logger.With(logger.Organization(org), logger.RequestID(requestid.FromContext(ctx)))

	if !a.catalog.Has(org) {
		log.WarnContext(ctx, "unknown organization")
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown organization"})
		return
	}

	var req eventRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		log.WarnContext(ctx, "malformed event", logger.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	log = log.With(logger.EventType(string(req.Type)), logger.UserID(req.UserID))

	var (
		resp targetedcontent.EventResult
		err  error
	)
	switch req.Type {
	case targetedcontent.EventSessionStarted:
		resp, err = a.startSession(org, req)
	case targetedcontent.EventSessionRefresh:
		resp, err = a.refreshSession(org, req)
	case targetedcontent.EventTriggerPoint:
		resp = a.triggerPoint(org, req)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported event type"})
		return
	}
	if err != nil {
		log.WarnContext(ctx, "event rejected", logger.Error(err))
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	a.record(org, req, requestid.FromContext(ctx), clientip.FromContext(ctx))
	log.InfoContext(ctx, "event accepted", logger.Count(len(resp.Content)))
	writeJSON(w, http.StatusOK, resp)
}

var (
	errVerificationFailed = errors.New("user id verification failed")
	errInvalidSession     = errors.New("invalid or expired session token")
)

func (a *API) startSession(org string, req eventRequest) (targetedcontent.EventResult, error) {
	if secret := a.catalog.Organizations[org].SigningSecret; secret != "" {
		if !verification.Verify(secret, req.UserID, req.UserIDVerification) {
			return targetedcontent.EventResult{}, errVerificationFailed
		}
	}

	token := uuid.NewString()
	s := session{organizationCode: org, userID: req.UserID}
	if a.tokenTTL > 0 {
		s.expiresAt = a.now().Add(a.tokenTTL)
	}

	a.mu.Lock()
	a.sessions[token] = s
	a.mu.Unlock()

	res := targetedcontent.EventResult{
		Content:      a.catalog.ContentFor(org, req.UserID),
		SessionToken: token,
	}
	if a.tokenTTL > 0 {
		// round up so a sub-second lifetime is not reported as already expired
		res.ExpiresIn = targetedcontent.Seconds(int((a.tokenTTL + time.Second - 1) / time.Second))
	}
	return res, nil
}

func (a *API) refreshSession(org string, req eventRequest) (targetedcontent.EventResult, error) {
	s, err := a.session(org, req.SessionToken)
	if err != nil {
		return targetedcontent.EventResult{}, err
	}
	return targetedcontent.EventResult{Content: a.catalog.ContentFor(org, s.userID)}, nil
}

func (a *API) triggerPoint(org string, req eventRequest) targetedcontent.EventResult {
	userID := req.UserID
	if s, err := a.session(org, req.SessionToken); err == nil {
		userID = s.userID
	}
	matching := slices.DeleteFunc(a.catalog.ContentFor(org, userID), func(c targetedcontent.Content) bool {
		return c.TriggerPoint != req.TriggerPoint
	})
	return targetedcontent.EventResult{Content: matching}
}

func (a *API) session(org, token string) (session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[token]
	if !ok || s.organizationCode != org {
		return session{}, errInvalidSession
	}
	if s.expired(a.now()) {
		delete(a.sessions, token)
		return session{}, errInvalidSession
	}
	return s, nil
}

func (a *API) record(org string, req eventRequest, reqID, ip string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, RecordedEvent{
		OrganizationCode: org,
		Type:             req.Type,
		UserID:           req.UserID,
		TriggerPoint:     req.TriggerPoint,
		SessionToken:     req.SessionToken,
		Platform:         req.Platform,
		RequestID:        reqID,
		ClientIP:         ip,
		ReceivedAt:       a.now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
