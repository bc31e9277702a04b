package targetedcontent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/wavecx/wavecx-go/pkg/logger"
	"github.com/wavecx/wavecx-go/pkg/requestid"
)

const (
	eventsPath = "targeted-content-events"
	platform   = "mobile"

	// responses larger than this are treated as malformed
	maxResponseBytes = 4 << 20
)

// Client is the HTTP Gateway implementation.
// Zero value is not usable; use NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient creates a client for the targeted-content API.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		timeout:    30 * time.Second,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type userData struct {
	Attributes map[string]any `json:"attributes,omitempty"`
}

type eventPayload struct {
	Type               EventType `json:"type"`
	UserID             string    `json:"userId"`
	UserIDVerification string    `json:"userIdVerification,omitempty"`
	TriggerPoint       string    `json:"triggerPoint,omitempty"`
	SessionToken       string    `json:"sessionToken,omitempty"`
	Platform           string    `json:"platform"`
	UserData           userData  `json:"userData"`
}

// FireEvent posts the event and decodes the selected content.
func (c *Client) FireEvent(ctx context.Context, req EventRequest) (EventResult, error) {
	if req.OrganizationCode == "" {
		return EventResult{}, ErrMissingOrganization
	}

	endpoint, err := c.endpoint(req.OrganizationCode)
	if err != nil {
		return EventResult{}, err
	}

	body, err := json.Marshal(eventPayload{
		Type:               req.Type,
		UserID:             req.UserID,
		UserIDVerification: req.UserIDVerification,
		TriggerPoint:       req.TriggerPoint,
		SessionToken:       req.SessionToken,
		Platform:           platform,
		UserData:           userData{Attributes: req.UserAttributes},
	})
	if err != nil {
		return EventResult{}, fmt.Errorf("%w: %w", ErrEncodeRequest, err)
	}

	requestID := requestid.FromContextOrNew(ctx)
	log := c.logger.With(
		logger.Organization(req.OrganizationCode),
		logger.EventType(string(req.Type)),
		logger.RequestID(requestID),
	)

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return EventResult{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestid.Header, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WarnContext(ctx, "targeted content request failed", logger.Error(err), logger.Duration(time.Since(start)))
		return EventResult{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		log.WarnContext(ctx, "targeted content request rejected",
			slog.Int("status", resp.StatusCode),
			logger.Duration(time.Since(start)),
		)
		return EventResult{Content: []Content{}}, nil
	}

	var result EventResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return EventResult{}, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	if result.Content == nil {
		result.Content = []Content{}
	}

	log.DebugContext(ctx, "targeted content received",
		logger.Count(len(result.Content)),
		logger.Duration(time.Since(start)),
	)
	return result, nil
}

func (c *Client) endpoint(organizationCode string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if base.Host == "" {
		return "", fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}
	return base.JoinPath(organizationCode, eventsPath).String(), nil
}
