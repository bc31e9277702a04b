package metrics_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavecx/wavecx-go"
	"github.com/wavecx/wavecx-go/pkg/metrics"
	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
)

func TestObserver(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	obs, err := metrics.NewObserver(reg)
	require.NoError(t, err)

	obs.RemoteCall(wavecx.OperationSessionStarted, 120*time.Millisecond, nil)
	obs.RemoteCall(wavecx.OperationSessionStarted, time.Second, errors.New("timeout"))
	obs.RemoteCall(wavecx.OperationInitiateSession, 10*time.Millisecond, nil)
	obs.EventQueued(wavecx.KindTriggerPoint)
	obs.EventQueued(wavecx.KindTriggerPoint)
	obs.ContentPresented(targetedcontent.PresentationPopup)
	obs.ContentDismissed()

	expected := `
# HELP wavecx_remote_calls_total Session initiation and content-delivery calls by operation and outcome.
# TYPE wavecx_remote_calls_total counter
wavecx_remote_calls_total{operation="initiate-session",outcome="success"} 1
wavecx_remote_calls_total{operation="session-started",outcome="error"} 1
wavecx_remote_calls_total{operation="session-started",outcome="success"} 1
# HELP wavecx_queued_events_total Events deferred because a session fetch was in flight.
# TYPE wavecx_queued_events_total counter
wavecx_queued_events_total{event="trigger-point"} 2
# HELP wavecx_content_presented_total Content items presented, by presentation type.
# TYPE wavecx_content_presented_total counter
wavecx_content_presented_total{presentation="popup"} 1
# HELP wavecx_content_dismissed_total Presented content closed by the user.
# TYPE wavecx_content_dismissed_total counter
wavecx_content_dismissed_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"wavecx_remote_calls_total",
		"wavecx_queued_events_total",
		"wavecx_content_presented_total",
		"wavecx_content_dismissed_total",
	))
	series, err := testutil.GatherAndCount(reg, "wavecx_remote_call_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
}

func TestNewObserver_Options(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	obs := metrics.MustNewObserver(reg, metrics.WithNamespace("app"), metrics.WithBuckets(1, 2))
	obs.ContentDismissed()

	count, err := testutil.GatherAndCount(reg, "app_content_dismissed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewObserver_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := metrics.NewObserver(reg)
	require.NoError(t, err)

	_, err = metrics.NewObserver(reg)
	assert.ErrorIs(t, err, metrics.ErrRegister)
	assert.Panics(t, func() { metrics.MustNewObserver(reg) })
}

func TestHandlerAndWriteText(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	obs := metrics.MustNewObserver(reg)
	obs.ContentPresented(targetedcontent.PresentationButtonTriggered)

	srv := httptest.NewServer(metrics.Handler(reg))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Contains(t, string(body), `wavecx_content_presented_total{presentation="button-triggered"} 1`)

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf, reg))
	assert.Contains(t, buf.String(), `wavecx_content_presented_total{presentation="button-triggered"} 1`)
}

func TestObserver_WithProvider(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	obs := metrics.MustNewObserver(reg)

	gw := targetedcontent.FireEventFunc(func(_ context.Context, _ targetedcontent.EventRequest) (targetedcontent.EventResult, error) {
		return targetedcontent.EventResult{Content: []targetedcontent.Content{{
			TriggerPoint:     "home",
			PresentationType: targetedcontent.PresentationPopup,
			ViewURL:          "https://content.example.com/home",
		}}}, nil
	})
	p := wavecx.MustNew("acme", wavecx.WithGateway(gw), wavecx.WithObserver(obs))

	ctx := context.Background()
	p.HandleEvent(ctx, wavecx.SessionStarted{UserID: "u-1"})
	require.NoError(t, p.Wait(ctx))
	p.HandleEvent(ctx, wavecx.TriggerPoint{TriggerPoint: "home"})
	p.Dismiss()

	count, err := testutil.GatherAndCount(reg, "wavecx_content_dismissed_total", "wavecx_content_presented_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
