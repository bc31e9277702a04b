package cli_test

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavecx/wavecx-go/internal/cli"
	"github.com/wavecx/wavecx-go/pkg/verification"
)

func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := cli.Execute(ctx, append([]string{"--log-level", "error"}, args...), &stdout, &stderr)
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := run(t, context.Background(), "version")
	require.NoError(t, err)
	assert.Equal(t, "wavecx version dev\n", out)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	want, err := verification.Sign("s3cret", "u-1")
	require.NoError(t, err)

	t.Run("sign", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, context.Background(), "verify", "--secret", "s3cret", "u-1")
		require.NoError(t, err)
		assert.Equal(t, want+"\n", out)
	})

	t.Run("check match", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, context.Background(), "verify", "--secret", "s3cret", "--check", want, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "ok\n", out)
	})

	t.Run("check mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, context.Background(), "verify", "--secret", "s3cret", "--check", want, "u-2")
		assert.Error(t, err)
	})

	t.Run("missing user id", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, context.Background(), "verify", "--secret", "s3cret")
		assert.Error(t, err)
	})
}

func TestSimulate(t *testing.T) {
	t.Parallel()

	out, err := run(t, context.Background(), "simulate", "--catalog", "testdata/catalog.yaml", "--metrics", "testdata/scenario.yaml")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 10)

	assert.Contains(t, lines[0], "nothing presented", "no session yet")
	assert.Contains(t, lines[1], "session-started u-1")
	assert.Contains(t, lines[2], `popup "Welcome" https://content.example.com/acme/welcome`)
	assert.Contains(t, lines[3], "nothing presented")
	assert.Contains(t, lines[4], "nothing presented", "popup consumed")
	assert.Contains(t, lines[5], "nothing presented [user-triggered available]")
	assert.Contains(t, lines[6], `button-triggered "What's New" https://content.example.com/acme/help`)
	assert.Contains(t, lines[7], "[user-triggered available]")
	assert.Contains(t, lines[8], "nothing presented")
	assert.Equal(t, "10. trigger-point help               -> nothing presented", lines[9])

	assert.Contains(t, out, `wavecx_remote_calls_total{operation="session-started",outcome="success"} 1`)
	assert.Contains(t, out, `wavecx_content_presented_total{presentation="popup"} 1`)
}

func TestSimulate_SigningSecret(t *testing.T) {
	t.Parallel()

	scenario := filepath.Join(t.TempDir(), "verified.yaml")
	require.NoError(t, os.WriteFile(scenario, []byte(`
organization: verified
steps:
  - event: session-started
    userId: u-1
  - event: trigger-point
    triggerPoint: home
`), 0o600))

	out, err := run(t, context.Background(), "simulate", "--catalog", "testdata/catalog.yaml", "--signing-secret", "s3cret", scenario)
	require.NoError(t, err)
	assert.Contains(t, out, "https://content.example.com/verified/home")

	out, err = run(t, context.Background(), "simulate", "--catalog", "testdata/catalog.yaml", scenario)
	require.NoError(t, err)
	assert.NotContains(t, out, "https://content.example.com/verified/home", "unverified sessions get no content")
}

func TestSimulate_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	tests := map[string]string{
		"unknown event":    write("unknown.yaml", "organization: acme\nsteps:\n  - event: page-view\n"),
		"missing user":     write("nouser.yaml", "organization: acme\nsteps:\n  - event: session-started\n"),
		"missing trigger":  write("notrigger.yaml", "organization: acme\nsteps:\n  - event: trigger-point\n"),
		"missing org":      write("noorg.yaml", "steps:\n  - event: session-ended\n"),
		"not yaml":         write("bad.yaml", "steps: [\n"),
		"missing scenario": filepath.Join(dir, "absent.yaml"),
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := run(t, context.Background(), "simulate", "--catalog", "testdata/catalog.yaml", path)
			assert.Error(t, err)
		})
	}
}

func TestServe(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, err := run(t, ctx, "serve", "--addr", addr, "--catalog", "testdata/catalog.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "mock API listening on http://"+addr)
}

func TestServe_BadCatalog(t *testing.T) {
	t.Parallel()

	_, err := run(t, context.Background(), "serve", "--addr", "127.0.0.1:0", "--catalog", "testdata/missing.yaml")
	assert.Error(t, err)
}
