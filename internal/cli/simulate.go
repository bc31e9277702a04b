package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wavecx/wavecx-go"
	"github.com/wavecx/wavecx-go/pkg/httpserver"
	"github.com/wavecx/wavecx-go/pkg/metrics"
	"github.com/wavecx/wavecx-go/pkg/mockapi"
	"github.com/wavecx/wavecx-go/pkg/presentation"
	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
	"github.com/wavecx/wavecx-go/pkg/verification"
)

var (
	errNoOrganization = errors.New("organization is required (scenario field or --organization)")
	errMockStopped    = errors.New("mock API stopped before listening")
)

type simulateOptions struct {
	organization  string
	apiBaseURL    string
	catalog       string
	signingSecret string
	stepTimeout   time.Duration
	printMetrics  bool
}

func newSimulateCmd(g *globalFlags) *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Replay a scenario of events against the SDK provider",
		Long: `simulate feeds each scenario step to a provider, waits for any session fetch
to settle and prints what would be presented.

With --catalog the scenario runs against an in-process mock API; otherwise it
talks to --api-base-url.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			return runSimulation(cmd.Context(), sc, opts, g.logger(cmd.ErrOrStderr()), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.organization, "organization", "", "Organization code (overrides the scenario)")
	cmd.Flags().StringVar(&opts.apiBaseURL, "api-base-url", "", "API base URL (overrides the scenario)")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "Serve this catalog from an in-process mock API")
	cmd.Flags().StringVar(&opts.signingSecret, "signing-secret", "", "Sign user ids of session-started steps lacking a verification")
	cmd.Flags().DurationVar(&opts.stepTimeout, "step-timeout", 10*time.Second, "Maximum wait for a session fetch per step")
	cmd.Flags().BoolVar(&opts.printMetrics, "metrics", false, "Print provider metrics after the run")
	return cmd
}

func runSimulation(ctx context.Context, sc *Scenario, opts simulateOptions, log *slog.Logger, out io.Writer) error {
	org := sc.Organization
	if opts.organization != "" {
		org = opts.organization
	}
	if org == "" {
		return errNoOrganization
	}

	baseURL := sc.APIBaseURL
	if opts.apiBaseURL != "" {
		baseURL = opts.apiBaseURL
	}

	if opts.catalog != "" {
		url, stop, err := startMock(ctx, opts.catalog, log)
		if err != nil {
			return err
		}
		defer stop()
		baseURL = url
	}

	reg := prometheus.NewRegistry()
	obs, err := metrics.NewObserver(reg)
	if err != nil {
		return err
	}

	p, err := wavecx.New(org,
		wavecx.WithAPIBaseURL(baseURL),
		wavecx.WithLogger(log),
		wavecx.WithObserver(obs),
	)
	if err != nil {
		return err
	}

	for i, st := range sc.Steps {
		if err := applyStep(ctx, p, st, opts.signingSecret); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}

		waitCtx, cancel := context.WithTimeout(ctx, opts.stepTimeout)
		err := p.Wait(waitCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d: waiting for session: %w", i+1, err)
		}

		fmt.Fprintf(out, "%2d. %-32s -> %s\n", i+1, st.describe(), describeSnapshot(p.Snapshot()))
	}

	if opts.printMetrics {
		fmt.Fprintln(out)
		return metrics.WriteText(out, reg)
	}
	return nil
}

func applyStep(ctx context.Context, p *wavecx.Provider, st Step, secret string) error {
	switch wavecx.EventKind(st.Event) {
	case wavecx.KindSessionStarted:
		code := st.UserIDVerification
		if code == "" && secret != "" {
			var err error
			if code, err = verification.Sign(secret, st.UserID); err != nil {
				return err
			}
		}
		p.HandleEvent(ctx, wavecx.SessionStarted{
			UserID:             st.UserID,
			UserIDVerification: code,
			UserAttributes:     st.Attributes,
		})
	case wavecx.KindSessionEnded:
		p.HandleEvent(ctx, wavecx.SessionEnded{})
	case wavecx.KindTriggerPoint:
		p.HandleEvent(ctx, wavecx.TriggerPoint{TriggerPoint: st.TriggerPoint})
	case wavecx.KindUserTriggeredContent:
		p.HandleEvent(ctx, wavecx.UserTriggeredContent{})
	case actionDismiss:
		p.Dismiss()
	default:
		return fmt.Errorf("unknown event %q", st.Event)
	}
	return nil
}

func describeSnapshot(s wavecx.Snapshot) string {
	var desc string
	if s.Presented == nil {
		desc = "nothing presented"
	} else {
		desc = describeContent(*s.Presented)
	}
	if s.HasUserTriggeredContent {
		desc += " [user-triggered available]"
	}
	return desc
}

func describeContent(c targetedcontent.Content) string {
	chrome := presentation.ResolveChrome(c.MobileModal)
	p, err := presentation.FromContent(c)
	if err != nil {
		return fmt.Sprintf("%s %q (unrenderable: %v)", c.PresentationType, chrome.Title, err)
	}

	switch v := p.(type) {
	case presentation.Embedded:
		return fmt.Sprintf("%s %q %s", c.PresentationType, chrome.Title, v.ViewURL)
	case presentation.Native:
		return fmt.Sprintf("%s %q native, %d slide(s)", c.PresentationType, chrome.Title, len(v.Slides))
	default:
		return string(c.PresentationType)
	}
}

// startMock serves catalogPath on a loopback port and returns its base URL.
func startMock(ctx context.Context, catalogPath string, log *slog.Logger) (string, func(), error) {
	listening := make(chan net.Addr, 1)
	srv, err := mockapi.NewServer(mockapi.Config{
		HTTP:     httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second},
		Catalog:  catalogPath,
		TokenTTL: 15 * time.Minute,
	}, log, httpserver.WithOnListen(func(a net.Addr) { listening <- a }))
	if err != nil {
		return "", nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case addr := <-listening:
		stop := func() {
			cancel()
			<-done
		}
		return "http://" + addr.String(), stop, nil
	case err := <-done:
		cancel()
		if err == nil {
			err = errMockStopped
		}
		return "", nil, err
	}
}
