// Package wavecx is a client SDK for showing WaveCX targeted content
// ("featurettes") at application trigger points.
//
// A Provider turns a stream of application events into a decision about which
// content item, if any, is currently presented:
//
//   - SessionStarted establishes a user session and fetches the content
//     selected for that user.
//   - TriggerPoint claims matching items from the fetched content: a popup item
//     is presented immediately and consumed, a button-triggered item becomes
//     available for the user to open.
//   - UserTriggeredContent opens the available button-triggered item.
//   - SessionEnded drops the session, its content and its session token.
//
// The host application renders whatever Presented reports and calls Dismiss
// when the user closes it.
//
// # Usage
//
//	p, err := wavecx.New("acme",
//	    wavecx.WithLogger(log),
//	    wavecx.WithChangeListener(func(s wavecx.Snapshot) { ui.Render(s) }),
//	)
//	if err != nil {
//	    return err
//	}
//
//	p.HandleEvent(ctx, wavecx.SessionStarted{UserID: "u-1"})
//	p.HandleEvent(ctx, wavecx.TriggerPoint{
//	    TriggerPoint:       "checkout",
//	    OnContentDismissed: func() { log.Info("closed") },
//	})
//
// # Asynchronous behavior
//
// HandleEvent never blocks on the network. SessionStarted starts a background
// fetch; trigger points that arrive while it is in flight are queued and
// replayed in arrival order once it settles, whether it succeeded or failed.
// Callers that need to observe the outcome (tests, CLIs) use Wait.
//
// Gateway and session initiation failures are logged and degrade to "no
// content". They are never returned to the caller.
//
// # Provider lookup
//
// WithProvider stores a provider in a context. MustFromContext panics when no
// provider is present, since that is an integration bug rather than a runtime
// condition.
package wavecx
