package wavecx

import (
	"context"
	"log/slog"

	"github.com/wavecx/wavecx-go/pkg/statemachine"
)

type phase string

const (
	phaseIdle         phase = "idle"
	phaseEstablishing phase = "establishing"
	phaseActive       phase = "active"
)

type signal string

const (
	signalStart  signal = "start"
	signalSettle signal = "settle"
	signalEnd    signal = "end"
)

// newLifecycle builds the session lifecycle. A settle carries a bool telling
// whether the fetched session is still the current one; a session ended
// during the fetch settles back to idle.
func newLifecycle(log *slog.Logger) *statemachine.Machine[phase, signal] {
	stillCurrent := func(_ context.Context, _ phase, _ signal, data any) bool {
		current, _ := data.(bool)
		return current
	}

	return statemachine.MustNew(phaseIdle,
		statemachine.WithTransition(phaseIdle, phaseEstablishing, signalStart),
		statemachine.WithTransition(phaseActive, phaseEstablishing, signalStart),
		statemachine.WithTransition(phaseEstablishing, phaseActive, signalSettle,
			statemachine.WithGuard[phase, signal](stillCurrent)),
		statemachine.WithTransition(phaseEstablishing, phaseIdle, signalSettle),
		statemachine.WithTransition(phaseActive, phaseIdle, signalEnd),
		statemachine.WithTransitionHook[phase, signal](func(from, to phase, ev signal) {
			log.Debug("session lifecycle transition",
				slog.String("from", string(from)),
				slog.String("to", string(to)),
				slog.String("signal", string(ev)))
		}),
	)
}
