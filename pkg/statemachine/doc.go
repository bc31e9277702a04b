// Package statemachine is a small, type-safe finite state machine.
//
// States and events are any string-based types, so a machine is declared with
// the caller's own vocabulary:
//
//	type Phase string
//	type Signal string
//
//	const (
//	    Idle         Phase  = "idle"
//	    Establishing Phase  = "establishing"
//	    Start        Signal = "start"
//	)
//
//	m := statemachine.MustNew(Idle,
//	    statemachine.WithTransition(Idle, Establishing, Start),
//	)
//	_ = m.Fire(ctx, Start, nil)
//
// # Guards and Actions
//
// Several transitions may share a (from, event) pair. They are evaluated in
// registration order and the first one whose guards all pass wins, which lets
// a single event branch on runtime data. Actions run after guards and before
// the state changes; an action error aborts the transition.
//
// # Error Handling
//
// Fire returns *ErrNoTransitionAvailable when nothing is registered for the
// current state and event, and *ErrTransitionRejected when guards veto every
// candidate. Use IsNoTransitionAvailableError and IsTransitionRejectedError to
// tell them apart.
//
// # Concurrency
//
// Machine guards its state with a RWMutex. Guards, actions and transition
// hooks run while the write lock is held and must not call back into the
// machine.
package statemachine
