package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard decides whether a transition may proceed.
type Guard[S ~string, E ~string] func(ctx context.Context, from S, event E, data any) bool

// Action runs a side effect during a transition. Returning an error aborts it.
type Action[S ~string, E ~string] func(ctx context.Context, from, to S, event E, data any) error

// TransitionHook observes completed transitions.
type TransitionHook[S ~string, E ~string] func(from, to S, event E)

type transition[S ~string, E ~string] struct {
	to      S
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// Machine is an in-memory state machine keyed by [from][event].
type Machine[S ~string, E ~string] struct {
	mu          sync.RWMutex
	current     S
	transitions map[S]map[E][]transition[S, E]
	hooks       []TransitionHook[S, E]
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is currently in state s.
func (m *Machine[S, E]) Is(s S) bool {
	return m.Current() == s
}

func (m *Machine[S, E]) addTransition(from, to S, event E, guards []Guard[S, E], actions []Action[S, E]) error {
	if from == "" || to == "" || event == "" {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[E][]transition[S, E])
	}
	m.transitions[from][event] = append(m.transitions[from][event], transition[S, E]{
		to:      to,
		guards:  guards,
		actions: actions,
	})
	return nil
}

// Fire applies event to the current state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()

	from := m.current
	t, err := m.match(ctx, from, event, data)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	for _, action := range t.actions {
		if err := action(ctx, from, t.to, event, data); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = t.to
	hooks := m.hooks
	m.mu.Unlock()

	for _, h := range hooks {
		h(from, t.to, event)
	}
	return nil
}

// CanFire reports whether Fire would succeed for event, ignoring actions.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.match(ctx, m.current, event, data)
	return err == nil
}

// Must be called with lock held. First transition with passing guards wins.
func (m *Machine[S, E]) match(ctx context.Context, from S, event E, data any) (*transition[S, E], error) {
	candidates := m.transitions[from][event]
	if len(candidates) == 0 {
		return nil, &ErrNoTransitionAvailable{StateName: string(from), EventName: string(event)}
	}

	for i := range candidates {
		if allow(ctx, candidates[i].guards, from, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, &ErrTransitionRejected{StateName: string(from), EventName: string(event)}
}

func allow[S ~string, E ~string](ctx context.Context, guards []Guard[S, E], from S, event E, data any) bool {
	for _, g := range guards {
		if !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
