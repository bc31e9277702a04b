package statemachine

import "fmt"

// Option configures a machine during construction.
type Option[S ~string, E ~string] func(*Machine[S, E]) error

// TransitionOption configures a single transition.
type TransitionOption[S ~string, E ~string] func(*transitionConfig[S, E])

type transitionConfig[S ~string, E ~string] struct {
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// New creates a machine in the initial state.
func New[S ~string, E ~string](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	if initial == "" {
		return nil, fmt.Errorf("initial state cannot be empty")
	}

	m := &Machine[S, E]{
		current:     initial,
		transitions: make(map[S]map[E][]transition[S, E]),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is like New but panics on a bad definition.
func MustNew[S ~string, E ~string](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// WithTransition registers from --event--> to.
func WithTransition[S ~string, E ~string](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		cfg := &transitionConfig[S, E]{}
		for _, opt := range opts {
			opt(cfg)
		}
		if err := m.addTransition(from, to, event, cfg.guards, cfg.actions); err != nil {
			return fmt.Errorf("%s->%s on %s: %w", from, to, event, err)
		}
		return nil
	}
}

// WithTransitionHook registers a callback run after every completed transition.
func WithTransitionHook[S ~string, E ~string](hook TransitionHook[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		if hook != nil {
			m.hooks = append(m.hooks, hook)
		}
		return nil
	}
}

// WithGuard adds a guard to a transition. Nil guards are ignored.
func WithGuard[S ~string, E ~string](guard Guard[S, E]) TransitionOption[S, E] {
	return func(cfg *transitionConfig[S, E]) {
		if guard != nil {
			cfg.guards = append(cfg.guards, guard)
		}
	}
}

// WithAction adds an action to a transition. Nil actions are ignored.
func WithAction[S ~string, E ~string](action Action[S, E]) TransitionOption[S, E] {
	return func(cfg *transitionConfig[S, E]) {
		if action != nil {
			cfg.actions = append(cfg.actions, action)
		}
	}
}
