package wavecx

import "context"

type providerKey struct{}

// WithProvider returns a context carrying p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the provider stored by WithProvider.
func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	return p, ok && p != nil
}

// MustFromContext is like FromContext but panics with ErrNoProvider.
func MustFromContext(ctx context.Context) *Provider {
	p, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoProvider)
	}
	return p
}
