package wavecx

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/wavecx/wavecx-go/pkg/async"
	"github.com/wavecx/wavecx-go/pkg/logger"
	"github.com/wavecx/wavecx-go/pkg/sessiontoken"
	"github.com/wavecx/wavecx-go/pkg/statemachine"
	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
)

// Provider owns one user's targeted-content session and decides what is
// presented. It is safe for concurrent use.
type Provider struct {
	organizationCode string
	apiBaseURL       string
	requestTimeout   time.Duration

	gateway   targetedcontent.Gateway
	initiator targetedcontent.SessionInitiator
	tokens    *sessiontoken.Cache
	logger    *slog.Logger
	observer  Observer
	listeners listeners

	mu        sync.Mutex
	lifecycle *statemachine.Machine[phase, signal]
	user      *SessionStarted
	// generation changes whenever a session starts or ends; a fetch whose
	// generation is stale settles without touching provider state.
	generation uint64
	content    []targetedcontent.Content
	pending    eventQueue
	fetch      *async.Future[struct{}]
	dismissal  dispatcher
	selection  Selection
}

// New creates a provider for organizationCode. Without WithGateway it talks to
// the WaveCX API over HTTP.
func New(organizationCode string, opts ...Option) (*Provider, error) {
	if organizationCode == "" {
		return nil, ErrMissingOrganization
	}

	p := &Provider{
		organizationCode: organizationCode,
		apiBaseURL:       targetedcontent.DefaultBaseURL,
		logger:           logger.Discard(),
		observer:         nopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.tokens == nil {
		p.tokens = sessiontoken.New()
	}
	if p.gateway == nil {
		clientOpts := []targetedcontent.ClientOption{
			targetedcontent.WithBaseURL(p.apiBaseURL),
			targetedcontent.WithLogger(p.logger),
		}
		if p.requestTimeout > 0 {
			clientOpts = append(clientOpts, targetedcontent.WithTimeout(p.requestTimeout))
		}
		p.gateway = targetedcontent.NewClient(clientOpts...)
	}
	p.lifecycle = newLifecycle(p.logger)

	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(organizationCode string, opts ...Option) *Provider {
	p, err := New(organizationCode, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// OrganizationCode returns the organization the provider serves.
func (p *Provider) OrganizationCode() string {
	return p.organizationCode
}

// HandleEvent applies ev. It never blocks on the network; a session fetch
// continues in the background even if ctx is cancelled.
func (p *Provider) HandleEvent(ctx context.Context, ev Event) {
	if ev == nil {
		return
	}

	p.mu.Lock()
	p.apply(ctx, ev, false)
	subs := p.publishLocked()
	p.mu.Unlock()

	subs.deliver()
}

// Dismiss closes whatever is presented and fires the pending dismissal
// callback once. Button-triggered content stays available for reopening.
func (p *Provider) Dismiss() {
	p.mu.Lock()
	_, presented := Select(p.selection)
	p.selection.UserTriggeredShown = false
	p.selection.ActivePopup = nil
	callback := p.dismissal.take()
	subs := p.publishLocked()
	p.mu.Unlock()

	if presented {
		p.observer.ContentDismissed()
	}
	if callback != nil {
		callback()
	}
	subs.deliver()
}

// Wait blocks until no session fetch is in flight and queued events have been
// replayed, or ctx is done.
func (p *Provider) Wait(ctx context.Context) error {
	for {
		p.mu.Lock()
		f := p.fetch
		p.mu.Unlock()

		if f == nil {
			return nil
		}
		if _, err := f.Await(ctx); err != nil && ctx.Err() != nil {
			return err
		}
	}
}

// Snapshot returns the current state.
func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Presented returns the content item to render, if any.
func (p *Provider) Presented() (targetedcontent.Content, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Select(p.selection)
}

// HasUserTriggeredContent reports whether a button-triggered item is available.
func (p *Provider) HasUserTriggeredContent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selection.HasUserTriggeredContent()
}

// Subscribe registers fn for state changes and returns a function removing it.
func (p *Provider) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	id := p.listeners.add(fn)
	return func() { p.listeners.remove(id) }
}

func (p *Provider) inFlight() bool {
	return p.lifecycle.Is(phaseEstablishing)
}

// apply handles one event with p.mu held. replayed marks events coming out of
// the pending queue.
func (p *Provider) apply(ctx context.Context, ev Event, replayed bool) {
	log := p.logger.With(logger.EventType(string(ev.Kind())))
	if replayed {
		log.DebugContext(ctx, "replaying queued event")
	}

	switch ev := ev.(type) {
	case SessionStarted:
		p.sessionStarted(ctx, ev)
	case SessionEnded:
		p.sessionEnded(ctx)
	case TriggerPoint:
		p.triggerPoint(ctx, ev)
	case UserTriggeredContent:
		p.dismissal.set(ev.OnContentDismissed)
		if p.selection.ActiveUserTriggered != nil && !p.selection.UserTriggeredShown {
			p.selection.UserTriggeredShown = true
			if p.selection.ActivePopup == nil {
				p.observer.ContentPresented(targetedcontent.PresentationButtonTriggered)
			}
		}
	}
}

func (p *Provider) sessionStarted(ctx context.Context, ev SessionStarted) {
	if p.inFlight() {
		p.enqueue(ctx, ev)
		return
	}

	if p.user != nil && p.user.UserID != ev.UserID {
		// a token only refreshes the session of the user it was issued to
		p.tokens.Clear()
	}
	p.content = nil
	p.dismissal.set(nil)
	p.user = &ev
	p.generation++
	gen := p.generation

	if err := p.lifecycle.Fire(ctx, signalStart, nil); err != nil {
		p.logger.ErrorContext(ctx, "session lifecycle rejected start", logger.Error(err))
		return
	}

	p.logger.DebugContext(ctx, "establishing session", logger.UserID(ev.UserID))
	p.fetch = async.Go(context.WithoutCancel(ctx), func(ctx context.Context) (struct{}, error) {
		var out fetchResult
		defer func() { p.settle(ctx, gen, out) }()
		out = p.establish(ctx, ev)
		return struct{}{}, nil
	})
}

func (p *Provider) sessionEnded(ctx context.Context) {
	p.content = nil
	p.selection = Selection{}
	p.user = nil
	p.tokens.Clear()
	p.generation++

	if p.lifecycle.CanFire(ctx, signalEnd, nil) {
		if err := p.lifecycle.Fire(ctx, signalEnd, nil); err != nil {
			p.logger.ErrorContext(ctx, "session lifecycle rejected end", logger.Error(err))
		}
	}
}

func (p *Provider) triggerPoint(ctx context.Context, ev TriggerPoint) {
	p.selection = Selection{}
	p.dismissal.set(ev.OnContentDismissed)

	if p.inFlight() {
		p.enqueue(ctx, ev)
		return
	}
	if p.user == nil {
		return
	}

	idx := slices.IndexFunc(p.content, func(c targetedcontent.Content) bool {
		return c.Matches(ev.TriggerPoint, targetedcontent.PresentationPopup)
	})
	if idx >= 0 {
		popup := p.content[idx]
		p.content = slices.Delete(p.content, idx, idx+1)
		p.selection.ActivePopup = &popup
		p.observer.ContentPresented(targetedcontent.PresentationPopup)
	}

	idx = slices.IndexFunc(p.content, func(c targetedcontent.Content) bool {
		return c.Matches(ev.TriggerPoint, targetedcontent.PresentationButtonTriggered)
	})
	if idx >= 0 {
		button := p.content[idx]
		p.selection.ActiveUserTriggered = &button
	}

	p.logger.DebugContext(ctx, "trigger point handled",
		logger.TriggerPoint(ev.TriggerPoint),
		slog.Bool("popup", p.selection.ActivePopup != nil),
		slog.Bool("user_triggered", p.selection.ActiveUserTriggered != nil))
}

func (p *Provider) enqueue(ctx context.Context, ev Event) {
	p.pending.push(ev)
	p.observer.EventQueued(ev.Kind())
	p.logger.DebugContext(ctx, "session fetch in flight, event queued",
		logger.EventType(string(ev.Kind())),
		logger.Count(p.pending.len()))
}

// fetchResult is what establish learned. Nothing is applied until settle
// confirms the session is still current.
type fetchResult struct {
	ok        bool
	content   []targetedcontent.Content
	initiated issuedToken
	refreshed issuedToken
}

// issuedToken is a session token with its optional lifetime.
type issuedToken struct {
	value   string
	ttl     time.Duration
	expires bool
}

func (t issuedToken) storeIn(c *sessiontoken.Cache) {
	switch {
	case t.value == "":
	case t.expires:
		c.Store(t.value, t.ttl)
	default:
		c.StoreWithoutExpiry(t.value)
	}
}

// establish runs without p.mu held.
func (p *Provider) establish(ctx context.Context, user SessionStarted) fetchResult {
	var out fetchResult

	req := targetedcontent.EventRequest{
		OrganizationCode: p.organizationCode,
		UserID:           user.UserID,
	}

	if token, ok := p.tokens.Read(); ok {
		req.Type = targetedcontent.EventSessionRefresh
		req.SessionToken = token
	} else if p.initiator != nil {
		start := time.Now()
		res, err := p.initiator.InitiateSession(ctx, targetedcontent.InitiateSessionRequest{
			OrganizationCode:   p.organizationCode,
			UserID:             user.UserID,
			UserIDVerification: user.UserIDVerification,
			UserAttributes:     user.UserAttributes,
		})
		if err == nil && res.SessionToken == "" {
			err = errEmptySessionToken
		}
		p.observer.RemoteCall(OperationInitiateSession, time.Since(start), err)
		if err != nil {
			p.logger.ErrorContext(ctx, "session initiation failed",
				logger.UserID(user.UserID), logger.Error(err))
			return out
		}
		out.initiated.value = res.SessionToken
		out.initiated.ttl, out.initiated.expires = res.TTL()

		req.Type = targetedcontent.EventSessionRefresh
		req.SessionToken = res.SessionToken
	} else {
		req.Type = targetedcontent.EventSessionStarted
		req.UserIDVerification = user.UserIDVerification
		req.UserAttributes = user.UserAttributes
	}

	start := time.Now()
	res, err := p.gateway.FireEvent(ctx, req)
	p.observer.RemoteCall(Operation(req.Type), time.Since(start), err)
	if err != nil {
		p.logger.ErrorContext(ctx, "targeted content fetch failed",
			logger.UserID(user.UserID), logger.EventType(string(req.Type)), logger.Error(err))
		return out
	}

	out.ok = true
	out.content = res.Content
	out.refreshed.value = res.SessionToken
	out.refreshed.ttl, out.refreshed.expires = res.TTL()
	return out
}

// settle finishes a fetch: applies its result if the session is still
// current, leaves the in-flight phase and replays queued events.
func (p *Provider) settle(ctx context.Context, gen uint64, out fetchResult) {
	p.mu.Lock()

	current := gen == p.generation
	if current {
		out.initiated.storeIn(p.tokens)
		if out.ok {
			p.content = slices.Clone(out.content)
			out.refreshed.storeIn(p.tokens)
		}
		p.logger.DebugContext(ctx, "session fetch settled",
			slog.Bool("ok", out.ok), logger.Count(len(p.content)))
	} else {
		p.logger.DebugContext(ctx, "discarding fetch result of ended session")
	}

	if err := p.lifecycle.Fire(ctx, signalSettle, current); err != nil {
		p.logger.ErrorContext(ctx, "session lifecycle rejected settle", logger.Error(err))
	}
	p.fetch = nil
	p.drain(ctx)

	subs := p.publishLocked()
	p.mu.Unlock()

	subs.deliver()
}

// drain replays queued events in arrival order until the queue is empty or a
// replayed session start puts a fetch back in flight.
func (p *Provider) drain(ctx context.Context) {
	for !p.inFlight() {
		ev, ok := p.pending.pop()
		if !ok {
			return
		}
		p.apply(ctx, ev, true)
	}
}

func (p *Provider) snapshotLocked() Snapshot {
	snap := snapshotOf(p.selection)
	if p.user != nil {
		snap.UserID = p.user.UserID
	}
	snap.SessionActive = p.lifecycle.Is(phaseActive)
	snap.Establishing = p.inFlight()
	snap.PendingEvents = p.pending.len()
	if _, ok := p.tokens.Read(); ok {
		snap.TokenExpiresAt = p.tokens.ExpiresAt()
	}
	return snap
}

// publishLocked queues the current snapshot for every listener. Queueing
// under p.mu keeps each listener's snapshots in state order; the caller
// delivers them after unlocking.
func (p *Provider) publishLocked() subscribers {
	return p.listeners.publish(p.snapshotLocked())
}

type listeners struct {
	mu   sync.Mutex
	next int
	subs map[int]*subscriber
}

func (l *listeners) add(fn func(Snapshot)) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.subs == nil {
		l.subs = make(map[int]*subscriber)
	}
	l.next++
	l.subs[l.next] = &subscriber{fn: fn}
	return l.next
}

func (l *listeners) remove(id int) {
	l.mu.Lock()
	s, ok := l.subs[id]
	delete(l.subs, id)
	l.mu.Unlock()

	if ok {
		s.close()
	}
}

func (l *listeners) publish(snap Snapshot) subscribers {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]int, 0, len(l.subs))
	for id := range l.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	subs := make(subscribers, 0, len(ids))
	for _, id := range ids {
		s := l.subs[id]
		s.push(snap)
		subs = append(subs, s)
	}
	return subs
}

type subscribers []*subscriber

func (ss subscribers) deliver() {
	for _, s := range ss {
		s.flush()
	}
}

// subscriber is one listener with its undelivered snapshots. At most one
// goroutine drains it at a time, so fn is never called concurrently and
// sees snapshots in the order they were pushed.
type subscriber struct {
	fn func(Snapshot)

	mu       sync.Mutex
	queue    []Snapshot
	draining bool
	closed   bool
}

func (s *subscriber) push(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.queue = append(s.queue, snap)
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.queue = nil
}

// flush delivers queued snapshots unless another goroutine is already doing
// so; that goroutine then delivers what was pushed here as well.
func (s *subscriber) flush() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	finished := false
	defer func() {
		if !finished {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
		}
	}()

	for {
		snap, ok := s.next()
		if !ok {
			finished = true
			return
		}
		s.fn(snap)
	}
}

// next pops the oldest snapshot. When there is none it ends the drain in the
// same critical section, so a concurrent push is never stranded.
func (s *subscriber) next() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || len(s.queue) == 0 {
		s.draining = false
		return Snapshot{}, false
	}
	snap := s.queue[0]
	s.queue[0] = Snapshot{}
	s.queue = s.queue[1:]
	return snap, true
}
