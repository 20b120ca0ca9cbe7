package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
)

// Pending is the result of a deferred catalog query. It resolves exactly
// once and cannot be cancelled.
type Pending[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Done is closed when the query has resolved.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the query resolves and returns its result.
func (p *Pending[T]) Wait() (T, error) {
	<-p.done
	return p.val, p.err
}

// Delays configures the simulated latency of deferred queries.
type Delays struct {
	FetchAll time.Duration
	Query    time.Duration
}

// DefaultDelays mirrors the storefront's simulated network latency.
func DefaultDelays() Delays {
	return Delays{
		FetchAll: 500 * time.Millisecond,
		Query:    300 * time.Millisecond,
	}
}

// ViewState is a point-in-time copy of a QueryView.
type ViewState struct {
	Products []domain.Product
	Current  *domain.Product
	Loading  bool
	Err      error
}

// QueryView holds the observable results of deferred queries. It is the
// shared store in-process consumers read; callers that only need their own
// result use Pending.Wait instead. Each query applies its result when it
// resolves, so with overlapping queries the one that resolves last wins
// regardless of issue order.
type QueryView struct {
	mu    sync.RWMutex
	state ViewState
}

// State returns a copy of the current view.
func (v *QueryView) State() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := v.state
	s.Products = slices.Clone(s.Products)
	if s.Current != nil {
		c := s.Current.Clone()
		s.Current = &c
	}
	return s
}

func (v *QueryView) update(fn func(*ViewState)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.state)
}

// DeferredCatalog issues catalog queries after a simulated delay and
// publishes their results to a QueryView.
type DeferredCatalog struct {
	svc    *CatalogService
	delays Delays
	view   *QueryView
	after  func(time.Duration) <-chan time.Time // injectable for testing
}

// NewDeferredCatalog wraps svc with the given delays.
func NewDeferredCatalog(svc *CatalogService, delays Delays) *DeferredCatalog {
	return &DeferredCatalog{
		svc:    svc,
		delays: delays,
		view:   &QueryView{},
		after:  time.After,
	}
}

// View returns the view the deferred queries publish to.
func (d *DeferredCatalog) View() *QueryView {
	return d.view
}

// runDeferred starts fn after delay on its own goroutine. The caller's
// cancellation does not reach fn; its values (logger, trace) do.
func runDeferred[T any](
	ctx context.Context,
	d *DeferredCatalog,
	delay time.Duration,
	fn func(context.Context) (T, error),
	apply func(*ViewState, T, error),
) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	ctx = context.WithoutCancel(ctx)

	d.view.update(func(s *ViewState) {
		s.Loading = true
		s.Err = nil
	})

	go func() {
		defer close(p.done)
		if delay > 0 {
			<-d.after(delay)
		}
		p.val, p.err = fn(ctx)
		d.view.update(func(s *ViewState) {
			s.Loading = false
			s.Err = p.err
			apply(s, p.val, p.err)
		})
	}()

	return p
}

func setProducts(s *ViewState, products []domain.Product, err error) {
	if err == nil {
		s.Products = products
	}
}

// FetchAll resolves to the whole catalog.
func (d *DeferredCatalog) FetchAll(ctx context.Context) *Pending[[]domain.Product] {
	return runDeferred(ctx, d, d.delays.FetchAll,
		func(ctx context.Context) ([]domain.Product, error) {
			return d.svc.FetchAll(ctx), nil
		},
		setProducts,
	)
}

// FetchByID resolves to a single product. On NotFound the view's current
// product is cleared and the error is published.
func (d *DeferredCatalog) FetchByID(ctx context.Context, id string) *Pending[domain.Product] {
	return runDeferred(ctx, d, d.delays.Query,
		func(ctx context.Context) (domain.Product, error) {
			return d.svc.FetchByID(ctx, id)
		},
		func(s *ViewState, p domain.Product, err error) {
			if err != nil {
				s.Current = nil
				return
			}
			s.Current = &p
		},
	)
}

// Search resolves to the products matching query.
func (d *DeferredCatalog) Search(ctx context.Context, query string) *Pending[[]domain.Product] {
	return runDeferred(ctx, d, d.delays.Query,
		func(ctx context.Context) ([]domain.Product, error) {
			return d.svc.Search(ctx, query), nil
		},
		setProducts,
	)
}

// Filter resolves to the products matching f.
func (d *DeferredCatalog) Filter(ctx context.Context, f domain.Filter) *Pending[[]domain.Product] {
	return runDeferred(ctx, d, d.delays.Query,
		func(ctx context.Context) ([]domain.Product, error) {
			return d.svc.Filter(ctx, f), nil
		},
		setProducts,
	)
}
