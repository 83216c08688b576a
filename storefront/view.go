package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/irsalhamdi/hotwheels-store/core/cart"
	"github.com/irsalhamdi/hotwheels-store/core/checkout"
	"github.com/irsalhamdi/hotwheels-store/core/hotwheel"
	"github.com/irsalhamdi/hotwheels-store/validate"
	"github.com/sirupsen/logrus"
)

const (
	MsgUnreachable = "Cannot connect to the catalog gateway. Make sure it is running and retry."
	MsgLoadFailed  = "Failed to load hotwheels. Please try again."
)

// ErrBlocked is returned by catalog operations while the gateway is not
// known to be reachable. Retry lifts it.
var ErrBlocked = errors.New("catalog blocked until the gateway is reachable")

// State is a snapshot of what the shopper sees.
type State struct {
	Connected bool
	Loading   bool
	Message   string
	Query     hotwheel.Query
	Items     []hotwheel.Hotwheel
	CartCount int
}

// View is one shopper's catalog session. It is safe for concurrent use;
// requests run without holding its lock and only the most recently issued
// catalog fetch may update the listing.
type View struct {
	client *Client
	log    logrus.FieldLogger

	mu        sync.Mutex
	connected bool
	loading   bool
	message   string
	query     hotwheel.Query
	items     []hotwheel.Hotwheel
	cart      cart.Cart
	seq       uint64
}

func NewView(client *Client, log logrus.FieldLogger) *View {
	return &View{
		client: client,
		log:    log,
		query:  hotwheel.DefaultQuery(),
	}
}

// Connect checks that the gateway answers and, if so, loads the catalog.
// When it does not, the view stays blocked and no catalog request is made.
func (v *View) Connect(ctx context.Context) error {
	h, err := v.client.Health(ctx)

	v.mu.Lock()
	if err != nil {
		v.connected = false
		v.message = MsgUnreachable
		v.mu.Unlock()

		v.log.WithError(err).Warn("gateway connection failed")
		return err
	}
	v.connected = true
	v.message = ""
	v.mu.Unlock()

	v.log.WithFields(logrus.Fields{
		"database": h.Database,
		"count":    h.Count,
	}).Info("gateway connected")

	return v.Refresh(ctx)
}

// Retry is the manual action offered while the view is blocked.
func (v *View) Retry(ctx context.Context) error {
	return v.Connect(ctx)
}

func (v *View) SetSearch(ctx context.Context, term string) error {
	return v.update(ctx, func(q *hotwheel.Query) { q.Search = term })
}

func (v *View) SetSort(ctx context.Context, field string) error {
	return v.update(ctx, func(q *hotwheel.Query) { q.Sort = field })
}

func (v *View) SetOrder(ctx context.Context, order string) error {
	return v.update(ctx, func(q *hotwheel.Query) { q.Order = order })
}

// update applies change to the query and refetches right away while
// connected. An invalid query is rejected before any request.
func (v *View) update(ctx context.Context, change func(*hotwheel.Query)) error {
	v.mu.Lock()
	q := v.query
	change(&q)
	if err := validate.Check(q); err != nil {
		v.mu.Unlock()
		return err
	}
	v.query = q
	connected := v.connected
	v.mu.Unlock()

	if !connected {
		return nil
	}
	return v.Refresh(ctx)
}

// Refresh fetches the catalog for the current query.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	if !v.connected {
		v.mu.Unlock()
		return ErrBlocked
	}
	v.seq++
	seq := v.seq
	q := v.query
	v.loading = true
	v.message = ""
	v.mu.Unlock()

	items, err := v.client.List(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		// A newer fetch was issued meanwhile; it owns the listing.
		return nil
	}
	v.loading = false

	switch {
	case err == nil:
		v.items = items
		return nil
	case errors.Is(err, ErrUnreachable):
		v.connected = false
		v.message = MsgUnreachable
	default:
		v.message = MsgLoadFailed
	}

	v.log.WithError(err).WithField("query", q).Warn("fetching hotwheels")
	return err
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	items := make([]hotwheel.Hotwheel, len(v.items))
	copy(items, v.items)

	return State{
		Connected: v.connected,
		Loading:   v.loading,
		Message:   v.message,
		Query:     v.query,
		Items:     items,
		CartCount: v.cart.Len(),
	}
}

func (v *View) AddToCart(hw hotwheel.Hotwheel) cart.Entry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cart.Add(hw)
}

func (v *View) RemoveFromCart(cartID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cart.Remove(cartID)
}

func (v *View) ClearCart() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cart.Clear()
}

// Cart returns a copy of the cart.
func (v *View) Cart() cart.Cart {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cart.Clone()
}

// Checkout starts a checkout over the current cart.
func (v *View) Checkout() (checkout.Flow, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return checkout.Begin(v.cart)
}

// PlaceOrder submits f and, once the order is placed, empties the cart.
func (v *View) PlaceOrder(ctx context.Context, f *checkout.Flow, p checkout.Processor) (checkout.Confirmation, error) {
	conf, err := p.Place(ctx, f)
	if err != nil {
		return checkout.Confirmation{}, fmt.Errorf("placing order: %w", err)
	}

	v.ClearCart()
	v.log.WithFields(logrus.Fields{
		"order": conf.Number,
		"items": conf.Items,
		"total": conf.Breakdown.Total.StringFixed(2),
	}).Info("order placed")

	return conf, nil
}

// ContinueShopping is the way back from a completed checkout: the flow is
// discarded along with whatever is left in the cart.
func (v *View) ContinueShopping(f *checkout.Flow) {
	*f = checkout.Flow{}
	v.ClearCart()
}
