package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/hotwheels-store/api/web"
	"github.com/irsalhamdi/hotwheels-store/api/weberr"
	"github.com/irsalhamdi/hotwheels-store/core/cart"
)

var errNoCheckout = errors.New("no checkout in progress")

func stepError(err error, f Flow) error {
	fields := weberr.WithFields(map[string]any{"step": f.Step.String()})
	switch {
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrCompleted):
		return weberr.Conflict(err, fields)
	case errors.Is(err, ErrUnknownField), IsValidation(err):
		return weberr.BadRequest(err, fields)
	}
	return fmt.Errorf("checkout at step %s: %w", f.Step, err)
}

func loadFlow(ctx context.Context, sm *scs.SessionManager) (Flow, error) {
	f, ok := Load(ctx, sm)
	if !ok {
		return Flow{}, weberr.NotFound(errNoCheckout)
	}
	return f, nil
}

// HandleBegin opens a checkout over the session cart, replacing any open one.
func HandleBegin(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, err := Begin(cart.Load(ctx, sm))
		if err != nil {
			return weberr.Unprocessable(err)
		}
		Save(ctx, sm, f)

		return web.Respond(ctx, w, f.View(), http.StatusCreated)
	}
}

func HandleShow(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, err := loadFlow(ctx, sm)
		if err != nil {
			return err
		}
		return web.Respond(ctx, w, f.View(), http.StatusOK)
	}
}

// HandleUpdateForm sets the given fields by name. Either every field is
// applied or none is.
func HandleUpdateForm(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, err := loadFlow(ctx, sm)
		if err != nil {
			return err
		}

		var fields map[string]string
		if err := web.Decode(w, r, &fields); err != nil {
			return weberr.BadRequest(err)
		}

		for name, value := range fields {
			if err := f.SetField(name, value); err != nil {
				return stepError(err, f)
			}
		}
		Save(ctx, sm, f)

		return web.Respond(ctx, w, f.View(), http.StatusOK)
	}
}

func HandleNext(sm *scs.SessionManager) web.Handler {
	return handleTransition(sm, (*Flow).Next)
}

func HandleBack(sm *scs.SessionManager) web.Handler {
	return handleTransition(sm, (*Flow).Back)
}

func handleTransition(sm *scs.SessionManager, move func(*Flow) error) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, err := loadFlow(ctx, sm)
		if err != nil {
			return err
		}
		if err := move(&f); err != nil {
			return stepError(err, f)
		}
		Save(ctx, sm, f)

		return web.Respond(ctx, w, f.View(), http.StatusOK)
	}
}

// HandleSubmit places the order and empties the session cart.
func HandleSubmit(sm *scs.SessionManager, p Processor) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, err := loadFlow(ctx, sm)
		if err != nil {
			return err
		}

		conf, err := p.Place(ctx, &f)
		if err != nil {
			return stepError(err, f)
		}
		Save(ctx, sm, f)
		cart.Drop(ctx, sm)

		return web.Respond(ctx, w, conf, http.StatusOK)
	}
}

// HandleDelete leaves the checkout; the cart is kept unless the order was
// already placed.
func HandleDelete(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		Drop(ctx, sm)
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
