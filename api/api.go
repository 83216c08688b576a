package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/hotwheels-store/api/middleware"
	"github.com/irsalhamdi/hotwheels-store/api/web"
	"github.com/irsalhamdi/hotwheels-store/api/weberr"
	"github.com/irsalhamdi/hotwheels-store/core/cart"
	"github.com/irsalhamdi/hotwheels-store/core/checkout"
	"github.com/irsalhamdi/hotwheels-store/core/hotwheel"
	"github.com/irsalhamdi/hotwheels-store/rate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Session    *scs.SessionManager
	Limiter    *rate.Limiter
	Processor  checkout.Processor
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))
	}
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.Rate(cfg.Limiter))
	}
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	// Unmatched requests go through the same chain so they are logged and
	// carry the CORS headers.
	a.NotFoundHandler = a.wrap(routeError(weberr.NotFound(errNoRoute)))
	a.MethodNotAllowedHandler = a.wrap(routeError(weberr.NewError(errNoRoute,
		http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)))

	a.Handle(http.MethodGet, "/api/test", hotwheel.HandleTest(cfg.DB, cfg.Log))
	a.Handle(http.MethodGet, "/api/hotwheels", hotwheel.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/api/hotwheels/{id}", hotwheel.HandleShow(cfg.DB))

	a.Handle(http.MethodGet, "/api/cart", cart.HandleShow(cfg.Session))
	a.Handle(http.MethodDelete, "/api/cart", cart.HandleDelete(cfg.Session))
	a.Handle(http.MethodPut, "/api/cart/items", cart.HandleCreateItem(cfg.DB, cfg.Session))
	a.Handle(http.MethodDelete, "/api/cart/items/{cart_id}", cart.HandleDeleteItem(cfg.Session))

	a.Handle(http.MethodPost, "/api/checkout", checkout.HandleBegin(cfg.Session))
	a.Handle(http.MethodGet, "/api/checkout", checkout.HandleShow(cfg.Session))
	a.Handle(http.MethodDelete, "/api/checkout", checkout.HandleDelete(cfg.Session))
	a.Handle(http.MethodPatch, "/api/checkout/form", checkout.HandleUpdateForm(cfg.Session))
	a.Handle(http.MethodPost, "/api/checkout/next", checkout.HandleNext(cfg.Session))
	a.Handle(http.MethodPost, "/api/checkout/back", checkout.HandleBack(cfg.Session))
	a.Handle(http.MethodPost, "/api/checkout/submit", checkout.HandleSubmit(cfg.Session, cfg.Processor))

	return cfg.Session.LoadAndSave(a.Router)
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {
	a.Router.Handle(path, a.wrap(handler, mw...)).Methods(method)
}

func (a *api) wrap(handler web.Handler, mw ...web.Middleware) http.Handler {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})
}

var errNoRoute = errors.New("no route")

func routeError(err error) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
