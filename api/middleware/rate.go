package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/irsalhamdi/hotwheels-store/api/web"
	"github.com/irsalhamdi/hotwheels-store/api/weberr"
	"github.com/irsalhamdi/hotwheels-store/rate"
)

// Rate rejects requests from clients that exceed lim.
func Rate(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			client := clientAddr(r)
			if !lim.Check(client) {
				return weberr.TooManyRequests(
					errors.New("rate limit exceeded"),
					weberr.WithFields(map[string]any{"client": client}),
				)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
