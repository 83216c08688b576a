package middleware

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/hotwheels-store/api/web"
	"github.com/irsalhamdi/hotwheels-store/api/weberr"
	"github.com/sirupsen/logrus"
)

// Errors logs every error a handler returns and writes the response attached
// to it, or a generic 500 when the error carries none. Downstream failures
// never leak their cause to the client.
func Errors(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			fields := logrus.Fields{
				"req_id":  ContextRequestID(ctx),
				"message": err,
			}
			if f, ok := weberr.Fields(err); ok {
				for k, v := range f {
					fields[k] = v
				}
			}

			body, code, ok := weberr.Response(err)
			if !ok {
				body, code, _ = weberr.Response(weberr.InternalError(err))
			}
			fields["statuscode"] = code

			entry := log.WithFields(fields)
			if code >= http.StatusInternalServerError {
				entry.Error("ERROR")
			} else {
				entry.Warn("request rejected")
			}

			return web.Respond(ctx, w, body, code)
		}
		return h
	}
	return m
}
