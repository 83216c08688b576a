package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/irsalhamdi/hotwheels-store/api/web"
	"github.com/irsalhamdi/hotwheels-store/random"
)

const (
	RequestIDHeader = "X-Request-Id"

	requestIDLengthLimit = 128
)

type reqIDKeyCtx int

const reqIDKey reqIDKeyCtx = 1

var (
	reqSeq    atomic.Int64
	reqPrefix string
)

func init() {
	p, err := random.StringSecure(10)
	if err != nil {
		p = random.String(10)
	}
	reqPrefix = p
}

// RequestID tags the request with the id the caller sent, or a process
// unique one, and echoes it back in the response headers.
func RequestID() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = fmt.Sprintf("%s-%06d", reqPrefix, reqSeq.Add(1))
			} else if len(id) > requestIDLengthLimit {
				id = id[:requestIDLengthLimit]
			}

			w.Header().Set(RequestIDHeader, id)
			ctx = context.WithValue(ctx, reqIDKey, id)

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func ContextRequestID(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey).(string)
	return id
}
