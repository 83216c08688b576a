package weberr

import "errors"

// Opt decorates an error with extra behavior understood by the error middleware.
type Opt func(error) error

func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse attaches the body and status the client should receive.
func WithResponse(body any, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

// WithFields attaches structured fields to be logged alongside the error.
func WithFields(fields map[string]any) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}

type responder interface {
	Response() (body any, status int)
}

func Response(err error) (body any, status int, ok bool) {
	var re responder
	if errors.As(err, &re) {
		body, status = re.Response()
		return body, status, true
	}
	return nil, 0, false
}

type responseError struct {
	error
	body   any
	status int
}

func (e *responseError) Response() (any, int) { return e.body, e.status }

func (e *responseError) Unwrap() error { return e.error }

type fielder interface {
	Fields() map[string]any
}

// Fields merges the fields of every decorated layer of err, outermost wins.
func Fields(err error) (map[string]any, bool) {
	var out map[string]any
	for err != nil {
		if fe, ok := err.(fielder); ok {
			if out == nil {
				out = make(map[string]any)
			}
			for k, v := range fe.Fields() {
				if _, seen := out[k]; !seen {
					out[k] = v
				}
			}
		}
		err = errors.Unwrap(err)
	}
	return out, out != nil
}

type fieldsError struct {
	error
	fields map[string]any
}

func (e *fieldsError) Fields() map[string]any { return e.fields }

func (e *fieldsError) Unwrap() error { return e.error }
