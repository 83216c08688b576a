package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/hotwheels-store/validate"
)

// ValidationError is returned when the form misses a required field.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// Confirmation is what the buyer sees once the order is placed. Nothing
// about it is stored.
type Confirmation struct {
	Number    string    `json:"orderNumber"`
	Items     int       `json:"items"`
	Breakdown Breakdown `json:"breakdown"`
	PlacedAt  time.Time `json:"placedAt"`
}

// OrderNumber derives a display number from t. It is not globally unique.
func OrderNumber(t time.Time) string {
	return fmt.Sprintf("HW%06d", t.UnixMilli()%1_000_000)
}

// Processor simulates order placement: there is no payment provider, only a
// fixed delay before the order counts as placed.
type Processor struct {
	Delay time.Duration
	Now   func() time.Time
}

func (p Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Place submits f from the Review step. On success f is Complete and carries
// its confirmation. A cancelled ctx leaves f untouched.
func (p Processor) Place(ctx context.Context, f *Flow) (Confirmation, error) {
	switch f.Step {
	case Review:
	case Complete:
		return Confirmation{}, ErrCompleted
	default:
		return Confirmation{}, ErrInvalidTransition
	}

	if err := validate.Check(f.Form); err != nil {
		return Confirmation{}, &ValidationError{Err: err}
	}

	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return Confirmation{}, fmt.Errorf("placing order: %w", ctx.Err())
		case <-timer.C:
		}
	}

	now := p.now().UTC()
	c := Confirmation{
		Number:    OrderNumber(now),
		Items:     f.Cart.Len(),
		Breakdown: f.Breakdown(),
		PlacedAt:  now,
	}
	f.Step = Complete
	f.Confirmation = &c

	return c, nil
}

// IsValidation reports whether err came from a missing form field.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
