package checkout

import (
	"encoding/gob"
	"errors"

	"github.com/irsalhamdi/hotwheels-store/core/cart"
)

var (
	ErrEmptyCart         = errors.New("no items to checkout")
	ErrInvalidTransition = errors.New("transition not allowed from the current step")
	ErrCompleted         = errors.New("order already placed")
)

type Step int

const (
	Shipping Step = iota + 1
	Payment
	Review
	Complete
)

func (s Step) String() string {
	switch s {
	case Shipping:
		return "shipping"
	case Payment:
		return "payment"
	case Review:
		return "review"
	case Complete:
		return "complete"
	}
	return "unknown"
}

func init() {
	gob.Register(Flow{})
}

// Flow is one checkout of a cart snapshot. Steps only move one at a time;
// Complete is terminal.
type Flow struct {
	Step         Step
	Form         Form
	Cart         cart.Cart
	Confirmation *Confirmation
}

func Begin(c cart.Cart) (Flow, error) {
	if c.Len() == 0 {
		return Flow{}, ErrEmptyCart
	}
	return Flow{Step: Shipping, Cart: c.Clone()}, nil
}

func (f *Flow) Next() error {
	switch f.Step {
	case Shipping, Payment:
		f.Step++
		return nil
	case Complete:
		return ErrCompleted
	}
	return ErrInvalidTransition
}

// Back moves to the previous step. Going back from Shipping stays put.
func (f *Flow) Back() error {
	switch f.Step {
	case Payment, Review:
		f.Step--
		return nil
	case Shipping:
		return nil
	case Complete:
		return ErrCompleted
	}
	return ErrInvalidTransition
}

// SetField updates one form field while the order is still open.
func (f *Flow) SetField(name, value string) error {
	if f.Step == Complete {
		return ErrCompleted
	}
	return f.Form.Set(name, value)
}

func (f *Flow) Breakdown() Breakdown {
	return Price(f.Cart.Total())
}

// View is the flow as shown to clients.
type View struct {
	Step         Step          `json:"step"`
	StepName     string        `json:"stepName"`
	Form         Form          `json:"form"`
	Items        []cart.Entry  `json:"items"`
	Breakdown    Breakdown     `json:"breakdown"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
}

func (f *Flow) View() View {
	return View{
		Step:         f.Step,
		StepName:     f.Step.String(),
		Form:         f.Form,
		Items:        f.Cart.Summary().Items,
		Breakdown:    f.Breakdown(),
		Confirmation: f.Confirmation,
	}
}
