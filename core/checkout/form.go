package checkout

import (
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("unknown form field")

// Form holds what the buyer typed. Only presence is checked, and only when
// the order is placed.
type Form struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`

	CardNumber string `json:"cardNumber" validate:"required"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
}

func (f *Form) field(name string) (*string, bool) {
	switch name {
	case "firstName":
		return &f.FirstName, true
	case "lastName":
		return &f.LastName, true
	case "email":
		return &f.Email, true
	case "phone":
		return &f.Phone, true
	case "address":
		return &f.Address, true
	case "city":
		return &f.City, true
	case "zipCode":
		return &f.ZipCode, true
	case "cardNumber":
		return &f.CardNumber, true
	case "expiryDate":
		return &f.ExpiryDate, true
	case "cvv":
		return &f.CVV, true
	}
	return nil, false
}

// Set assigns value to the field with the given JSON name.
func (f *Form) Set(name, value string) error {
	p, ok := f.field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*p = value
	return nil
}
