package cart

import (
	"github.com/irsalhamdi/hotwheels-store/core/hotwheel"
	"github.com/irsalhamdi/hotwheels-store/validate"
	"github.com/shopspring/decimal"
)

// Entry is one line of the cart. Adding the same catalog item twice yields
// two entries told apart by CartID.
type Entry struct {
	hotwheel.Hotwheel
	CartID string `json:"cartId"`
}

// Cart is an ordered list of entries; insertion order is display order.
// The zero value is an empty cart.
type Cart struct {
	Entries []Entry
}

func (c *Cart) Add(hw hotwheel.Hotwheel) Entry {
	e := Entry{Hotwheel: hw, CartID: validate.GenerateID()}
	c.Entries = append(c.Entries, e)
	return e
}

// Remove drops the entry with cartID and reports whether it was present.
func (c *Cart) Remove(cartID string) bool {
	kept := make([]Entry, 0, len(c.Entries))
	removed := false
	for _, e := range c.Entries {
		if e.CartID == cartID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	c.Entries = kept
	return removed
}

func (c *Cart) Clear() {
	c.Entries = nil
}

func (c Cart) Len() int {
	return len(c.Entries)
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.Price)
	}
	return total
}

// Clone returns a cart that shares no backing array with c.
func (c Cart) Clone() Cart {
	if c.Entries == nil {
		return Cart{}
	}
	entries := make([]Entry, len(c.Entries))
	copy(entries, c.Entries)
	return Cart{Entries: entries}
}

// Summary is the cart as shown to clients.
type Summary struct {
	Items []Entry         `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func (c Cart) Summary() Summary {
	items := c.Entries
	if items == nil {
		items = []Entry{}
	}
	return Summary{Items: items, Count: c.Len(), Total: c.Total()}
}
