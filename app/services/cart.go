package services

import (
	"encoding/json"
)

// MaxLineQuantity bounds a single cart line.
const MaxLineQuantity = 1000

// CartLine is one entry of the client-held cart, submitted at checkout.
// Clients send {id|menuItemId, qty|quantity}; any price they include is
// ignored.
type CartLine struct {
	MenuItemID uint
	Quantity   int

	problem string
}

func (l *CartLine) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID         FlexInt `json:"id"`
		MenuItemID FlexInt `json:"menuItemId"`
		Qty        FlexInt `json:"qty"`
		Quantity   FlexInt `json:"quantity"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*l = CartLine{}

	id := raw.ID
	if !id.Present {
		id = raw.MenuItemID
	}
	if v, ok := id.ID(); ok {
		l.MenuItemID = v
	} else {
		l.problem = "Invalid menu item id"
		return nil
	}

	qty := raw.Qty
	if !qty.Present {
		qty = raw.Quantity
	}
	switch {
	case !qty.Numeric, qty.Value == 0 && qty.OK:
		l.Quantity = 1
	case !qty.OK:
		l.problem = "Quantity must be a whole number"
	case qty.Value < 0:
		l.problem = "Quantity must be positive"
	case qty.Value > MaxLineQuantity:
		l.problem = "Quantity is too large"
	default:
		l.Quantity = int(qty.Value)
	}
	return nil
}

// Cart is the client-submitted list of lines.
type Cart []CartLine

// Validate reports the first malformed line as ErrInvalidInput.
func (c Cart) Validate() error {
	if len(c) == 0 {
		return invalidInput("Order must contain at least one item")
	}
	for i, l := range c {
		if l.problem != "" {
			return invalidInput("Item %d: %s", i+1, l.problem)
		}
		if l.MenuItemID == 0 {
			return invalidInput("Item %d: Invalid menu item id", i+1)
		}
		if l.Quantity <= 0 {
			return invalidInput("Item %d: Quantity must be positive", i+1)
		}
	}
	return nil
}

// MenuItemIDs returns the distinct referenced ids in first-seen order.
func (c Cart) MenuItemIDs() []uint {
	seen := make(map[uint]bool, len(c))
	ids := make([]uint, 0, len(c))
	for _, l := range c {
		if !seen[l.MenuItemID] {
			seen[l.MenuItemID] = true
			ids = append(ids, l.MenuItemID)
		}
	}
	return ids
}
