package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/pkg/enums"
)

// ItemKey identifies a cart line. The same photo in two sizes, or the same
// size with two frames, are distinct lines.
type ItemKey struct {
	PhotoID int              `json:"photoId"`
	Size    enums.PrintSize  `json:"size"`
	Frame   enums.FrameStyle `json:"frame"`
}

// LineItem is one configured print in the cart. UnitPrice is frozen when the
// line is first added; later catalog changes do not reprice carts.
type LineItem struct {
	ItemKey
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// LineTotal is the unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is a shopper session's working order.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Subtotal sums every line total.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// ItemCount sums quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) findItem(key ItemKey) int {
	for i, item := range c.Items {
		if item.ItemKey == key {
			return i
		}
	}
	return -1
}

// merge adds the line into the cart, combining quantities when the key
// already exists. The existing line's frozen price wins on merge.
func (c *Cart) merge(line LineItem) {
	if idx := c.findItem(line.ItemKey); idx >= 0 {
		c.Items[idx].Quantity += line.Quantity
		return
	}
	c.Items = append(c.Items, line)
}

// setQuantity updates the line's quantity; zero or negative removes it.
func (c *Cart) setQuantity(key ItemKey, quantity int) bool {
	idx := c.findItem(key)
	if idx < 0 {
		return false
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return true
	}
	c.Items[idx].Quantity = quantity
	return true
}

// remove drops the line entirely.
func (c *Cart) remove(key ItemKey) bool {
	return c.setQuantity(key, 0)
}
