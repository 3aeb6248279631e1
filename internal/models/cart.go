package models

// CartLine holds a product snapshot taken when it was first added.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart keeps one line per product id, in the order products were first added.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add increments the line for p.ID, or appends a new line with quantity 1.
// It returns the resulting quantity of that line.
func (c *Cart) Add(p Product) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Quantity++
			return c.Lines[i].Quantity
		}
	}
	c.Lines = append(c.Lines, CartLine{Product: p, Quantity: 1})
	return 1
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total is recomputed from the lines on every call.
func (c Cart) Total() float64 {
	total := 0.0
	for _, line := range c.Lines {
		total += line.Subtotal()
	}
	return total
}

func (c Cart) Line(productID string) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.Product.ID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}

// Snapshot converts the cart into order items.
func (c Cart) Snapshot() []OrderItem {
	items := make([]OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, OrderItem{
			ID:       line.Product.ID,
			Name:     line.Product.Name,
			Price:    line.Product.Price,
			Quantity: line.Quantity,
		})
	}
	return items
}
