package models

// Cart 代表購物車: an ordered list of products, unique by ID, in insertion order.
type Cart []Product

func NewCart() Cart {
	return Cart{}
}

// IndexOf returns the position of productID in the cart, or -1.
func (c Cart) IndexOf(productID uint64) int {
	for i := range c {
		if c[i].ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Find(productID uint64) (Product, bool) {
	if i := c.IndexOf(productID); i >= 0 {
		return c[i], true
	}
	return Product{}, false
}

// Clone returns a copy that can be mutated without touching c. It is never nil.
func (c Cart) Clone() Cart {
	clone := make(Cart, len(c))
	copy(clone, c)
	return clone
}

func (c Cart) Equal(other Cart) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of units held, summed over all items.
func (c Cart) Count() int {
	count := 0
	for _, item := range c {
		count += item.Amount
	}
	return count
}
