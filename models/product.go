package models

import "github.com/shopspring/decimal"

// Product 代表商品. Amount is the quantity held in the cart and is zero for catalog records.
type Product struct {
	ID     uint64          `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Amount int             `json:"amount"`
}

func (p Product) Equal(other Product) bool {
	return p.ID == other.ID &&
		p.Amount == other.Amount &&
		p.Title == other.Title &&
		p.Image == other.Image &&
		p.Price.Equal(other.Price)
}

// Subtotal returns price × amount.
func (p Product) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Amount)))
}
