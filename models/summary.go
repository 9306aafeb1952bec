package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
)

// Summary 代表購物車的金額摘要
type Summary struct {
	Currency stripe.Currency `json:"currency"`
	Items    []SummaryItem   `json:"items"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

type SummaryItem struct {
	Product  Product         `json:"product"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func NewSummary(cart Cart, currency stripe.Currency) *Summary {
	summary := &Summary{
		Currency: currency,
		Items:    make([]SummaryItem, 0, len(cart)),
		Total:    decimal.Zero,
	}

	for _, item := range cart {
		subtotal := item.Subtotal()
		summary.Items = append(summary.Items, SummaryItem{
			Product:  item,
			Subtotal: subtotal,
		})
		summary.Count += item.Amount
		summary.Total = summary.Total.Add(subtotal)
	}

	return summary
}

// FormatPrice renders amount with two decimals, prefixed by the upper-case currency code.
func FormatPrice(amount decimal.Decimal, currency stripe.Currency) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", strings.ToUpper(string(currency)), amount.StringFixed(2))
}
