package models

// Stock is the available inventory for one product.
type Stock struct {
	ID     uint64 `json:"id"`
	Amount int    `json:"amount"`
}
