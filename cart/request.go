package cart

type UpdateProductAmountParams struct {
	ProductID uint64
	Amount    int
}
