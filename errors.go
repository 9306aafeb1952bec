package storefront

import "errors"

var (
	ErrStockExceeded    = errors.New("requested amount exceeds stock")
	ErrProductNotInCart = errors.New("product not in cart")
)

// Messages shown to the user. Failures other than stock limits are deliberately generic.
const (
	MessageStockExceeded = "Quantidade solicitada fora de estoque"
	MessageAddFailed     = "Erro na adição do produto"
	MessageRemoveFailed  = "Erro na remoção do produto"
	MessageUpdateFailed  = "Erro na alteração de quantidade do produto"
	MessageClearFailed   = "Erro ao esvaziar o carrinho"
)

type operation struct {
	name           string
	failureMessage string
}

var (
	operationAdd    = operation{name: "add_product", failureMessage: MessageAddFailed}
	operationRemove = operation{name: "remove_product", failureMessage: MessageRemoveFailed}
	operationUpdate = operation{name: "update_product_amount", failureMessage: MessageUpdateFailed}
	operationClear  = operation{name: "clear_cart", failureMessage: MessageClearFailed}
)
