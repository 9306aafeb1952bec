package enum

// CartEventType 表示購物車事件的類型
type CartEventType string

const (
	CartEventTypeUpdated CartEventType = "cart.updated"
	CartEventTypeCleared CartEventType = "cart.cleared"
)
