package models

import (
	"time"

	"gofalre.io/storefront/models/enum"
)

type CartEvent struct {
	ID         string             `json:"id"`
	Type       enum.CartEventType `json:"type"`
	Items      Cart               `json:"items"`
	Count      int                `json:"count"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type Notification struct {
	Severity enum.Severity `json:"severity"`
	Message  string        `json:"message"`
	SentAt   time.Time     `json:"sent_at"`
}
