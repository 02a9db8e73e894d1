// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// OrderPlacedEvent is published after an order transaction commits. It
// carries enough information for downstream consumers to log or trigger
// notifications without querying the primary database.
type OrderPlacedEvent struct {
	OrderID       uint64  `json:"order_id"`
	UserID        uint64  `json:"user_id"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
	ItemCount     int     `json:"item_count"`
	PlacedAt      string  `json:"placed_at"`
}
