package booking

import (
	"context"
	"time"
)

// EventType は予約イベントの種類
type EventType string

const (
	EventCreated      EventType = "booking.created"
	EventMealSelected EventType = "booking.meal_selected"
	EventReleased     EventType = "booking.released"
)

// Event は予約の状態変化を外部へ通知するためのペイロード
type Event struct {
	Type       EventType `json:"type"`
	Reference  string    `json:"reference"`
	Seat       string    `json:"seat"`
	LastName   string    `json:"last_name"`
	Meal       string    `json:"meal,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent は予約からイベントを作成する
func NewEvent(t EventType, b *Booking) Event {
	return Event{
		Type:       t,
		Reference:  b.Reference,
		Seat:       b.Seat.String(),
		LastName:   b.LastName,
		Meal:       string(b.Meal),
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher は予約イベントの送信先
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}
