package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
)

// Publisher は予約イベントを RabbitMQ の topic exchange に送信する
// ルーティングキーはイベント種別（booking.created など）
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// NewPublisher はブローカーに接続し、exchange を宣言する
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("RabbitMQ接続に失敗しました: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("チャネル作成に失敗しました: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("exchange宣言に失敗しました: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish はイベントを永続メッセージとして送信する
func (p *Publisher) Publish(ctx context.Context, e booking.Event) error {
	msg, err := newPublishing(e)
	if err != nil {
		return err
	}
	// amqp.Channel は並行送信に対応しないため直列化する
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, p.exchange, string(e.Type), false, false, msg); err != nil {
		return fmt.Errorf("イベント送信に失敗しました: %w", err)
	}
	return nil
}

// Close はチャネルと接続を閉じる
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// messageID は同じ予約・同じ種別のイベントでも送信ごとに一意
func messageID(e booking.Event) string {
	return fmt.Sprintf("%s:%s:%s", e.Reference, e.Type, uuid.NewString())
}

func newPublishing(e booking.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("イベントのエンコードに失敗しました: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID(e),
		Timestamp:    e.OccurredAt,
		Type:         string(e.Type),
		Body:         body,
	}, nil
}

var _ booking.EventPublisher = (*Publisher)(nil)
