package events

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
)

const orderQueue = "order_events"

// OrderPlaced 下单成功事件，供下游（通知、对账等）消费
type OrderPlaced struct {
	OrderID int64  `json:"order_id"`
	UserID  int64  `json:"user_id"`
	Total   string `json:"total"`
}

// Publisher 订单事件发布器
type Publisher struct {
	conn *amqp.Connection
}

// NewPublisher 创建发布器
func NewPublisher(conn *amqp.Connection) *Publisher {
	return &Publisher{conn: conn}
}

// PublishOrderPlaced 投递下单事件到 order_events 队列
func (p *Publisher) PublishOrderPlaced(ctx context.Context, evt *OrderPlaced) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(orderQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(
		ctx,
		"",
		orderQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
