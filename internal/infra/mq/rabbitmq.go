package mq

import (
	"context"
	"encoding/json"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/cimyrichardson/art-store/internal/config"
)

// PaymentQueue 待结算订单队列，下单成功后投递，payment-worker 消费。
const PaymentQueue = "payment_queue"

// PaymentMessage 队列消息体
type PaymentMessage struct {
	OrderID int64 `json:"order_id"`
}

var (
	conn *amqp.Connection
	once sync.Once
)

// Init 初始化 RabbitMQ 连接
func Init(cfg *config.RabbitMQConfig) *amqp.Connection {
	once.Do(func() {
		c, err := amqp.Dial(cfg.URL)
		if err != nil {
			zap.L().Fatal("failed to connect rabbitmq", zap.Error(err))
		}
		conn = c
	})
	return conn
}

// Conn 获取 MQ 连接
func Conn() *amqp.Connection {
	return conn
}

// PublishPayment 把订单号写入待结算队列（durable）。
func PublishPayment(ctx context.Context, conn *amqp.Connection, orderID int64) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(PaymentQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(&PaymentMessage{OrderID: orderID})
	if err != nil {
		return err
	}

	return ch.PublishWithContext(
		ctx,
		"",
		PaymentQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
