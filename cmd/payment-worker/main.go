package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/cimyrichardson/art-store/internal/config"
	"github.com/cimyrichardson/art-store/internal/errs"
	"github.com/cimyrichardson/art-store/internal/infra/mq"
	"github.com/cimyrichardson/art-store/internal/logger"
	"github.com/cimyrichardson/art-store/internal/repository/mysql"
	"github.com/cimyrichardson/art-store/internal/service"
)

func main() {
	configPath := flag.String("config", "./config", "配置文件目录")
	debug := flag.Bool("debug", false, "开启调试日志")
	flag.Parse()

	logger.Init(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		zap.L().Fatal("load config failed", zap.Error(err))
	}

	db := mysql.Init(&cfg.MySQL)
	mqConn := mq.Init(&cfg.RabbitMQ)

	orderRepo := mysql.NewOrderRepository(db)
	paymentRepo := mysql.NewPaymentRepository(db)
	// worker 只做结算，不再投递新消息
	orderSvc := service.NewOrderService(db, orderRepo, paymentRepo, nil)

	ch, err := mqConn.Channel()
	if err != nil {
		zap.L().Fatal("failed to open channel", zap.Error(err))
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(mq.PaymentQueue, true, false, false, false, nil); err != nil {
		zap.L().Fatal("failed to declare queue", zap.Error(err))
	}

	// 手动确认，结算失败的消息重新入队
	msgs, err := ch.Consume(mq.PaymentQueue, "", false, false, false, false, nil)
	if err != nil {
		zap.L().Fatal("failed to consume", zap.Error(err))
	}

	zap.L().Info("payment worker started", zap.String("queue", mq.PaymentQueue))

	for d := range msgs {
		var msg mq.PaymentMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			zap.L().Error("drop malformed message", zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := orderSvc.SettlePayment(ctx, msg.OrderID, 0)
		cancel()

		switch {
		case err == nil:
			zap.L().Info("payment settled", zap.Int64("order_id", msg.OrderID))
			_ = d.Ack(false)
		case errors.Is(err, errs.ErrNotFound):
			// 订单/支付记录不存在，重试也无意义
			zap.L().Warn("payment target missing", zap.Int64("order_id", msg.OrderID))
			_ = d.Nack(false, false)
		default:
			zap.L().Error("settle payment failed, requeue",
				zap.Int64("order_id", msg.OrderID), zap.Error(err))
			_ = d.Nack(false, true)
		}
	}
}
