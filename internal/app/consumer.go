package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rahalatek/internal/events"
	"rahalatek/internal/messaging/kafka/consumer"
	"rahalatek/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer keeps the cached ledger reports honest: any voucher or debt
// change event drops them from Redis.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), connectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	voucherReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.VoucherChangedTopic,
		GroupID:        "rahalatek-ledger-cache",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer voucherReader.Close()

	debtReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.DebtChangedTopic,
		GroupID:        "rahalatek-ledger-cache",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer debtReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLedgerInvalidation(ctx, voucherReader, rdb, logger)
	go consumer.ConsumeLedgerInvalidation(ctx, debtReader, rdb, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
