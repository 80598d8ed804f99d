package consumer

import (
	"context"
	"encoding/json"

	"rahalatek/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const ledgerCachePattern = "ledger:*"

// ConsumeLedgerInvalidation drops every cached ledger report whenever a
// voucher or debt change lands. Reports are cheap to recompute and a stale
// balance is worse than a cache miss, so invalidation is wholesale.
func ConsumeLedgerInvalidation(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.ledger_invalidation")
	log.Info("ledger invalidation consumer started", zap.String("topic", reader.Config().Topic))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("ledger invalidation consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		var event events.VoucherChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode change event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := invalidateLedgerCache(ctx, rdb); err != nil {
			log.Error("invalidate ledger cache failed", zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
			continue
		}

		log.Info("ledger cache invalidated",
			zap.String("event_type", event.EventType),
			zap.String("topic", msg.Topic),
		)
	}
}

func invalidateLedgerCache(ctx context.Context, rdb *redis.Client) error {
	keys, err := rdb.Keys(ctx, ledgerCachePattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
