package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// Имя поля, под которым в сообщении стрима лежит сериализованный отчёт.
const streamDataField = "data"

const (
	// readBlock - сколько XReadGroup блокируется в ожидании сообщений
	readBlock = time.Second
	// readBatch - максимум сообщений за одно чтение
	readBatch = 10
	// readRetryPause - пауза после ошибки чтения, чтобы не крутить цикл вхолостую
	readRetryPause = time.Second
)

type streamRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStreamRepository создает репозиторий поверх Redis Streams
func NewStreamRepository(client *redis.Client, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client: client,
		logger: logger,
	}
}

// CreateConsumerGroup создаёт consumer group, читающую с хвоста стрима ("$").
// MKSTREAM создаёт сам стрим, если его ещё нет; BUSYGROUP означает, что
// группа уже есть, и ошибкой не считается.
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if err.Error() == "BUSYGROUP Consumer Group name already exists" {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		return fmt.Errorf("create consumer group %q on %q: %w", group, stream, err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream запускает фоновое чтение стрима от имени consumer
// и отдаёт сообщения в канал. Канал закрывается при отмене контекста.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	msgChan := make(chan domain.StreamMessage, readBatch)

	go func() {
		defer close(msgChan)

		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			default:
			}

			if !r.readPending(ctx, stream, group, consumer, msgChan) {
				return
			}
		}
	}()

	return msgChan, nil
}

// readPending читает очередную пачку непрочитанных сообщений (">") и
// проталкивает их в канал. Возвращает false, когда пора останавливаться.
func (r *streamRepository) readPending(ctx context.Context, stream, group, consumer string, msgChan chan<- domain.StreamMessage) bool {
	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    readBatch,
		Block:    readBlock,
	}).Result()

	if err != nil {
		if err == redis.Nil {
			// Нет новых сообщений, блокировка истекла
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		r.logger.Error("Failed to read from stream",
			zap.String("stream", stream),
			zap.Error(err))
		time.Sleep(readRetryPause)
		return true
	}

	for _, entry := range result {
		for _, msg := range entry.Messages {
			data, ok := msg.Values[streamDataField].(string)
			if !ok {
				r.logger.Warn("Stream message without data field",
					zap.String("stream", stream),
					zap.String("message_id", msg.ID))
				continue
			}

			select {
			case msgChan <- domain.StreamMessage{ID: msg.ID, Data: data}:
			case <-ctx.Done():
				return false
			}
		}
	}
	return true
}

// AckMessage подтверждает обработку сообщения в consumer group
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		return fmt.Errorf("ack message %q on %q: %w", messageID, stream, err)
	}

	r.logger.Debug("Message acknowledged",
		zap.String("stream", stream),
		zap.String("message_id", messageID))
	return nil
}

// PublishToStream сериализует данные в JSON и публикует их в стрим
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal stream payload: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			streamDataField: string(payload),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("publish to stream %q: %w", stream, err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
