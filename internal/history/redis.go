package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis keys
const (
	redisKeyRecentQuotes = "quotes:recent"
	pubSubChannelQuotes  = "quotes:live"
)

// Limits
const maxRecentQuotes = 100

// RedisRecorder is a Recorder backed by a Redis list plus a Pub/Sub
// channel for live subscribers.
type RedisRecorder struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRedisRecorder connects to Redis at addr and wraps it in a Recorder.
func NewRedisRecorder(addr string, logger *logrus.Logger) *RedisRecorder {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	return NewRedisRecorderFromClient(client, logger)
}

// NewRedisRecorderFromClient wraps an existing Redis client.
func NewRedisRecorderFromClient(client *redis.Client, logger *logrus.Logger) *RedisRecorder {
	if logger == nil {
		logger = logrus.New()
	}
	return &RedisRecorder{client: client, logger: logger}
}

func (r *RedisRecorder) AddQuote(ctx context.Context, ev *QuoteEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal quote event: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.LPush(ctx, redisKeyRecentQuotes, data)
	pipe.LTrim(ctx, redisKeyRecentQuotes, 0, maxRecentQuotes-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record quote: %w", err)
	}
	return nil
}

func (r *RedisRecorder) RecentQuotes(ctx context.Context, limit int64) ([]*QuoteEvent, error) {
	if limit <= 0 || limit > maxRecentQuotes {
		limit = maxRecentQuotes
	}

	raw, err := r.client.LRange(ctx, redisKeyRecentQuotes, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent quotes: %w", err)
	}

	out := make([]*QuoteEvent, 0, len(raw))
	for _, item := range raw {
		var ev QuoteEvent
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			r.logger.WithError(err).Warn("skipping malformed quote event")
			continue
		}
		out = append(out, &ev)
	}
	return out, nil
}

func (r *RedisRecorder) PublishQuote(ctx context.Context, ev *QuoteEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal quote event: %w", err)
	}
	return r.client.Publish(ctx, pubSubChannelQuotes, data).Err()
}

func (r *RedisRecorder) SubscribeQuotes(ctx context.Context) (<-chan *QuoteEvent, error) {
	pubsub := r.client.Subscribe(ctx, pubSubChannelQuotes)

	// Force the subscription to be established before returning.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan *QuoteEvent)
	go func() {
		defer close(out)
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var ev QuoteEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					r.logger.WithError(err).Warn("skipping malformed quote event")
					continue
				}
				select {
				case out <- &ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (r *RedisRecorder) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRecorder) Close() error {
	return r.client.Close()
}
