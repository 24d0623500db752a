package history

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use different DB for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	err = client.FlushDB(ctx).Err()
	require.NoError(t, err)

	return client
}

func cleanupTestRedis(client *redis.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = client.FlushDB(ctx).Err()
	_ = client.Close()
}

func testEvent(i int) *QuoteEvent {
	return &QuoteEvent{
		Timestamp:      time.Now().UTC().Truncate(time.Millisecond),
		InputMint:      "So11111111111111111111111111111111111111112",
		OutputMint:     "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		InAmount:       uint64(1000000 * (i + 1)),
		OutAmount:      uint64(200000 * (i + 1)),
		SlippageBps:    50,
		PriceImpactPct: "0.001",
		Routes:         []string{"Orca"},
	}
}

func TestRedisRecorder_AddAndRecent(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	rec := NewRedisRecorderFromClient(client, nil)
	ctx := context.Background()

	// Empty list
	events, err := rec.RecentQuotes(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, events)

	for i := 0; i < 3; i++ {
		require.NoError(t, rec.AddQuote(ctx, testEvent(i)))
	}

	events, err = rec.RecentQuotes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Newest first
	assert.Equal(t, uint64(3000000), events[0].InAmount)
	assert.Equal(t, uint64(1000000), events[2].InAmount)
	assert.Equal(t, []string{"Orca"}, events[0].Routes)
}

func TestRedisRecorder_Trim(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	rec := NewRedisRecorderFromClient(client, nil)
	ctx := context.Background()

	for i := 0; i < maxRecentQuotes+20; i++ {
		require.NoError(t, rec.AddQuote(ctx, testEvent(i)))
	}

	events, err := rec.RecentQuotes(ctx, maxRecentQuotes+20)
	require.NoError(t, err)
	assert.Len(t, events, maxRecentQuotes)
}

func TestRedisRecorder_LimitClamping(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	rec := NewRedisRecorderFromClient(client, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, rec.AddQuote(ctx, testEvent(i)))
	}

	events, err := rec.RecentQuotes(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = rec.RecentQuotes(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestRedisRecorder_PubSub(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	rec := NewRedisRecorderFromClient(client, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := rec.SubscribeQuotes(ctx)
	require.NoError(t, err)

	want := testEvent(0)
	require.NoError(t, rec.PublishQuote(ctx, want))

	select {
	case got := <-ch:
		require.NotNil(t, got)
		assert.Equal(t, want.InAmount, got.InAmount)
		assert.Equal(t, want.InputMint, got.InputMint)
	case <-ctx.Done():
		t.Fatal("timed out waiting for published quote event")
	}
}

func TestRedisRecorder_MalformedEntriesSkipped(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	rec := NewRedisRecorderFromClient(client, nil)
	ctx := context.Background()

	require.NoError(t, rec.AddQuote(ctx, testEvent(0)))
	require.NoError(t, client.LPush(ctx, redisKeyRecentQuotes, "not json").Err())

	events, err := rec.RecentQuotes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(1000000), events[0].InAmount)
}
