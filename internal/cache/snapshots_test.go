package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalhealth/content-service/internal/cache"
	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/models"
)

func newSnapshots(t *testing.T) *cache.Snapshots {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewSnapshots(client, logger.NewNop())
}

func TestSnapshots_SaveAndLoadRecords(t *testing.T) {
	snaps := newSnapshots(t)
	ctx := context.Background()

	topics := []models.Topic{
		{ID: "a", Title: "Topic A", Body: "..."},
		{ID: "b", Title: "Topic B", Body: "..."},
	}
	require.NoError(t, snaps.Save(ctx, models.ResourceTopics, topics))

	loaded, err := cache.LoadRecords[models.Topic](ctx, snaps, models.ResourceTopics)
	require.NoError(t, err)
	assert.Equal(t, topics, loaded)
}

func TestSnapshots_LoadMissing(t *testing.T) {
	snaps := newSnapshots(t)

	loaded, err := cache.LoadRecords[models.Topic](context.Background(), snaps, models.ResourceTopics)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshots_LastUpdate(t *testing.T) {
	snaps := newSnapshots(t)
	ctx := context.Background()

	missing, err := snaps.LastUpdate(ctx)
	require.NoError(t, err)
	assert.Nil(t, missing)

	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, snaps.SetLastUpdate(ctx, at))

	got, err := snaps.LastUpdate(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(at))
}

func TestSnapshots_Clear(t *testing.T) {
	snaps := newSnapshots(t)
	ctx := context.Background()

	require.NoError(t, snaps.Save(ctx, models.ResourceQuestions, []models.Question{
		{ID: "q1", Question: "Q?", Answer: "A."},
	}))
	require.NoError(t, snaps.SetLastUpdate(ctx, time.Now()))

	require.NoError(t, snaps.Clear(ctx))

	loaded, err := cache.LoadRecords[models.Question](ctx, snaps, models.ResourceQuestions)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	at, err := snaps.LastUpdate(ctx)
	require.NoError(t, err)
	assert.Nil(t, at)
}

func TestSnapshots_NilIsNoOp(t *testing.T) {
	var snaps *cache.Snapshots
	ctx := context.Background()

	assert.NoError(t, snaps.Save(ctx, models.ResourceTopics, []models.Topic{}))
	assert.NoError(t, snaps.Clear(ctx))

	loaded, err := cache.LoadRecords[models.Topic](ctx, snaps, models.ResourceTopics)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}
