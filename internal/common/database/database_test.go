package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"collab-workers/internal/common/config"
	apperrors "collab-workers/internal/common/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresClient_PingAndClose(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing()
	mock.ExpectClose()

	client := NewPostgresFromDB(db)
	require.NoError(t, client.Ping(context.Background()))
	require.NoError(t, client.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_PingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	err = NewPostgresFromDB(db).Ping(context.Background())
	require.Error(t, err)

	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeDatabaseConnectionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Contains(t, errors.Unwrap(err).Error(), "connection refused")
}

func TestRedisClient_JSONRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx))

	type payload struct {
		Pairs int `json:"pairs"`
	}
	require.NoError(t, client.SetJSON(ctx, "collab:1", payload{Pairs: 3}, time.Minute))

	var got payload
	require.NoError(t, client.GetJSON(ctx, "collab:1", &got))
	assert.Equal(t, 3, got.Pairs)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, client.GetJSON(ctx, "collab:1", &got), ErrCacheMiss)
}

func TestRedisClient_CorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("collab:bad", "{not json"))

	client := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer client.Close()

	var dst map[string]interface{}
	err := client.GetJSON(context.Background(), "collab:bad", &dst)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}
