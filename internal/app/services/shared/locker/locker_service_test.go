package locker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) CompareAndDelete(ctx context.Context, key, expected string) error {
	args := m.Called(ctx, key, expected)
	return args.Error(0)
}

func (m *MockRedisRepository) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func newTestLockService(repo *MockRedisRepository) *lockService {
	return &lockService{redisRepo: repo, Log: zap.NewNop()}
}

func TestLockService_TryLock(t *testing.T) {
	t.Run("Acquired", func(t *testing.T) {
		repo := new(MockRedisRepository)
		service := newTestLockService(repo)

		repo.On("TrySetNX", mock.Anything, "booking:lock:key", mock.AnythingOfType("string"), 10*time.Second).Return(true, nil)

		acquired, lockValue, err := service.TryLock(context.Background(), "booking:lock:key", 10*time.Second)

		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, lockValue, "caller needs the lock value to release later")
	})

	t.Run("Held Elsewhere", func(t *testing.T) {
		repo := new(MockRedisRepository)
		service := newTestLockService(repo)

		repo.On("TrySetNX", mock.Anything, "booking:lock:key", mock.Anything, mock.Anything).Return(false, nil)

		acquired, lockValue, err := service.TryLock(context.Background(), "booking:lock:key", 10*time.Second)

		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, lockValue)
	})

	t.Run("Redis Error", func(t *testing.T) {
		repo := new(MockRedisRepository)
		service := newTestLockService(repo)

		repo.On("TrySetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))

		acquired, _, err := service.TryLock(context.Background(), "booking:lock:key", 10*time.Second)

		assert.Error(t, err)
		assert.False(t, acquired)
	})
}

func TestLockService_Unlock(t *testing.T) {
	t.Run("Compares The Marshalled Value", func(t *testing.T) {
		repo := new(MockRedisRepository)
		service := newTestLockService(repo)

		// the repository stores values JSON encoded, so the stored string
		// carries quotes around the raw lock value
		repo.On("CompareAndDelete", mock.Anything, "booking:lock:key", `"lock-value"`).Return(nil)

		err := service.Unlock(context.Background(), "booking:lock:key", "lock-value")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Propagates Redis Error", func(t *testing.T) {
		repo := new(MockRedisRepository)
		service := newTestLockService(repo)

		repo.On("CompareAndDelete", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

		err := service.Unlock(context.Background(), "booking:lock:key", "lock-value")

		assert.Error(t, err)
	})
}
