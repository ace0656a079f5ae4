package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hospital-management/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSchedulingLock_SerialisesPerDoctor(t *testing.T) {
	_, client := newRedis(t)
	svc := NewSchedulingLockService(client, testutil.Logger(), time.Second, time.Second)
	defer svc.Stop()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.WithDoctorLock(context.Background(), 7, func(ctx context.Context) error {
				n := inside.Add(1)
				for {
					m := maxInside.Load()
					if n <= m || maxInside.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, maxInside.Load())
}

func TestSchedulingLock_ReleasesKey(t *testing.T) {
	mr, client := newRedis(t)
	svc := NewSchedulingLockService(client, testutil.Logger(), time.Second, time.Second)
	defer svc.Stop()

	sentinel := errors.New("fn failed")
	err := svc.WithDoctorLock(context.Background(), 3, func(ctx context.Context) error {
		assert.True(t, mr.Exists("scheduling:doctor:3"))
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, mr.Exists("scheduling:doctor:3"))
}

func TestSchedulingLock_TimesOutWhenHeldElsewhere(t *testing.T) {
	mr, client := newRedis(t)
	require.NoError(t, mr.Set("scheduling:doctor:9", "other-process"))

	svc := NewSchedulingLockService(client, testutil.Logger(), time.Second, 50*time.Millisecond)
	defer svc.Stop()

	called := false
	err := svc.WithDoctorLock(context.Background(), 9, func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.False(t, called)

	got, err := mr.Get("scheduling:doctor:9")
	require.NoError(t, err)
	assert.Equal(t, "other-process", got)
}

func TestSchedulingLock_WithoutRedis(t *testing.T) {
	svc := NewSchedulingLockService(nil, testutil.Logger(), time.Second, time.Second)
	defer svc.Stop()

	called := false
	require.NoError(t, svc.WithDoctorLock(context.Background(), 1, func(ctx context.Context) error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

func TestSchedulingLock_CleanupStaleMutexes(t *testing.T) {
	svc := NewSchedulingLockService(nil, testutil.Logger(), time.Second, time.Second)
	defer svc.Stop()

	require.NoError(t, svc.WithDoctorLock(context.Background(), 1, func(ctx context.Context) error { return nil }))

	assert.Equal(t, 0, svc.cleanupStaleMutexes(time.Now().Add(-time.Hour)))
	assert.Equal(t, 1, svc.cleanupStaleMutexes(time.Now().Add(time.Hour)))

	svc.Stop()
	svc.Stop()
}

func TestSchedulingLock_ExclusiveWhileCleanupRuns(t *testing.T) {
	svc := NewSchedulingLockService(nil, testutil.Logger(), time.Second, time.Second)
	defer svc.Stop()

	stop := make(chan struct{})
	var cleaner sync.WaitGroup
	cleaner.Add(1)
	go func() {
		defer cleaner.Done()
		for {
			select {
			case <-stop:
				return
			default:
				// every entry counts as stale
				svc.cleanupStaleMutexes(time.Now().Add(time.Hour))
			}
		}
	}()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				err := svc.WithDoctorLock(context.Background(), 1, func(ctx context.Context) error {
					n := inside.Add(1)
					for {
						m := maxInside.Load()
						if n <= m || maxInside.CompareAndSwap(m, n) {
							break
						}
					}
					inside.Add(-1)
					return nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	close(stop)
	cleaner.Wait()

	assert.EqualValues(t, 1, maxInside.Load())
}
