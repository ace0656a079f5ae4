package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockTimeout is returned when the doctor lock could not be taken within
// the configured wait.
var ErrLockTimeout = errors.New("timed out waiting for scheduling lock")

// releaseScript deletes the lock key only while it still holds our token,
// so a lock that expired and was taken by another process is left alone.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisLockKeyPrefix = "scheduling:doctor:"

	lockRetryInterval = 25 * time.Millisecond

	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// SchedulingLock serialises appointment creation per doctor.
type SchedulingLock interface {
	// WithDoctorLock runs fn while holding the lock for doctorID.
	WithDoctorLock(ctx context.Context, doctorID int64, fn func(ctx context.Context) error) error
	Stop()
}

// SchedulingLockService holds a process-local mutex per doctor and, when a
// Redis client is configured, a distributed lock on top of it.
//
// Lock ordering: local mutex first, then the Redis key.
type SchedulingLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	wait        time.Duration

	doctorMu sync.Map // map[int64]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewSchedulingLockService starts the background mutex cleanup. redisClient
// may be nil. Call Stop() during graceful shutdown.
func NewSchedulingLockService(redisClient *redis.Client, log *logrus.Logger, ttl, wait time.Duration) *SchedulingLockService {
	svc := &SchedulingLockService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
		wait:        wait,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop is safe to call multiple times.
func (s *SchedulingLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SchedulingLockService stopped")
	}
}

func (s *SchedulingLockService) WithDoctorLock(ctx context.Context, doctorID int64, fn func(ctx context.Context) error) error {
	mt := s.lockDoctorMutex(doctorID)
	defer func() {
		mt.lastUsed.Store(time.Now().Unix())
		mt.mu.Unlock()
	}()

	if s.redisClient == nil {
		return fn(ctx)
	}

	key := fmt.Sprintf("%s%d", RedisLockKeyPrefix, doctorID)
	token := uuid.NewString()
	if err := s.acquire(ctx, key, token); err != nil {
		return err
	}
	defer s.release(key, token)

	return fn(ctx)
}

func (s *SchedulingLockService) acquire(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(s.wait)
	for {
		ok, err := s.redisClient.SetNX(ctx, key, token, s.ttl).Result()
		if err != nil {
			s.log.Warnf("Failed to acquire scheduling lock %s: %+v", key, err)
			return fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			s.log.Debugf("Acquired scheduling lock %s", key)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// release uses its own context so a cancelled request still frees the key.
func (s *SchedulingLockService) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, s.redisClient, []string{key}, token).Err(); err != nil {
		s.log.Warnf("Failed to release scheduling lock %s: %+v", key, err)
		return
	}
	s.log.Debugf("Released scheduling lock %s", key)
}

// lockDoctorMutex returns the doctor's mutex, locked. The cleanup loop may
// drop an entry between the load and the lock, so the entry is re-checked
// once held and the lookup retried if it was replaced.
func (s *SchedulingLockService) lockDoctorMutex(doctorID int64) *mutexWithTimestamp {
	for {
		value, _ := s.doctorMu.LoadOrStore(doctorID, &mutexWithTimestamp{})
		mt := value.(*mutexWithTimestamp)
		mt.mu.Lock()

		if current, ok := s.doctorMu.Load(doctorID); ok && current == value {
			mt.lastUsed.Store(time.Now().Unix())
			return mt
		}
		mt.mu.Unlock()
	}
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *SchedulingLockService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStaleMutexes drops mutexes unused since cutoff. The lastUsed check
// happens under the lock so a concurrent user cannot slip in between.
func (s *SchedulingLockService) cleanupStaleMutexes(cutoff time.Time) int {
	var cleaned int

	s.doctorMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff.Unix() {
				s.doctorMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
	return cleaned
}
