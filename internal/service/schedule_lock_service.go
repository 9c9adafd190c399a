package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	lockCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	lockStaleThreshold = 10 * time.Minute
)

// ScheduleLockService serializes schedule validate-then-write sequences per
// doctor. Overlap validation is a read-then-write check: two concurrent
// creates for the same doctor could both pass validation against a stale
// snapshot and persist an actual overlap. Holding the doctor's mutex across
// the whole sequence closes that window. Cross-clinic checks are covered by
// the same lock because every clinic in the check set belongs to one doctor.
type ScheduleLockService struct {
	log *logrus.Logger

	// Per-doctor mutex, lazily created
	doctorMu sync.Map // map[uuid.UUID]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewScheduleLockService creates a new ScheduleLockService.
// Starts background goroutine for mutex cleanup.
// Call Stop() during graceful shutdown.
func NewScheduleLockService(log *logrus.Logger) *ScheduleLockService {
	svc := &ScheduleLockService{
		log:      log,
		stopChan: make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupLoop()

	return svc
}

// Stop gracefully shuts down the service. Safe to call multiple times.
func (s *ScheduleLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("ScheduleLockService stopped")
	}
}

// LockDoctor acquires the doctor's mutex and returns the unlock function.
//
//	unlock := locks.LockDoctor(doctorID)
//	defer unlock()
func (s *ScheduleLockService) LockDoctor(doctorID uuid.UUID) func() {
	m := s.getDoctorMutex(doctorID)
	m.mu.Lock()
	return m.mu.Unlock
}

// getDoctorMutex returns the mutex for a doctor, refreshing lastUsed before
// any attempt to lock it. Refreshing here (not after Lock succeeds) keeps the
// cleanup goroutine from reaping an entry a caller has already loaded but not
// yet locked.
func (s *ScheduleLockService) getDoctorMutex(doctorID uuid.UUID) *mutexWithTimestamp {
	entry, _ := s.doctorMu.LoadOrStore(doctorID, &mutexWithTimestamp{})
	m := entry.(*mutexWithTimestamp)
	m.lastUsed.Store(time.Now().Unix())
	return m
}

// cleanupLoop periodically drops mutexes that have not been used for a while,
// so the map does not grow unbounded with one entry per doctor ever seen.
func (s *ScheduleLockService) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(lockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStale()
		}
	}
}

func (s *ScheduleLockService) cleanupStale() {
	cutoff := time.Now().Add(-lockStaleThreshold).Unix()
	removed := 0

	s.doctorMu.Range(func(key, value interface{}) bool {
		m := value.(*mutexWithTimestamp)
		// TryLock first - if we can't get the lock, someone is using it.
		if m.mu.TryLock() {
			// Check lastUsed inside the lock: a caller may have loaded the
			// entry and refreshed lastUsed between our check and the lock.
			if m.lastUsed.Load() < cutoff {
				s.doctorMu.Delete(key)
				removed++
			}
			m.mu.Unlock()
		}
		return true
	})

	if removed > 0 {
		s.log.Debugf("Cleaned up %d stale doctor mutexes", removed)
	}
}
