package middleware

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

const (
	lockoutMaxAttempts = 5
	lockoutWindow      = 15 * time.Minute
	lockoutDuration    = 5 * time.Minute
	lockoutMaxRecords  = 10000
)

type failureRecord struct {
	attempts int
	lockedAt time.Time
}

// KeyLockout blocks an API key after repeated authentication failures within
// a window. Records are keyed by key hash and expire with the window.
type KeyLockout struct {
	mu      sync.Mutex
	records *expirable.LRU[string, *failureRecord]
	log     *logrus.Logger
	now     func() time.Time
}

// NewKeyLockout creates a KeyLockout.
func NewKeyLockout(log *logrus.Logger) *KeyLockout {
	return &KeyLockout{
		records: expirable.NewLRU[string, *failureRecord](lockoutMaxRecords, nil, lockoutWindow),
		log:     log,
		now:     time.Now,
	}
}

// Locked reports whether apiKey is currently locked out.
func (l *KeyLockout) Locked(apiKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records.Peek(hashKey(apiKey))
	if !ok || rec.lockedAt.IsZero() {
		return false
	}

	return l.now().Sub(rec.lockedAt) < lockoutDuration
}

// Fail records a failed attempt for apiKey.
func (l *KeyLockout) Fail(apiKey string) {
	hk := hashKey(apiKey)

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records.Get(hk)
	if !ok {
		l.records.Add(hk, &failureRecord{attempts: 1})
		return
	}

	rec.attempts++
	if rec.attempts >= lockoutMaxAttempts && rec.lockedAt.IsZero() {
		rec.lockedAt = l.now()
		l.log.WithField("key_hash", hk[:16]).Warn("api key locked out after repeated failures")
	}
}

// Reset clears the failure record of apiKey.
func (l *KeyLockout) Reset(apiKey string) {
	l.mu.Lock()
	l.records.Remove(hashKey(apiKey))
	l.mu.Unlock()
}
