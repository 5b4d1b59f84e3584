package middleware

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestLockout() (*KeyLockout, *time.Time) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	now := time.Now()
	l := NewKeyLockout(log)
	l.now = func() time.Time { return now }

	return l, &now
}

func TestKeyLockout_BlocksAfterMaxAttempts(t *testing.T) {
	l, _ := newTestLockout()

	for range lockoutMaxAttempts - 1 {
		l.Fail("key1")
	}

	if l.Locked("key1") {
		t.Fatal("key locked before reaching the attempt limit")
	}

	l.Fail("key1")

	if !l.Locked("key1") {
		t.Fatal("key should be locked")
	}

	if l.Locked("key2") {
		t.Fatal("unrelated key locked")
	}
}

func TestKeyLockout_ResetClears(t *testing.T) {
	l, _ := newTestLockout()

	l.Fail("key1")
	l.Fail("key1")
	l.Reset("key1")

	for range lockoutMaxAttempts - 1 {
		l.Fail("key1")
	}

	if l.Locked("key1") {
		t.Fatal("reset should have cleared earlier failures")
	}
}

func TestKeyLockout_Expires(t *testing.T) {
	l, now := newTestLockout()

	for range lockoutMaxAttempts {
		l.Fail("key1")
	}

	*now = now.Add(lockoutDuration + time.Second)

	if l.Locked("key1") {
		t.Fatal("lockout should expire")
	}
}
