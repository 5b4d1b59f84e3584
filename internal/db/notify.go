package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/dbpool"
)

const (
	listenChannel     = "kg_changes"
	initialBackoff    = 1 * time.Second
	maxBackoff        = 30 * time.Second
	backoffMultiplier = 2
)

// Invalidator drops cached state derived from a tenant's graph.
type Invalidator interface {
	Invalidate(tenantID string)
}

// ChangeListener subscribes to LISTEN/NOTIFY on the kg_changes channel and
// invalidates the cached host graph of every tenant whose nodes or edges
// changed.
type ChangeListener struct {
	log    *logrus.Logger
	pool   *dbpool.Pool
	target Invalidator
}

// NewChangeListener creates a ChangeListener wired to the given pool.
func NewChangeListener(log *logrus.Logger, pool *dbpool.Pool, target Invalidator) *ChangeListener {
	return &ChangeListener{log: log, pool: pool, target: target}
}

// Start verifies the database is reachable and launches the listen loop in a
// background goroutine. The loop reconnects with backoff until ctx ends.
func (l *ChangeListener) Start(ctx context.Context) error {
	if err := l.pool.Ping(ctx); err != nil {
		return fmt.Errorf("change listener: database not reachable: %w", err)
	}

	go l.listen(ctx)

	return nil
}

func (l *ChangeListener) listen(ctx context.Context) {
	backoff := initialBackoff

	for {
		if ctx.Err() != nil {
			return
		}

		err := l.subscribe(ctx)
		if err == nil || ctx.Err() != nil {
			return
		}

		l.log.WithError(err).WithField("retry_in", backoff).
			Warn("change listener connection lost, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff = nextBackoff(backoff)
	}
}

// subscribe holds one connection in LISTEN mode until it fails or ctx ends.
func (l *ChangeListener) subscribe(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{listenChannel}.Sanitize()); err != nil {
		return fmt.Errorf("executing LISTEN: %w", err)
	}

	l.log.WithField("channel", listenChannel).Info("change listener subscribed")

	for {
		// Wake up periodically so a dead peer is noticed.
		if err := conn.Conn().PgConn().Conn().SetReadDeadline(time.Now().Add(2 * time.Minute)); err != nil {
			return fmt.Errorf("setting read deadline: %w", err)
		}

		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}

			return fmt.Errorf("waiting for notification: %w", err)
		}

		l.handle(n)
	}
}

// changePayload is the JSON body raised by the notify_kg_change trigger.
type changePayload struct {
	TenantID string `json:"tenant_id"`
	Table    string `json:"table"`
}

func (l *ChangeListener) handle(n *pgconn.Notification) {
	var p changePayload
	if err := json.Unmarshal([]byte(n.Payload), &p); err != nil || p.TenantID == "" {
		l.log.WithField("pid", n.PID).Warn("dropping notification without tenant_id")

		return
	}

	l.log.WithFields(logrus.Fields{
		"tenant_id": p.TenantID,
		"table":     p.Table,
	}).Debug("host graph changed")

	l.target.Invalidate(p.TenantID)
}

// nextBackoff doubles the current backoff with ±25% jitter, capped at
// maxBackoff.
func nextBackoff(current time.Duration) time.Duration {
	next := min(current*backoffMultiplier, maxBackoff)
	jitter := float64(next) * (0.75 + rand.Float64()*0.5) //nolint:gosec // jitter doesn't need crypto rand.

	return time.Duration(jitter)
}
