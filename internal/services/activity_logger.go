package services

import (
	"context"
	"sync"
	"time"

	"github.com/KHNEATH/startwise-sub000/internal/repositories"
	"github.com/KHNEATH/startwise-sub000/internal/utils"
)

// ActivityEntry describes one mutating admin action to be audited.
type ActivityEntry struct {
	ActorID    *int64
	Action     string
	TargetType string
	TargetID   *int64
	Details    map[string]any
	IPAddress  string
	UserAgent  string
	RequestID  string
}

// ActivityLogger appends audit entries off the request path. Writes are
// best-effort: insert failures and queue overflow go to the operational log
// and never reach the caller, so audit-trail unavailability cannot block an
// administrative action.
type ActivityLogger struct {
	repo      repositories.ActivityRepository
	queue     chan ActivityEntry
	done      chan struct{}
	closeOnce sync.Once
}

func NewActivityLogger(repo repositories.ActivityRepository, buffer int) *ActivityLogger {
	if buffer <= 0 {
		buffer = 256
	}
	l := &ActivityLogger{
		repo:  repo,
		queue: make(chan ActivityEntry, buffer),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *ActivityLogger) run() {
	defer close(l.done)
	for e := range l.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := l.repo.Insert(ctx, e.ActorID, e.Action, e.TargetType, e.TargetID,
			e.Details, e.IPAddress, e.UserAgent)
		cancel()
		if err != nil {
			utils.LogEvent(e.RequestID, "activity", e.Action, "audit write failed: "+err.Error())
		}
	}
}

// Record hands the entry to the background writer and returns immediately.
// When the queue is full the entry is dropped with a warning rather than
// blocking the request.
func (l *ActivityLogger) Record(e ActivityEntry) {
	select {
	case l.queue <- e:
	default:
		utils.LogEvent(e.RequestID, "activity", e.Action, "audit queue full, entry dropped")
	}
}

// Close drains outstanding entries. Record must not be called afterwards;
// callers close only during shutdown, after the HTTP server has stopped.
func (l *ActivityLogger) Close() {
	l.closeOnce.Do(func() { close(l.queue) })
	<-l.done
}

var (
	activityMu     sync.Mutex
	activityLogger *ActivityLogger
)

// Activity returns the shared logger, starting it on first use against the
// shared DB pool.
func Activity() *ActivityLogger {
	activityMu.Lock()
	defer activityMu.Unlock()
	if activityLogger == nil {
		activityLogger = NewActivityLogger(repositories.ActivityRepository{}, 256)
	}
	return activityLogger
}

// CloseActivity drains and discards the shared logger during shutdown.
func CloseActivity() {
	activityMu.Lock()
	l := activityLogger
	activityLogger = nil
	activityMu.Unlock()
	if l != nil {
		l.Close()
	}
}
