// Package worker runs the periodic background jobs of the admin service.
package worker

import (
	"context"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/service"
	"go.uber.org/zap"
)

type Reminders interface {
	Reminders(ctx context.Context) ([]service.Reminder, error)
}

type SessionCleaner interface {
	CleanupSessions(ctx context.Context) (int64, error)
}

type Notifier struct {
	src Reminders
	log *zap.Logger
}

func NewNotifier(src Reminders, log *zap.Logger) *Notifier {
	return &Notifier{src: src, log: log.Named("notifier")}
}

// Check logs one reminder per overdue lending and per lending due tomorrow.
func (n *Notifier) Check(ctx context.Context) int {
	reminders, err := n.src.Reminders(ctx)
	if err != nil {
		n.log.Error("load reminders", zap.Error(err))
		return 0
	}
	for _, r := range reminders {
		l := r.Lending
		fields := []zap.Field{
			zap.Stringer("lending", l.ID),
			zap.Stringer("member", l.MemberID),
			zap.String("member_name", l.MemberName),
			zap.String("book", l.BookTitle),
			zap.Stringer("due", l.DueDate),
		}
		if r.DueTomorrow {
			n.log.Info("lending due tomorrow", fields...)
			continue
		}
		n.log.Warn("lending overdue", append(fields,
			zap.Int("days_late", l.DaysLate),
			zap.Stringer("late_fee", r.LateFee),
		)...)
	}
	return len(reminders)
}

type Cleaner struct {
	sessions SessionCleaner
	log      *zap.Logger
}

func NewCleaner(sessions SessionCleaner, log *zap.Logger) *Cleaner {
	return &Cleaner{sessions: sessions, log: log.Named("cleaner")}
}

func (c *Cleaner) Check(ctx context.Context) int {
	n, err := c.sessions.CleanupSessions(ctx)
	if err != nil {
		c.log.Error("cleanup sessions", zap.Error(err))
		return 0
	}
	if n > 0 {
		c.log.Info("expired sessions removed", zap.Int64("count", n))
	}
	return int(n)
}

// Every runs job right away and then on every tick until ctx is done.
func Every(ctx context.Context, interval time.Duration, job func(ctx context.Context) int) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	job(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job(ctx)
		}
	}
}
