package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/motleyton/tgbot-hp/internal/domain"
	"github.com/motleyton/tgbot-hp/internal/store"
)

// Notifier is the minimal interface the scheduler needs to deliver one
// birthday reminder. telegram.Router implements it.
type Notifier interface {
	NotifyBirthday(ownerID int64, friend domain.Friend) error
}

// Daily runs the birthday check once a day at a fixed wall-clock time and
// re-arms itself for the following day after each run. Days missed while the
// process was down are not backfilled.
type Daily struct {
	repo     store.Repo
	log      *zap.Logger
	notifier Notifier
	atM      int // minutes since midnight, local time

	now func() time.Time
}

// NewDaily creates a Daily check firing at atM minutes since midnight.
func NewDaily(repo store.Repo, log *zap.Logger, notifier Notifier, atM int) *Daily {
	return &Daily{
		repo:     repo,
		log:      log,
		notifier: notifier,
		atM:      atM,
		now:      time.Now,
	}
}

// Run arms the timer for the next slot and loops until ctx is canceled.
func (s *Daily) Run(ctx context.Context) {
	for {
		now := s.now()
		next := domain.NextDailyRun(now, s.atM)
		timer := time.NewTimer(next.Sub(now))
		s.log.Info("birthday check armed", zap.Time("next", next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("scheduler stopping")
			return
		case <-timer.C:
			s.tick(ctx)
		}
	}
}

// tick performs one check: query today's matches and notify each owner.
// A failed delivery to one owner must not suppress the others.
func (s *Daily) tick(ctx context.Context) {
	today := domain.MonthDayOf(s.now())

	friends, err := s.repo.BirthdaysOn(ctx, today)
	if err != nil {
		s.log.Error("BirthdaysOn failed", zap.Error(err), zap.Stringer("today", today))
		return
	}
	s.log.Info("birthday check", zap.Stringer("today", today), zap.Int("matches", len(friends)))

	for _, f := range friends {
		if err := s.notifier.NotifyBirthday(f.OwnerID, f); err != nil {
			s.log.Error("notify failed",
				zap.Error(err), zap.Int64("ownerID", f.OwnerID), zap.Int64("friendID", f.ID))
			continue
		}
	}
}
