// Package dialog implements the two-step conversation that collects a
// friend's name and birth date before writing the record to storage.
package dialog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/motleyton/tgbot-hp/internal/domain"
	"github.com/motleyton/tgbot-hp/internal/store"
)

// Stage of one owner's entry session.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitName
	StageAwaitBirthday
)

// Result tells the caller which reply to send after a transition.
type Result int

const (
	// PromptName asks for the friend's name.
	PromptName Result = iota
	// PromptBirthday asks for the birth date.
	PromptBirthday
	// BadDate re-prompts after unparseable date input; the session stays open.
	BadDate
	// Saved confirms the stored record; the session is closed.
	Saved
	// Duplicate reports an already-registered (owner, name) pair; closed.
	Duplicate
	// SaveFailed reports a storage error; the session stays open for retry.
	SaveFailed
	// Cancelled confirms an aborted session.
	Cancelled
	// NothingToCancel is returned by Cancel without an active session.
	NothingToCancel
	// NoSession is returned by Input without an active session.
	NoSession
)

// defaultIdleTTL bounds how long an abandoned session is kept before Sweep
// evicts it.
const defaultIdleTTL = 30 * time.Minute

type session struct {
	stage       Stage
	pendingName string
	updatedAt   time.Time
}

// Flow holds per-owner entry sessions. Sessions are in-memory only and do
// not survive a restart. Owners are independent; the map is the only shared
// state and is mutex-guarded.
type Flow struct {
	repo    store.Repo
	log     *zap.Logger
	idleTTL time.Duration

	mu       sync.Mutex
	sessions map[int64]*session
}

// New creates a Flow backed by the given repository.
func New(repo store.Repo, log *zap.Logger) *Flow {
	return &Flow{
		repo:     repo,
		log:      log,
		idleTTL:  defaultIdleTTL,
		sessions: make(map[int64]*session),
	}
}

// Begin opens (or restarts) the entry session for an owner.
func (f *Flow) Begin(ownerID int64) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[ownerID] = &session{stage: StageAwaitName, updatedAt: time.Now()}
	return PromptName
}

// Cancel aborts the owner's session, discarding any pending name.
func (f *Flow) Cancel(ownerID int64) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[ownerID]; !ok {
		return NothingToCancel
	}
	delete(f.sessions, ownerID)
	return Cancelled
}

// Active reports whether the owner has an entry session in progress.
func (f *Flow) Active(ownerID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[ownerID]
	return ok
}

// Stage returns the owner's current stage (StageIdle without a session).
func (f *Flow) Stage(ownerID int64) Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[ownerID]; ok {
		return s.stage
	}
	return StageIdle
}

// Input advances the owner's session with one text message.
// A storage failure other than a duplicate is returned to the caller; the
// session stays open so the owner can retry the date.
func (f *Flow) Input(ctx context.Context, ownerID int64, text string) (Result, error) {
	text = strings.TrimSpace(text)

	f.mu.Lock()
	s, ok := f.sessions[ownerID]
	if !ok {
		f.mu.Unlock()
		return NoSession, nil
	}
	s.updatedAt = time.Now()

	switch s.stage {
	case StageAwaitName:
		if text == "" {
			f.mu.Unlock()
			return PromptName, nil
		}
		s.pendingName = text
		s.stage = StageAwaitBirthday
		f.mu.Unlock()
		return PromptBirthday, nil

	case StageAwaitBirthday:
		name := s.pendingName
		f.mu.Unlock()

		birthday, err := domain.ParseBirthDate(text)
		if err != nil {
			return BadDate, nil
		}

		// Insert outside the lock; uniqueness is enforced by the store.
		_, err = f.repo.AddFriend(ctx, ownerID, name, birthday)
		if errors.Is(err, store.ErrDuplicateFriend) {
			f.log.Warn("duplicate friend ignored",
				zap.Int64("ownerID", ownerID), zap.String("name", name))
			f.evict(ownerID)
			return Duplicate, nil
		}
		if err != nil {
			return SaveFailed, err
		}
		f.evict(ownerID)
		return Saved, nil

	default:
		f.mu.Unlock()
		return NoSession, nil
	}
}

// Sweep evicts sessions idle longer than the TTL and returns how many were
// removed. Guards against unbounded growth from abandoned conversations.
func (f *Flow) Sweep(now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int
	for ownerID, s := range f.sessions {
		if now.Sub(s.updatedAt) > f.idleTTL {
			delete(f.sessions, ownerID)
			n++
		}
	}
	return n
}

func (f *Flow) evict(ownerID int64) {
	f.mu.Lock()
	delete(f.sessions, ownerID)
	f.mu.Unlock()
}
