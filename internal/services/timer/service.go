package timer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/grimkeeper/grimkeeper/internal/common/clock"
	"github.com/grimkeeper/grimkeeper/internal/common/duration"
	"github.com/grimkeeper/grimkeeper/internal/models"
	timerRepo "github.com/grimkeeper/grimkeeper/internal/repositories/timer"
)

// entry is one guild's in-flight countdown. The map entry is the live source
// of truth; the persisted record only exists for restart recovery.
type entry struct {
	guildID    string
	categoryID string
	creatorID  string
	channelID  string

	endTime   time.Time
	paused    bool
	remaining time.Duration

	// messageID is the "timer set" announcement, removed on cleanup
	messageID string

	cancel context.CancelFunc
}

// service implements the Service interface
type service struct {
	timerRepo timerRepo.Repository
	notifier  Notifier
	resolver  ChannelResolver
	clock     clock.Clock
	onFired   FireFunc

	mu     sync.Mutex
	timers map[string]*entry
}

// NewService creates a new timer service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.TimerRepo == nil {
		return nil, ErrNilTimerRepo
	}
	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}
	if cfg.Resolver == nil {
		return nil, ErrNilResolver
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		timerRepo: cfg.TimerRepo,
		notifier:  cfg.Notifier,
		resolver:  cfg.Resolver,
		clock:     cfg.Clock,
		onFired:   cfg.OnFired,
		timers:    make(map[string]*entry),
	}, nil
}

// StartTimer schedules a countdown. Eviction and insertion happen under a
// single lock hold so two concurrent starts can never leave two countdowns
// for one guild.
func (s *service) StartTimer(ctx context.Context, input *StartTimerInput) (*StartTimerOutput, error) {
	if input.Duration <= 0 || input.Duration > duration.Max {
		return nil, ErrInvalidDuration
	}

	endTime := s.clock.Now().Add(input.Duration)
	runCtx, cancel := context.WithCancel(context.Background())
	e := &entry{
		guildID:    input.GuildID,
		categoryID: input.CategoryID,
		creatorID:  input.CreatorID,
		channelID:  input.ChannelID,
		endTime:    endTime,
		cancel:     cancel,
	}

	s.mu.Lock()
	prev := s.timers[input.GuildID]
	if prev != nil {
		prev.cancel()
	}
	s.timers[input.GuildID] = e

	// Persisted while the lock is held: a concurrent stop cannot slip in
	// between the map insert and the save and have its delete overwritten
	// by a late write
	if err := s.timerRepo.SaveTimer(ctx, &timerRepo.SaveTimerInput{
		Record: &models.TimerRecord{
			GuildID:    input.GuildID,
			EndTime:    endTime,
			CreatorID:  input.CreatorID,
			CategoryID: input.CategoryID,
		},
	}); err != nil {
		delete(s.timers, input.GuildID)
		s.mu.Unlock()
		cancel()
		return nil, fmt.Errorf("failed to persist timer: %w", err)
	}
	s.mu.Unlock()

	if prev != nil {
		s.removeAnnouncement(ctx, prev)
	}

	if input.ChannelID != "" {
		content := fmt.Sprintf("⏳ Timer set for **%s** — ends %s",
			duration.Humanize(input.Duration), duration.FormatEndTime(endTime))
		msgID, err := s.notifier.Send(ctx, input.ChannelID, content)
		if err != nil {
			log.Printf("failed to announce timer for guild %s: %v", input.GuildID, err)
		} else {
			s.mu.Lock()
			e.messageID = msgID
			s.mu.Unlock()
		}
	}

	go s.run(runCtx, e, input.Duration)

	return &StartTimerOutput{EndTime: endTime, Evicted: prev != nil}, nil
}

// run counts the entry down. The deferred cleanup guarantees the persisted
// record and the announcement go away however the goroutine exits, but only
// while this entry still owns the guild slot: a superseded countdown must
// not erase its successor's record, and a paused one keeps its state.
func (s *service) run(ctx context.Context, e *entry, d time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("timer goroutine panic for guild %s: %v", e.guildID, r)
		}
	}()

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return
	case <-t.C:
	}

	defer func() {
		s.mu.Lock()
		owns := s.timers[e.guildID] == e && !e.paused
		if owns {
			delete(s.timers, e.guildID)
		}
		s.mu.Unlock()

		if owns {
			cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.timerRepo.DeleteTimer(cleanupCtx, &timerRepo.DeleteTimerInput{GuildID: e.guildID}); err != nil {
				log.Printf("failed to delete fired timer for guild %s: %v", e.guildID, err)
			}
			s.removeAnnouncement(cleanupCtx, e)
		}
	}()

	if e.channelID != "" {
		if _, err := s.notifier.Send(ctx, e.channelID, "⏰ **TIME'S UP!**"); err != nil {
			log.Printf("failed to announce expiry for guild %s: %v", e.guildID, err)
		}
	}

	if s.onFired != nil {
		s.onFired(ctx, e.guildID, e.categoryID)
	}
}

// StopTimer cancels the countdown and removes every trace of it
func (s *service) StopTimer(ctx context.Context, input *StopTimerInput) (*StopTimerOutput, error) {
	s.mu.Lock()
	e := s.timers[input.GuildID]
	if e == nil {
		s.mu.Unlock()
		return nil, ErrNoTimer
	}
	delete(s.timers, input.GuildID)
	s.mu.Unlock()

	e.cancel()

	if err := s.timerRepo.DeleteTimer(ctx, &timerRepo.DeleteTimerInput{GuildID: input.GuildID}); err != nil {
		log.Printf("failed to delete stopped timer for guild %s: %v", input.GuildID, err)
	}
	s.removeAnnouncement(ctx, e)

	return &StopTimerOutput{CreatorID: e.creatorID}, nil
}

// PauseTimer freezes the countdown. The remaining time is computed once,
// stored on the entry and persisted, so a restart resumes from the same
// point.
func (s *service) PauseTimer(ctx context.Context, input *PauseTimerInput) (*PauseTimerOutput, error) {
	s.mu.Lock()
	e := s.timers[input.GuildID]
	if e == nil {
		s.mu.Unlock()
		return nil, ErrNoTimer
	}
	if e.paused {
		s.mu.Unlock()
		return nil, ErrAlreadyPaused
	}

	remaining := e.endTime.Sub(s.clock.Now())
	if remaining <= 0 {
		// The deadline already passed; the countdown is firing, not pausing
		s.mu.Unlock()
		return nil, ErrTimerExpired
	}
	e.paused = true
	e.remaining = remaining
	e.cancel()
	s.mu.Unlock()

	if err := s.timerRepo.SaveTimer(ctx, &timerRepo.SaveTimerInput{
		Record: &models.TimerRecord{
			GuildID:         e.guildID,
			EndTime:         e.endTime,
			CreatorID:       e.creatorID,
			CategoryID:      e.categoryID,
			PausedRemaining: remaining,
		},
	}); err != nil {
		log.Printf("failed to persist paused timer for guild %s: %v", input.GuildID, err)
	}

	return &PauseTimerOutput{Remaining: remaining}, nil
}

// ResumeTimer restarts a paused countdown from its frozen remaining time
func (s *service) ResumeTimer(ctx context.Context, input *ResumeTimerInput) (*ResumeTimerOutput, error) {
	s.mu.Lock()
	e := s.timers[input.GuildID]
	if e == nil {
		s.mu.Unlock()
		return nil, ErrNoTimer
	}
	if !e.paused {
		s.mu.Unlock()
		return nil, ErrNotPaused
	}

	remaining := e.remaining
	e.endTime = s.clock.Now().Add(remaining)
	e.paused = false
	if e.channelID == "" {
		// Entries restored from a paused record never had a channel resolved
		if channelID, err := s.resolver.ResolveAnnounceChannel(ctx, e.guildID, e.categoryID); err == nil {
			e.channelID = channelID
		}
	}
	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	endTime := e.endTime
	s.mu.Unlock()

	if err := s.timerRepo.SaveTimer(ctx, &timerRepo.SaveTimerInput{
		Record: &models.TimerRecord{
			GuildID:    e.guildID,
			EndTime:    endTime,
			CreatorID:  e.creatorID,
			CategoryID: e.categoryID,
		},
	}); err != nil {
		log.Printf("failed to persist resumed timer for guild %s: %v", input.GuildID, err)
	}

	go s.run(runCtx, e, remaining)

	return &ResumeTimerOutput{EndTime: endTime}, nil
}

// GetStatus reports the countdown's remaining time and pause state
func (s *service) GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.timers[input.GuildID]
	if e == nil {
		return nil, ErrNoTimer
	}

	out := &GetStatusOutput{
		Paused:    e.paused,
		EndTime:   e.endTime,
		CreatorID: e.creatorID,
	}
	if e.paused {
		out.Remaining = e.remaining
	} else {
		out.Remaining = e.endTime.Sub(s.clock.Now())
		if out.Remaining < 0 {
			out.Remaining = 0
		}
	}
	return out, nil
}

// Preempt silently cancels a running countdown. Unlike StopTimer, an absent
// countdown is not an error, and a paused one is left alone.
func (s *service) Preempt(ctx context.Context, input *PreemptInput) (*PreemptOutput, error) {
	s.mu.Lock()
	e := s.timers[input.GuildID]
	if e == nil || e.paused {
		s.mu.Unlock()
		return &PreemptOutput{}, nil
	}
	delete(s.timers, input.GuildID)
	s.mu.Unlock()

	e.cancel()

	if err := s.timerRepo.DeleteTimer(ctx, &timerRepo.DeleteTimerInput{GuildID: input.GuildID}); err != nil {
		log.Printf("failed to delete preempted timer for guild %s: %v", input.GuildID, err)
	}
	s.removeAnnouncement(ctx, e)

	return &PreemptOutput{Preempted: true}, nil
}

// Restore reschedules persisted timers after a restart. Paused records come
// back frozen; live records whose deadline already passed are dropped
// without firing, the rest resume counting toward their original deadline.
func (s *service) Restore(ctx context.Context) (*RestoreOutput, error) {
	records, err := s.timerRepo.ListTimers(ctx, &timerRepo.ListTimersInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list persisted timers: %w", err)
	}

	out := &RestoreOutput{}
	now := s.clock.Now()

	for _, rec := range records {
		if rec.PausedRemaining > 0 {
			s.restoreEntry(rec, true, rec.PausedRemaining, "", func() {})
			out.Restored++
			continue
		}

		remaining := rec.EndTime.Sub(now)
		if remaining <= 0 {
			if err := s.timerRepo.DeleteTimer(ctx, &timerRepo.DeleteTimerInput{GuildID: rec.GuildID}); err != nil {
				log.Printf("failed to drop stale timer for guild %s: %v", rec.GuildID, err)
			}
			out.Dropped++
			continue
		}

		channelID, err := s.resolver.ResolveAnnounceChannel(ctx, rec.GuildID, rec.CategoryID)
		if err != nil {
			log.Printf("no announce channel for restored timer in guild %s: %v", rec.GuildID, err)
		}

		runCtx, cancel := context.WithCancel(context.Background())
		e := s.restoreEntry(rec, false, 0, channelID, cancel)
		go s.run(runCtx, e, remaining)
		out.Restored++
	}

	return out, nil
}

// restoreEntry inserts a fully built recovered record into the scheduler map
func (s *service) restoreEntry(rec *models.TimerRecord, paused bool, remaining time.Duration, channelID string, cancel context.CancelFunc) *entry {
	e := &entry{
		guildID:    rec.GuildID,
		categoryID: rec.CategoryID,
		creatorID:  rec.CreatorID,
		channelID:  channelID,
		endTime:    rec.EndTime,
		paused:     paused,
		remaining:  remaining,
		cancel:     cancel,
	}

	s.mu.Lock()
	if prev := s.timers[rec.GuildID]; prev != nil {
		prev.cancel()
	}
	s.timers[rec.GuildID] = e
	s.mu.Unlock()

	return e
}

// removeAnnouncement tears down an entry's "timer set" message, best effort.
// The message ID is read and cleared under the lock: a stop can run while
// the start that created the entry is still announcing it.
func (s *service) removeAnnouncement(ctx context.Context, e *entry) {
	s.mu.Lock()
	messageID, channelID := e.messageID, e.channelID
	e.messageID = ""
	s.mu.Unlock()

	if messageID == "" || channelID == "" {
		return
	}
	if err := s.notifier.Delete(ctx, channelID, messageID); err != nil {
		log.Printf("failed to delete timer announcement in channel %s: %v", channelID, err)
	}
}
