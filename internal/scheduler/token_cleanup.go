package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/config"
)

// TokenCleanupScheduler periodically clears expired session tokens so
// stale credentials do not linger in the database. Expired tokens are
// already rejected at resolution time; this job only keeps the tables
// tidy.
type TokenCleanupScheduler struct {
	authService *auth.Service
	cfg         config.Cleanup

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewTokenCleanupScheduler creates a new scheduler instance.
func NewTokenCleanupScheduler(authService *auth.Service, cfg config.Cleanup) *TokenCleanupScheduler {
	return &TokenCleanupScheduler{
		authService: authService,
		cfg:         cfg,
		cron:        cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled.
func (s *TokenCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Token cleanup scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, s.runCleanup)
	if err != nil {
		return fmt.Errorf("failed to schedule token cleanup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Token cleanup scheduler: started with schedule '%s'", s.cfg.Schedule)
	return nil
}

// Stop halts the scheduler and waits for an in-flight run to finish.
func (s *TokenCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false

	log.Printf("Token cleanup scheduler: stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *TokenCleanupScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *TokenCleanupScheduler) runCleanup() {
	cleared, err := s.authService.PurgeExpiredTokens(time.Now())
	if err != nil {
		log.Printf("Token cleanup failed: %v", err)
		return
	}
	if cleared > 0 {
		log.Printf("Token cleanup: cleared %d expired session token(s)", cleared)
	}
}
