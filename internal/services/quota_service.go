package services

import (
	"context"
	"time"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/metrics"
)

// Remaining describes the quota state surfaced to users on rejection
// and on the limits endpoint.
type Remaining struct {
	Tier             string    `json:"tier"`
	DailyLimit       int64     `json:"daily_limit"`
	DailyUsed        int64     `json:"daily_used"`
	DailyRemaining   int64     `json:"daily_remaining"`
	MonthlyLimit     int64     `json:"monthly_limit"`
	MonthlyUsed      int64     `json:"monthly_used"`
	MonthlyRemaining int64     `json:"monthly_remaining"`
	TotalUsed        int64     `json:"total_used"`
	CheckedAt        time.Time `json:"checked_at"`
}

// QuotaService tracks per-user token consumption against tier limits.
// Daily and monthly counters reset in place when a calendar boundary is
// crossed; the two resets are evaluated independently on every check.
type QuotaService struct {
	repo   user.Repository
	quota  config.QuotaConfig
	locks  *UserLocks
	logger *logger.Logger
	now    func() time.Time
}

// NewQuotaService creates a new quota service. locks must be the same
// registry handed to every other service that updates the user row.
func NewQuotaService(repo user.Repository, quota config.QuotaConfig, locks *UserLocks, log *logger.Logger) *QuotaService {
	return &QuotaService{
		repo:   repo,
		quota:  quota,
		locks:  locks,
		logger: log,
		now:    time.Now,
	}
}

// CanConsume reports whether the user may spend estimatedTokens within both
// the daily and the monthly window. Calendar rollovers are normalized (and
// persisted) before the check. Premium status never bypasses the check; it
// only selects the larger limit pair.
func (s *QuotaService) CanConsume(ctx context.Context, userID int64, estimatedTokens int64) (bool, *Remaining, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, nil, err
	}

	now := s.now()
	if s.normalize(u, now) {
		if err := s.repo.Update(ctx, u); err != nil {
			return false, nil, err
		}
	}

	daily, monthly := s.quota.Limits(u.IsPremium(now))
	ok := u.Usage.DailyUsed+estimatedTokens <= daily &&
		u.Usage.MonthlyUsed+estimatedTokens <= monthly

	rem := s.remaining(u, daily, monthly, now)
	if !ok {
		metrics.RecordQuotaRejection(rem.Tier)
		s.logger.WithFields(map[string]interface{}{
			"user_id":  userID,
			"estimate": estimatedTokens,
			"tier":     rem.Tier,
		}).Info("Quota check rejected")
	}

	return ok, rem, nil
}

// Commit adds the actual token cost to the daily, monthly, and lifetime
// counters. It never rejects: a request that passed CanConsume is charged
// even if the final cost overshoots the ceiling.
func (s *QuotaService) Commit(ctx context.Context, userID int64, actualTokens int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	s.normalize(u, now)

	u.Usage.DailyUsed += actualTokens
	u.Usage.MonthlyUsed += actualTokens
	u.Usage.TotalUsed += actualTokens

	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	tier := user.TierFree
	if u.IsPremium(now) {
		tier = user.TierPremium
	}
	metrics.RecordTokensConsumed(tier, actualTokens)

	return nil
}

// Snapshot returns the post-normalization quota state without consuming.
func (s *QuotaService) Snapshot(ctx context.Context, userID int64) (*Remaining, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if s.normalize(u, now) {
		if err := s.repo.Update(ctx, u); err != nil {
			return nil, err
		}
	}

	daily, monthly := s.quota.Limits(u.IsPremium(now))
	return s.remaining(u, daily, monthly, now), nil
}

// normalize applies calendar-reset rules in place and reports whether
// anything changed. The daily and monthly checks run unconditionally and
// independently: a monthly rollover does not imply a daily one happened,
// and vice versa.
func (s *QuotaService) normalize(u *user.User, now time.Time) bool {
	changed := false

	last := u.Usage.LastDailyReset
	if now.Day() != last.Day() || now.Month() != last.Month() || now.Year() != last.Year() {
		u.Usage.DailyUsed = 0
		u.Usage.LastDailyReset = now
		changed = true
	}

	last = u.Usage.LastMonthlyReset
	if now.Month() != last.Month() || now.Year() != last.Year() {
		u.Usage.MonthlyUsed = 0
		u.Usage.LastMonthlyReset = now
		changed = true
	}

	return changed
}

func (s *QuotaService) remaining(u *user.User, daily, monthly int64, now time.Time) *Remaining {
	tier := user.TierFree
	if u.IsPremium(now) {
		tier = user.TierPremium
	}
	return &Remaining{
		Tier:             tier,
		DailyLimit:       daily,
		DailyUsed:        u.Usage.DailyUsed,
		DailyRemaining:   max64(0, daily-u.Usage.DailyUsed),
		MonthlyLimit:     monthly,
		MonthlyUsed:      u.Usage.MonthlyUsed,
		MonthlyRemaining: max64(0, monthly-u.Usage.MonthlyUsed),
		TotalUsed:        u.Usage.TotalUsed,
		CheckedAt:        now,
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
