package user

import (
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
)

// User represents a user in the system
type User struct {
	ID           int64          `json:"id"`
	Email        string         `json:"email"`
	Username     string         `json:"username,omitempty"`
	FullName     *string        `json:"full_name,omitempty"`
	PasswordHash string         `json:"-"` // Not exposed in JSON
	Languages    language.Pair  `json:"languages"`
	Tier         string         `json:"tier"`
	TierExpires  *time.Time     `json:"tier_expires,omitempty"`
	Usage        TokenUsage     `json:"usage"`
	VoiceSession VoiceSession   `json:"voice_session"`
	Stats        Stats          `json:"stats"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Subscription tiers
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// TokenUsage tracks rolling token consumption against tier limits.
// Daily and monthly counters reset in place when a calendar boundary
// is crossed; the total counter never resets.
type TokenUsage struct {
	DailyUsed        int64     `json:"daily_used"`
	MonthlyUsed      int64     `json:"monthly_used"`
	TotalUsed        int64     `json:"total_used"`
	LastDailyReset   time.Time `json:"last_daily_reset"`
	LastMonthlyReset time.Time `json:"last_monthly_reset"`
}

// Voice session states
const (
	SessionIdle              = "idle"
	SessionAwaitingSelection = "awaiting_selection"
	SessionArmed             = "armed"
)

// VoiceSession is the short-lived record of a pre-declared dictation
// language for free-tier users. If ExpiresAt has passed the session is
// logically idle regardless of the stored state; expiry is evaluated
// lazily at read time, never by a background sweep.
type VoiceSession struct {
	State            string            `json:"state"`
	SelectedLanguage language.Language `json:"selected_language,omitempty"`
	ExpiresAt        time.Time         `json:"expires_at,omitzero"`
}

// Expired reports whether the session window has elapsed at now.
func (s VoiceSession) Expired(now time.Time) bool {
	if s.State == SessionIdle || s.State == "" {
		return false
	}
	return !s.ExpiresAt.After(now)
}

// Stats holds per-user translation statistics
type Stats struct {
	TotalTranslations int64 `json:"total_translations"`
}

// IsPremium reports whether the user holds an unexpired premium subscription.
func (u *User) IsPremium(now time.Time) bool {
	if u.Tier != TierPremium {
		return false
	}
	return u.TierExpires == nil || u.TierExpires.After(now)
}
