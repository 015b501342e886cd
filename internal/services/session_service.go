package services

import (
	"context"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/metrics"
)

// SessionService manages the short-lived voice session a free-tier user
// arms with a dictation language before sending audio. Expiry is lazy:
// a read past the deadline collapses the state to idle in place and no
// background sweep is required for correctness.
type SessionService struct {
	repo   user.Repository
	ttl    time.Duration
	locks  *UserLocks
	logger *logger.Logger
	now    func() time.Time
}

// NewSessionService creates a new voice session service. locks must be
// the same registry handed to every other service that updates the
// user row.
func NewSessionService(repo user.Repository, ttl time.Duration, locks *UserLocks, log *logger.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		ttl:    ttl,
		locks:  locks,
		logger: log,
		now:    time.Now,
	}
}

// SelectLanguage arms the session with a dictation language for the TTL
// window. Only the two members of the user's configured pair are valid.
func (s *SessionService) SelectLanguage(ctx context.Context, userID int64, lang language.Language) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !u.Languages.Contains(lang) {
		return errors.UnsupportedLanguage(string(lang)).
			WithDetails(map[string]interface{}{"pair": u.Languages})
	}

	u.VoiceSession = user.VoiceSession{
		State:            user.SessionArmed,
		SelectedLanguage: lang,
		ExpiresAt:        s.now().Add(s.ttl),
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	metrics.RecordSessionArmed()
	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"language": lang,
	}).Info("Voice session armed")

	return nil
}

// MarkAwaiting records that audio arrived before a language was selected,
// with the same TTL as an armed session.
func (s *SessionService) MarkAwaiting(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	u.VoiceSession = user.VoiceSession{
		State:     user.SessionAwaitingSelection,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return s.repo.Update(ctx, u)
}

// IsArmed reports whether the session holds an unexpired language
// selection. Observing an elapsed expiry collapses the state to idle
// (self-healing read).
func (s *SessionService) IsArmed(ctx context.Context, userID int64) (bool, language.Language, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, "", err
	}

	sess, expired, err := s.heal(ctx, u)
	if err != nil {
		return false, "", err
	}
	if expired || sess.State != user.SessionArmed {
		return false, "", nil
	}
	return true, sess.SelectedLanguage, nil
}

// State returns the current session state after lazy expiry evaluation.
func (s *SessionService) State(ctx context.Context, userID int64) (user.VoiceSession, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return user.VoiceSession{}, err
	}

	sess, _, err := s.heal(ctx, u)
	return sess, err
}

// Clear unconditionally returns the session to idle. Called after every
// translation attempt, successful or not, and on cancellation.
func (s *SessionService) Clear(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if u.VoiceSession.State == user.SessionIdle || u.VoiceSession.State == "" {
		return nil
	}

	u.VoiceSession = user.VoiceSession{State: user.SessionIdle}
	return s.repo.Update(ctx, u)
}

// heal evaluates lazy expiry on a loaded user and persists the collapse
// to idle when the window has elapsed.
func (s *SessionService) heal(ctx context.Context, u *user.User) (user.VoiceSession, bool, error) {
	if u.VoiceSession.State == "" {
		u.VoiceSession.State = user.SessionIdle
	}
	if !u.VoiceSession.Expired(s.now()) {
		return u.VoiceSession, false, nil
	}

	u.VoiceSession = user.VoiceSession{State: user.SessionIdle}
	if err := s.repo.Update(ctx, u); err != nil {
		return user.VoiceSession{}, true, err
	}

	metrics.RecordSessionExpired()
	s.logger.WithFields(map[string]interface{}{"user_id": u.ID}).Debug("Voice session expired")
	return u.VoiceSession, true, nil
}
