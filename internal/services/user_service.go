package services

import (
	"context"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo   user.Repository
	locks  *UserLocks
	logger *logger.Logger
	now    func() time.Time
}

// NewUserService creates a new user service. locks must be the same
// registry handed to every other service that updates the user row.
func NewUserService(repo user.Repository, locks *UserLocks, log *logger.Logger) user.Service {
	return &UserService{
		repo:   repo,
		locks:  locks,
		logger: log,
		now:    time.Now,
	}
}

// Create registers a new user with the default language pair, free tier
// and zeroed usage counters stamped at the current time.
func (s *UserService) Create(ctx context.Context, email, username, passwordHash string) (*user.User, error) {
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.Conflict("User with this email already exists")
	}

	now := s.now()
	u := &user.User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Languages:    language.DefaultPair(),
		Tier:         user.TierFree,
		Usage: user.TokenUsage{
			LastDailyReset:   now,
			LastMonthlyReset: now,
		},
		VoiceSession: user.VoiceSession{State: user.SessionIdle},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, errors.DatabaseError("Failed to create user", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   email,
	}).Info("User created")

	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

// SetLanguages replaces the user's language pair after validating it.
func (s *UserService) SetLanguages(ctx context.Context, userID int64, pair language.Pair) (*user.User, error) {
	if err := pair.Validate(); err != nil {
		return nil, errors.BadRequest(err.Error())
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User")
	}

	u.Languages = pair
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, errors.DatabaseError("Failed to update languages", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":   userID,
		"primary":   pair.Primary,
		"secondary": pair.Secondary,
	}).Info("Language pair updated")

	return u, nil
}

// SwapLanguages exchanges the pair's primary and secondary members.
func (s *UserService) SwapLanguages(ctx context.Context, userID int64) (*user.User, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User")
	}

	u.Languages = u.Languages.Swap()
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, errors.DatabaseError("Failed to swap languages", err)
	}
	return u, nil
}

// UpgradeTier switches the user to premium until expires; a nil expiry
// means the subscription does not lapse on its own.
func (s *UserService) UpgradeTier(ctx context.Context, userID int64, expires *time.Time) (*user.User, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User")
	}

	u.Tier = user.TierPremium
	u.TierExpires = expires
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, errors.DatabaseError("Failed to upgrade tier", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"expires": expires,
	}).Info("User upgraded to premium")

	return u, nil
}

// RecordTranslation increments the user's lifetime translation counter.
func (s *UserService) RecordTranslation(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User")
	}

	u.Stats.TotalTranslations++
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return errors.DatabaseError("Failed to record translation", err)
	}
	return nil
}
