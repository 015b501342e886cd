package user

import (
	"context"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
)

// Service defines the interface for user business logic
type Service interface {
	// Create creates a new user with the default language pair
	Create(ctx context.Context, email, username, passwordHash string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// SetLanguages updates the user's language pair
	SetLanguages(ctx context.Context, userID int64, pair language.Pair) (*User, error)

	// SwapLanguages exchanges the pair's primary and secondary members
	SwapLanguages(ctx context.Context, userID int64) (*User, error)

	// UpgradeTier switches the user to premium until expiry (nil = no expiry)
	UpgradeTier(ctx context.Context, userID int64, expires *time.Time) (*User, error)

	// RecordTranslation increments the user's translation statistics
	RecordTranslation(ctx context.Context, userID int64) error
}
