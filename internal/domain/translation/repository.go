package translation

import "context"

// Repository defines the interface for exchange persistence
type Repository interface {
	// Create persists a completed exchange
	Create(ctx context.Context, e *Exchange) error

	// GetByID retrieves an exchange by ID
	GetByID(ctx context.Context, id string) (*Exchange, error)

	// ListByUser retrieves a user's exchanges, newest first, with pagination
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Exchange, int64, error)
}
