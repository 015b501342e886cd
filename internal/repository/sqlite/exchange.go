package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/translation"
	"github.com/voxlate/voxlate/internal/pkg/errors"
)

// ExchangeRepository implements translation.Repository
type ExchangeRepository struct {
	db *sql.DB
}

// NewExchangeRepository creates a new exchange repository
func NewExchangeRepository(db *sql.DB) translation.Repository {
	return &ExchangeRepository{db: db}
}

// Create persists a completed exchange, assigning an ID if absent.
func (r *ExchangeRepository) Create(ctx context.Context, e *translation.Exchange) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO exchanges (
			id, user_id, original_text, source_language,
			translated_text, target_language, back_translation,
			detection_method, tokens_used, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.OriginalText, string(e.SourceLanguage),
		e.TranslatedText, string(e.TargetLanguage), e.BackTranslation,
		e.DetectionMethod, e.TokensUsed, e.CreatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create exchange", err)
	}
	return nil
}

// GetByID retrieves an exchange by ID
func (r *ExchangeRepository) GetByID(ctx context.Context, id string) (*translation.Exchange, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, original_text, source_language,
		       translated_text, target_language, back_translation,
		       detection_method, tokens_used, created_at
		FROM exchanges WHERE id = ?
	`, id)
	return scanExchange(row)
}

// ListByUser retrieves a user's exchanges, newest first, with pagination
func (r *ExchangeRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*translation.Exchange, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM exchanges WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count exchanges", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, original_text, source_language,
		       translated_text, target_language, back_translation,
		       detection_method, tokens_used, created_at
		FROM exchanges WHERE user_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list exchanges", err)
	}
	defer rows.Close()

	var exchanges []*translation.Exchange
	for rows.Next() {
		e, err := scanExchange(rows)
		if err != nil {
			return nil, 0, err
		}
		exchanges = append(exchanges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to list exchanges", err)
	}
	return exchanges, total, nil
}

func scanExchange(row rowScanner) (*translation.Exchange, error) {
	var e translation.Exchange
	var sourceLang, targetLang string
	var createdAt int64

	err := row.Scan(
		&e.ID, &e.UserID, &e.OriginalText, &sourceLang,
		&e.TranslatedText, &targetLang, &e.BackTranslation,
		&e.DetectionMethod, &e.TokensUsed, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Exchange")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get exchange", err)
	}

	e.SourceLanguage = language.Language(sourceLang)
	e.TargetLanguage = language.Language(targetLang)
	e.CreatedAt = time.Unix(createdAt, 0)
	return &e, nil
}
