package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, email, username, full_name, password_hash,
	primary_language, secondary_language,
	tier, tier_expires_at,
	daily_tokens_used, monthly_tokens_used, total_tokens_used,
	last_daily_reset, last_monthly_reset,
	session_state, session_language, session_expires_at,
	total_translations, created_at, updated_at
`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	query := `
		INSERT INTO users (
			email, username, full_name, password_hash,
			primary_language, secondary_language,
			tier, tier_expires_at,
			daily_tokens_used, monthly_tokens_used, total_tokens_used,
			last_daily_reset, last_monthly_reset,
			session_state, session_language, session_expires_at,
			total_translations, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.Username, u.FullName, u.PasswordHash,
		string(u.Languages.Primary), string(u.Languages.Secondary),
		u.Tier, nullableUnix(u.TierExpires),
		u.Usage.DailyUsed, u.Usage.MonthlyUsed, u.Usage.TotalUsed,
		unixOrZero(u.Usage.LastDailyReset), unixOrZero(u.Usage.LastMonthlyReset),
		sessionState(u.VoiceSession.State), string(u.VoiceSession.SelectedLanguage), unixOrZero(u.VoiceSession.ExpiresAt),
		u.Stats.TotalTranslations, u.CreatedAt.Unix(), u.UpdatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get user ID", err)
	}

	u.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// Update persists the full user record
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	query := `
		UPDATE users SET
			email = ?, username = ?, full_name = ?, password_hash = ?,
			primary_language = ?, secondary_language = ?,
			tier = ?, tier_expires_at = ?,
			daily_tokens_used = ?, monthly_tokens_used = ?, total_tokens_used = ?,
			last_daily_reset = ?, last_monthly_reset = ?,
			session_state = ?, session_language = ?, session_expires_at = ?,
			total_translations = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.Username, u.FullName, u.PasswordHash,
		string(u.Languages.Primary), string(u.Languages.Secondary),
		u.Tier, nullableUnix(u.TierExpires),
		u.Usage.DailyUsed, u.Usage.MonthlyUsed, u.Usage.TotalUsed,
		unixOrZero(u.Usage.LastDailyReset), unixOrZero(u.Usage.LastMonthlyReset),
		sessionState(u.VoiceSession.State), string(u.VoiceSession.SelectedLanguage), unixOrZero(u.VoiceSession.ExpiresAt),
		u.Stats.TotalTranslations, u.UpdatedAt.Unix(),
		u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}
	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}
	return nil
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users`).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	return users, total, nil
}

// ClearExpiredSessions resets voice sessions whose expiry passed before
// cutoff. Storage hygiene; reads already collapse expired sessions lazily.
func (r *UserRepository) ClearExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			session_state = ?, session_language = '', session_expires_at = 0, updated_at = ?
		WHERE session_state != ? AND session_expires_at > 0 AND session_expires_at <= ?
	`, user.SessionIdle, time.Now().Unix(), user.SessionIdle, cutoff.Unix())
	if err != nil {
		return 0, errors.DatabaseError("Failed to clear expired sessions", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var fullName sql.NullString
	var primaryLang, secondaryLang, sessionLang string
	var tierExpires sql.NullInt64
	var lastDaily, lastMonthly, sessionExpires, createdAt, updatedAt int64

	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &fullName, &u.PasswordHash,
		&primaryLang, &secondaryLang,
		&u.Tier, &tierExpires,
		&u.Usage.DailyUsed, &u.Usage.MonthlyUsed, &u.Usage.TotalUsed,
		&lastDaily, &lastMonthly,
		&u.VoiceSession.State, &sessionLang, &sessionExpires,
		&u.Stats.TotalTranslations, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	if fullName.Valid {
		u.FullName = &fullName.String
	}
	u.Languages = language.Pair{
		Primary:   language.Language(primaryLang),
		Secondary: language.Language(secondaryLang),
	}
	if tierExpires.Valid {
		t := time.Unix(tierExpires.Int64, 0)
		u.TierExpires = &t
	}
	u.Usage.LastDailyReset = timeOrZero(lastDaily)
	u.Usage.LastMonthlyReset = timeOrZero(lastMonthly)
	u.VoiceSession.SelectedLanguage = language.Language(sessionLang)
	u.VoiceSession.ExpiresAt = timeOrZero(sessionExpires)
	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)

	return &u, nil
}

func sessionState(s string) string {
	if s == "" {
		return user.SessionIdle
	}
	return s
}

func nullableUnix(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOrZero(unix int64) time.Time {
	if unix == 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}
