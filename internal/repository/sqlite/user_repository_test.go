package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/repository/sqlite"
	"github.com/voxlate/voxlate/internal/testutil"
)

func newUser(email string) *user.User {
	return &user.User{
		Email:        email,
		Username:     "tester",
		PasswordHash: "hash",
		Languages:    language.DefaultPair(),
		Tier:         user.TierFree,
		VoiceSession: user.VoiceSession{State: user.SessionIdle},
	}
}

func TestUserRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := sqlite.NewUserRepository(db)

	tests := []struct {
		name    string
		user    *user.User
		wantErr bool
	}{
		{
			name:    "create user successfully",
			user:    newUser("test@example.com"),
			wantErr: false,
		},
		{
			name:    "create another user",
			user:    newUser("another@example.com"),
			wantErr: false,
		},
		{
			name:    "duplicate email",
			user:    newUser("test@example.com"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			err := repo.Create(ctx, tt.user)

			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if tt.user.ID == 0 {
					t.Error("Create() did not set user ID")
				}
			}
		})
	}
}

func TestUserRepository_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	expires := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
	u := newUser("roundtrip@example.com")
	u.Tier = user.TierPremium
	u.TierExpires = &expires
	u.Usage = user.TokenUsage{
		DailyUsed:        120,
		MonthlyUsed:      4500,
		TotalUsed:        99000,
		LastDailyReset:   time.Now().Truncate(time.Second),
		LastMonthlyReset: time.Now().Truncate(time.Second),
	}
	u.VoiceSession = user.VoiceSession{
		State:            user.SessionArmed,
		SelectedLanguage: language.Georgian,
		ExpiresAt:        time.Now().Add(5 * time.Minute).Truncate(time.Second),
	}
	u.Stats.TotalTranslations = 7

	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Email != u.Email {
		t.Errorf("GetByID() email = %v, want %v", got.Email, u.Email)
	}
	if got.Languages != u.Languages {
		t.Errorf("GetByID() languages = %v, want %v", got.Languages, u.Languages)
	}
	if got.Tier != user.TierPremium {
		t.Errorf("GetByID() tier = %v, want %v", got.Tier, user.TierPremium)
	}
	if got.TierExpires == nil || !got.TierExpires.Equal(expires) {
		t.Errorf("GetByID() tier expires = %v, want %v", got.TierExpires, expires)
	}
	if got.Usage.DailyUsed != 120 || got.Usage.MonthlyUsed != 4500 || got.Usage.TotalUsed != 99000 {
		t.Errorf("GetByID() usage = %+v, want %+v", got.Usage, u.Usage)
	}
	if got.VoiceSession.State != user.SessionArmed {
		t.Errorf("GetByID() session state = %v, want %v", got.VoiceSession.State, user.SessionArmed)
	}
	if got.VoiceSession.SelectedLanguage != language.Georgian {
		t.Errorf("GetByID() session language = %v, want %v", got.VoiceSession.SelectedLanguage, language.Georgian)
	}
	if got.Stats.TotalTranslations != 7 {
		t.Errorf("GetByID() translations = %v, want %v", got.Stats.TotalTranslations, 7)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	u := newUser("lookup@example.com")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "existing email", email: "lookup@example.com", wantErr: false},
		{name: "missing email", email: "nobody@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByEmail(ctx, tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetByEmail() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got.ID != u.ID {
				t.Errorf("GetByEmail() ID = %v, want %v", got.ID, u.ID)
			}
		})
	}
}

func TestUserRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	u := newUser("update@example.com")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	u.Languages = language.Pair{Primary: language.English, Secondary: language.Indonesian}
	u.Usage.DailyUsed = 42
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Languages.Primary != language.English || got.Languages.Secondary != language.Indonesian {
		t.Errorf("Update() languages = %v, want en/id", got.Languages)
	}
	if got.Usage.DailyUsed != 42 {
		t.Errorf("Update() daily used = %v, want 42", got.Usage.DailyUsed)
	}

	missing := newUser("ghost@example.com")
	missing.ID = 9999
	if err := repo.Update(ctx, missing); err == nil {
		t.Error("Update() expected error for missing user")
	}
}

func TestUserRepository_ClearExpiredSessions(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	expired := newUser("expired@example.com")
	expired.VoiceSession = user.VoiceSession{
		State:            user.SessionArmed,
		SelectedLanguage: language.English,
		ExpiresAt:        now.Add(-time.Minute),
	}
	if err := repo.Create(ctx, expired); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	live := newUser("live@example.com")
	live.VoiceSession = user.VoiceSession{
		State:            user.SessionArmed,
		SelectedLanguage: language.Russian,
		ExpiresAt:        now.Add(4 * time.Minute),
	}
	if err := repo.Create(ctx, live); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	n, err := repo.ClearExpiredSessions(ctx, now)
	if err != nil {
		t.Fatalf("ClearExpiredSessions() error = %v", err)
	}
	if n != 1 {
		t.Errorf("ClearExpiredSessions() = %v, want 1", n)
	}

	got, err := repo.GetByID(ctx, expired.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.VoiceSession.State != user.SessionIdle {
		t.Errorf("expired session state = %v, want %v", got.VoiceSession.State, user.SessionIdle)
	}

	got, err = repo.GetByID(ctx, live.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.VoiceSession.State != user.SessionArmed {
		t.Errorf("live session state = %v, want %v", got.VoiceSession.State, user.SessionArmed)
	}
}
