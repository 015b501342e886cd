package services

import (
	"context"
	"testing"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/testutil"
)

func TestUserService_Create(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	svc := NewUserService(repo, NewUserLocks(), testLogger())
	ctx := context.Background()

	u, err := svc.Create(ctx, "new@example.com", "newuser", "hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if u.ID == 0 {
		t.Error("Create() did not assign an ID")
	}
	if u.Languages != language.DefaultPair() {
		t.Errorf("Create() languages = %v, want default pair", u.Languages)
	}
	if u.Tier != user.TierFree {
		t.Errorf("Create() tier = %v, want %v", u.Tier, user.TierFree)
	}
	if u.VoiceSession.State != user.SessionIdle {
		t.Errorf("Create() session state = %v, want idle", u.VoiceSession.State)
	}
	if u.Usage.LastDailyReset.IsZero() || u.Usage.LastMonthlyReset.IsZero() {
		t.Error("Create() did not stamp usage reset times")
	}

	if _, err := svc.Create(ctx, "new@example.com", "dupe", "hash"); err == nil {
		t.Error("Create() expected error for duplicate email")
	}
}

func TestUserService_SetLanguages(t *testing.T) {
	tests := []struct {
		name    string
		pair    language.Pair
		wantErr bool
	}{
		{
			name: "valid pair",
			pair: language.Pair{Primary: language.Georgian, Secondary: language.Russian},
		},
		{
			name:    "identical members",
			pair:    language.Pair{Primary: language.English, Secondary: language.English},
			wantErr: true,
		},
		{
			name:    "unsupported member",
			pair:    language.Pair{Primary: language.English, Secondary: "fr"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockUserRepository()
			svc := NewUserService(repo, NewUserLocks(), testLogger())
			ctx := context.Background()

			u, err := svc.Create(ctx, "langs@example.com", "langs", "hash")
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			got, err := svc.SetLanguages(ctx, u.ID, tt.pair)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetLanguages() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got.Languages != tt.pair {
				t.Errorf("SetLanguages() = %v, want %v", got.Languages, tt.pair)
			}
		})
	}
}

func TestUserService_SwapLanguages(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	svc := NewUserService(repo, NewUserLocks(), testLogger())
	ctx := context.Background()

	u, err := svc.Create(ctx, "swap@example.com", "swap", "hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.SwapLanguages(ctx, u.ID)
	if err != nil {
		t.Fatalf("SwapLanguages() error = %v", err)
	}

	want := language.Pair{Primary: language.English, Secondary: language.Ukrainian}
	if got.Languages != want {
		t.Errorf("SwapLanguages() = %v, want %v", got.Languages, want)
	}
}

func TestUserService_UpgradeTier(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	svc := NewUserService(repo, NewUserLocks(), testLogger())
	ctx := context.Background()

	u, err := svc.Create(ctx, "upgrade@example.com", "upgrade", "hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	expires := time.Now().Add(30 * 24 * time.Hour)
	got, err := svc.UpgradeTier(ctx, u.ID, &expires)
	if err != nil {
		t.Fatalf("UpgradeTier() error = %v", err)
	}

	if got.Tier != user.TierPremium {
		t.Errorf("UpgradeTier() tier = %v, want %v", got.Tier, user.TierPremium)
	}
	if !got.IsPremium(time.Now()) {
		t.Error("UpgradeTier() user not premium before expiry")
	}
	if got.IsPremium(expires.Add(time.Hour)) {
		t.Error("UpgradeTier() user still premium after expiry")
	}
}

func TestUserService_RecordTranslation(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	svc := NewUserService(repo, NewUserLocks(), testLogger())
	ctx := context.Background()

	u, err := svc.Create(ctx, "stats@example.com", "stats", "hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.RecordTranslation(ctx, u.ID); err != nil {
			t.Fatalf("RecordTranslation() error = %v", err)
		}
	}

	if got := repo.Users[u.ID].Stats.TotalTranslations; got != 3 {
		t.Errorf("RecordTranslation() total = %v, want 3", got)
	}
}
