package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/repository/sqlite"
	"github.com/voxlate/voxlate/internal/testutil"
)

// Quota, session and user services all persist through the full-row user
// update, so their writes for one user must serialize on one registry or
// an interleaved writer pushes a stale row back over a committed spend.
func TestUserRowWritersShareLock(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)
	db.SetMaxOpenConns(1)

	repo := sqlite.NewUserRepository(db)
	u := &user.User{
		Email:     "contended@example.com",
		Languages: language.DefaultPair(),
		Tier:      user.TierFree,
		Usage: user.TokenUsage{
			LastDailyReset:   time.Now(),
			LastMonthlyReset: time.Now(),
		},
		VoiceSession: user.VoiceSession{State: user.SessionIdle},
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	locks := NewUserLocks()
	quotaSvc := NewQuotaService(repo, testQuotaConfig(), locks, testLogger())
	sessionSvc := NewSessionService(repo, 5*time.Minute, locks, testLogger())
	userSvc := NewUserService(repo, locks, testLogger())

	const rounds = 20
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if err := quotaSvc.Commit(context.Background(), u.ID, 10); err != nil {
				t.Errorf("Commit() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := sessionSvc.SelectLanguage(context.Background(), u.ID, language.English); err != nil {
				t.Errorf("SelectLanguage() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := userSvc.RecordTranslation(context.Background(), u.ID); err != nil {
				t.Errorf("RecordTranslation() error = %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Usage.DailyUsed != rounds*10 {
		t.Errorf("DailyUsed = %d, want %d", got.Usage.DailyUsed, rounds*10)
	}
	if got.Usage.MonthlyUsed != rounds*10 {
		t.Errorf("MonthlyUsed = %d, want %d", got.Usage.MonthlyUsed, rounds*10)
	}
	if got.Usage.TotalUsed != rounds*10 {
		t.Errorf("TotalUsed = %d, want %d", got.Usage.TotalUsed, rounds*10)
	}
	if got.Stats.TotalTranslations != rounds {
		t.Errorf("TotalTranslations = %d, want %d", got.Stats.TotalTranslations, rounds)
	}
}

// A session write in flight for a user must hold the same mutex Commit
// takes, so Commit cannot slot its write into the session's
// read-modify-write gap (and vice versa).
func TestQuotaService_CommitWaitsForUserLock(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	u := seedUser(repo, user.TierFree, time.Now())

	locks := NewUserLocks()
	svc := NewQuotaService(repo, testQuotaConfig(), locks, testLogger())

	unlock := locks.Lock(u.ID)
	done := make(chan error, 1)
	go func() {
		done <- svc.Commit(context.Background(), u.ID, 150)
	}()

	select {
	case <-done:
		t.Fatal("Commit() proceeded while another writer held the user lock")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	if err := <-done; err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	got, _ := repo.GetByID(context.Background(), u.ID)
	if got.Usage.DailyUsed != 150 {
		t.Errorf("DailyUsed = %d, want 150", got.Usage.DailyUsed)
	}
}
