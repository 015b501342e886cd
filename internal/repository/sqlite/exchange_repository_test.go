package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/translation"
	"github.com/voxlate/voxlate/internal/repository/sqlite"
	"github.com/voxlate/voxlate/internal/testutil"
)

func TestExchangeRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := sqlite.NewExchangeRepository(db)
	ctx := context.Background()

	e := &translation.Exchange{
		UserID:          1,
		OriginalText:    "привіт",
		SourceLanguage:  language.Ukrainian,
		TranslatedText:  "hello",
		TargetLanguage:  language.English,
		DetectionMethod: translation.MethodReconciled,
		TokensUsed:      57,
	}

	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if e.ID == "" {
		t.Error("Create() did not assign an ID")
	}

	got, err := repo.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.OriginalText != e.OriginalText || got.TranslatedText != e.TranslatedText {
		t.Errorf("GetByID() = %+v, want texts %q/%q", got, e.OriginalText, e.TranslatedText)
	}
	if got.SourceLanguage != language.Ukrainian || got.TargetLanguage != language.English {
		t.Errorf("GetByID() languages = %v/%v, want uk/en", got.SourceLanguage, got.TargetLanguage)
	}
	if got.TokensUsed != 57 {
		t.Errorf("GetByID() tokens = %v, want 57", got.TokensUsed)
	}
}

func TestExchangeRepository_ListByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := sqlite.NewExchangeRepository(db)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		e := &translation.Exchange{
			UserID:          1,
			OriginalText:    fmt.Sprintf("text %d", i),
			SourceLanguage:  language.Ukrainian,
			TranslatedText:  fmt.Sprintf("translated %d", i),
			TargetLanguage:  language.English,
			DetectionMethod: translation.MethodManual,
			TokensUsed:      int64(50 + i),
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	other := &translation.Exchange{
		UserID:          2,
		OriginalText:    "other user",
		SourceLanguage:  language.Russian,
		TranslatedText:  "other",
		TargetLanguage:  language.Ukrainian,
		DetectionMethod: translation.MethodWhisperOnly,
		TokensUsed:      51,
	}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, total, err := repo.ListByUser(ctx, 1, 3, 0)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if total != 5 {
		t.Errorf("ListByUser() total = %v, want 5", total)
	}
	if len(got) != 3 {
		t.Fatalf("ListByUser() returned %d exchanges, want 3", len(got))
	}
	if got[0].OriginalText != "text 4" {
		t.Errorf("ListByUser() first = %q, want newest first", got[0].OriginalText)
	}

	got, total, err = repo.ListByUser(ctx, 1, 3, 3)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if total != 5 || len(got) != 2 {
		t.Errorf("ListByUser() page 2 = %d items total %d, want 2 items total 5", len(got), total)
	}
}
