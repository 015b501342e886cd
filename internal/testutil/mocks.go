package testutil

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/translation"
	"github.com/voxlate/voxlate/internal/domain/user"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
	UpdateCalls int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	m.UpdateCalls++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if u, ok := m.Users[id]; ok {
		delete(m.EmailIndex, u.Email)
		delete(m.Users, id)
		return nil
	}
	return fmt.Errorf("user not found")
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	if m.GetError != nil {
		return nil, 0, m.GetError
	}
	ids := make([]int64, 0, len(m.Users))
	for id := range m.Users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*user.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, m.Users[id])
	}
	return out, int64(len(m.Users)), nil
}

func (m *MockUserRepository) ClearExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.UpdateError != nil {
		return 0, m.UpdateError
	}
	var n int64
	for _, u := range m.Users {
		if u.VoiceSession.State != user.SessionIdle && u.VoiceSession.State != "" &&
			!u.VoiceSession.ExpiresAt.After(cutoff) {
			u.VoiceSession = user.VoiceSession{State: user.SessionIdle}
			n++
		}
	}
	return n, nil
}

// MockExchangeRepository is a mock implementation of translation.Repository
type MockExchangeRepository struct {
	Exchanges   []*translation.Exchange
	CreateError error
	GetError    error
}

func NewMockExchangeRepository() *MockExchangeRepository {
	return &MockExchangeRepository{}
}

func (m *MockExchangeRepository) Create(ctx context.Context, e *translation.Exchange) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Exchanges = append(m.Exchanges, e)
	return nil
}

func (m *MockExchangeRepository) GetByID(ctx context.Context, id string) (*translation.Exchange, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, e := range m.Exchanges {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("exchange not found")
}

func (m *MockExchangeRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*translation.Exchange, int64, error) {
	if m.GetError != nil {
		return nil, 0, m.GetError
	}
	var matched []*translation.Exchange
	for i := len(m.Exchanges) - 1; i >= 0; i-- {
		if m.Exchanges[i].UserID == userID {
			matched = append(matched, m.Exchanges[i])
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// FakeProvider is a scripted implementation of translation.Provider.
// Transcription and detection results are fixed per instance; Translate
// wraps the input so tests can assert which direction ran.
type FakeProvider struct {
	TranscribedText string
	AudioLanguage   language.Language
	TextLanguage    language.Language

	TranscribeError error
	DetectError     error
	TranslateError  error
	SynthesizeError error

	TranscribeCalls int
	DetectCalls     int
	TranslateCalls  []string // "from>to" per call, in order
	LastHint        language.Language
}

func (f *FakeProvider) Transcribe(ctx context.Context, audio []byte, hint language.Language) (*translation.Transcription, error) {
	f.TranscribeCalls++
	f.LastHint = hint
	if f.TranscribeError != nil {
		return nil, f.TranscribeError
	}
	return &translation.Transcription{
		Text:             f.TranscribedText,
		DetectedLanguage: f.AudioLanguage,
		Recognized:       true,
	}, nil
}

func (f *FakeProvider) DetectLanguage(ctx context.Context, text string, candidates []language.Language) (language.Language, error) {
	f.DetectCalls++
	if f.DetectError != nil {
		return "", f.DetectError
	}
	return f.TextLanguage, nil
}

func (f *FakeProvider) Translate(ctx context.Context, text string, from, to language.Language) (string, error) {
	f.TranslateCalls = append(f.TranslateCalls, fmt.Sprintf("%s>%s", from, to))
	if f.TranslateError != nil {
		return "", f.TranslateError
	}
	return fmt.Sprintf("[%s->%s] %s", from, to, text), nil
}

func (f *FakeProvider) Synthesize(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	if f.SynthesizeError != nil {
		return nil, f.SynthesizeError
	}
	return []byte("audio:" + text), nil
}
