package dto

import (
	"time"

	"github.com/voxlate/voxlate/internal/domain/user"
)

// SelectLanguageRequest arms the voice session with a dictation language
type SelectLanguageRequest struct {
	Language string `json:"language" validate:"required,len=2"`
}

// SessionResponse describes the current voice session state
type SessionResponse struct {
	State            string     `json:"state"`
	SelectedLanguage string     `json:"selectedLanguage,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
}

// NewSessionResponse converts a voice session to the API representation
func NewSessionResponse(s user.VoiceSession) *SessionResponse {
	resp := &SessionResponse{
		State:            s.State,
		SelectedLanguage: string(s.SelectedLanguage),
	}
	if !s.ExpiresAt.IsZero() {
		t := s.ExpiresAt
		resp.ExpiresAt = &t
	}
	return resp
}
