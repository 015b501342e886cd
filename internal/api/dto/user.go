package dto

import (
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/user"
)

// UserDTO is the user representation returned by the API
type UserDTO struct {
	ID          int64           `json:"id"`
	Email       string          `json:"email"`
	Username    string          `json:"username,omitempty"`
	Tier        string          `json:"tier"`
	TierExpires *time.Time      `json:"tierExpires,omitempty"`
	Languages   LanguagePairDTO `json:"languages"`
}

// LanguagePairDTO is the configured translation pair
type LanguagePairDTO struct {
	Primary   LanguageDTO `json:"primary"`
	Secondary LanguageDTO `json:"secondary"`
}

// LanguageDTO describes one supported language
type LanguageDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// SetLanguagesRequest replaces the user's language pair
type SetLanguagesRequest struct {
	Primary   string `json:"primary" validate:"required,len=2"`
	Secondary string `json:"secondary" validate:"required,len=2"`
}

// UpgradeRequest upgrades the user to the premium tier
type UpgradeRequest struct {
	Months int `json:"months" validate:"required,gte=1,lte=12"`
}

// StatsResponse summarizes a user's translation activity
type StatsResponse struct {
	TotalTranslations int64 `json:"totalTranslations"`
	TotalTokensUsed   int64 `json:"totalTokensUsed"`
	StoredExchanges   int64 `json:"storedExchanges"`
}

// NewUserDTO converts a domain user to its API representation
func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Tier:        u.Tier,
		TierExpires: u.TierExpires,
		Languages:   NewLanguagePairDTO(u.Languages),
	}
}

// NewLanguagePairDTO converts a domain pair to its API representation
func NewLanguagePairDTO(p language.Pair) LanguagePairDTO {
	return LanguagePairDTO{
		Primary:   NewLanguageDTO(p.Primary),
		Secondary: NewLanguageDTO(p.Secondary),
	}
}

// NewLanguageDTO converts a language code to its API representation
func NewLanguageDTO(l language.Language) LanguageDTO {
	info, ok := language.GetInfo(l)
	if !ok {
		return LanguageDTO{Code: string(l)}
	}
	return LanguageDTO{
		Code: string(info.Code),
		Name: info.Name,
		Flag: info.Flag,
	}
}
