// Package language defines the closed set of languages the service
// translates between, the user language pair, and the detection
// reconciliation rules. Membership in the set is checked at every
// boundary: detector output, user configuration, and callback input.
package language

import (
	"fmt"
	"strings"
)

// Language is a supported language code (ISO 639-1).
type Language string

// Supported languages
const (
	Ukrainian  Language = "uk"
	English    Language = "en"
	Georgian   Language = "ka"
	Indonesian Language = "id"
	Russian    Language = "ru"
)

// Default is the language substituted when a detector yields a code
// outside the supported set and failing the request would be worse
// than a best-effort guess.
const Default = Ukrainian

// Info holds display metadata for a language.
type Info struct {
	Code Language `json:"code"`
	Name string   `json:"name"`
	Flag string   `json:"flag"`
}

var registry = map[Language]Info{
	Ukrainian:  {Code: Ukrainian, Name: "Українська", Flag: "🇺🇦"},
	English:    {Code: English, Name: "English", Flag: "🇺🇸"},
	Georgian:   {Code: Georgian, Name: "ქართული", Flag: "🇬🇪"},
	Indonesian: {Code: Indonesian, Name: "Bahasa Indonesia", Flag: "🇮🇩"},
	Russian:    {Code: Russian, Name: "Русский", Flag: "🇷🇺"},
}

// whisperNames maps Whisper's verbose language names onto the closed set.
var whisperNames = map[string]Language{
	"ukrainian":  Ukrainian,
	"english":    English,
	"georgian":   Georgian,
	"indonesian": Indonesian,
	"russian":    Russian,
}

// All returns every supported language in a stable order.
func All() []Language {
	return []Language{Ukrainian, English, Georgian, Indonesian, Russian}
}

// AllInfo returns display metadata for every supported language.
func AllInfo() []Info {
	langs := All()
	out := make([]Info, 0, len(langs))
	for _, l := range langs {
		out = append(out, registry[l])
	}
	return out
}

// IsSupported reports whether l is a member of the closed set.
func IsSupported(l Language) bool {
	_, ok := registry[l]
	return ok
}

// Parse validates a raw code against the closed set.
func Parse(code string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(code)))
	if !IsSupported(l) {
		return "", fmt.Errorf("unsupported language: %q", code)
	}
	return l, nil
}

// FromWhisper normalizes a Whisper-reported language into the closed set.
// Whisper returns either a full name ("ukrainian") or a bare code; anything
// unrecognized is a detector error and falls back to the default.
func FromWhisper(reported string) (Language, bool) {
	s := strings.ToLower(strings.TrimSpace(reported))
	if l, ok := whisperNames[s]; ok {
		return l, true
	}
	if l := Language(s); IsSupported(l) {
		return l, true
	}
	return Default, false
}

// GetInfo returns display metadata for a language.
func GetInfo(l Language) (Info, bool) {
	info, ok := registry[l]
	return info, ok
}

// DisplayName returns "flag name" for a language, or the raw code if unknown.
func DisplayName(l Language) string {
	info, ok := registry[l]
	if !ok {
		return string(l)
	}
	return info.Flag + " " + info.Name
}

// Pair is the two languages a user dictates and receives translations in.
type Pair struct {
	Primary   Language `json:"primary"`
	Secondary Language `json:"secondary"`
}

// Validate checks both members against the closed set and rejects equal pairs.
func (p Pair) Validate() error {
	if !IsSupported(p.Primary) {
		return fmt.Errorf("unsupported primary language: %q", p.Primary)
	}
	if !IsSupported(p.Secondary) {
		return fmt.Errorf("unsupported secondary language: %q", p.Secondary)
	}
	if p.Primary == p.Secondary {
		return fmt.Errorf("language pair members must differ, got %q twice", p.Primary)
	}
	return nil
}

// Contains reports whether l is one of the pair members.
func (p Pair) Contains(l Language) bool {
	return l == p.Primary || l == p.Secondary
}

// Swap returns the pair with primary and secondary exchanged.
func (p Pair) Swap() Pair {
	return Pair{Primary: p.Secondary, Secondary: p.Primary}
}

// DefaultPair is the pair assigned to users on first contact.
func DefaultPair() Pair {
	return Pair{Primary: Ukrainian, Secondary: English}
}
