package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Language is the two-letter code an organization wants its replies in.
type Language string

const (
	LanguageEN Language = "EN"
	LanguageES Language = "ES"
)

var supportedLanguages = map[Language]language.Tag{
	LanguageEN: language.English,
	LanguageES: language.Spanish,
}

// Tag returns the BCP 47 tag for the language, English when unsupported.
func (l Language) Tag() language.Tag {
	if tag, ok := supportedLanguages[l]; ok {
		return tag
	}
	return language.English
}

// IsSupported reports whether replies can be rendered in l.
func (l Language) IsSupported() bool {
	_, ok := supportedLanguages[l]
	return ok
}

// ParseLanguage accepts any BCP 47 form ("es", "ES", "es-CO") and reduces it
// to one of the supported two-letter codes.
func ParseLanguage(s string) (Language, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("unparseable language %q: %w", s, err)
	}
	base, _ := tag.Base()
	lang := Language(strings.ToUpper(base.String()))
	if !lang.IsSupported() {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return lang, nil
}

// Organization is a tenant owning users, a base currency and a reply language.
// Currency and Language are fixed at onboarding.
type Organization struct {
	OrganizationID int64     `json:"organizationID"`
	CreatedAt      time.Time `json:"createdAt"`
	Name           string    `json:"name"`
	Currency       string    `json:"currency"` // ISO 4217, base currency for stored conversions
	Language       Language  `json:"language"`
}
