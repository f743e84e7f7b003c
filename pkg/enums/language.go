package enums

import "fmt"

// Language represents the communication language of an organization.
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
)

var validLanguages = []Language{
	LanguageFrench,
	LanguageEnglish,
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

// IsValid reports whether the language is recognized.
func (l Language) IsValid() bool {
	for _, candidate := range validLanguages {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLanguage converts a raw string into a Language.
func ParseLanguage(value string) (Language, error) {
	for _, candidate := range validLanguages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid language %q", value)
}
