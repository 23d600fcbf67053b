package domain

// Language is a supported UI language tag.
type Language string

const (
	// LangEN is English.
	LangEN Language = "en"
	// LangKO is Korean.
	LangKO Language = "ko"
)

// Languages lists all supported language tags.
func Languages() []Language {
	return []Language{LangEN, LangKO}
}

// Valid reports whether l is a supported language tag.
func (l Language) Valid() bool {
	switch l {
	case LangEN, LangKO:
		return true
	}
	return false
}

// ParseLanguage validates a raw language tag.
func ParseLanguage(raw string) (Language, error) {
	l := Language(raw)
	if !l.Valid() {
		return "", ErrUnknownLanguage
	}
	return l, nil
}
