package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank or whitespace-only search query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrUnknownLanguage signals an unsupported language tag.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrVerseService signals a transport or availability failure of the
	// verse generation service.
	ErrVerseService = errors.New("verse service error")
	// ErrMalformedResult signals a verse service payload that does not
	// match the declared schema.
	ErrMalformedResult = errors.New("malformed verse service response")
)

// SearchFallbackMessage returns the localized generic error text shown when
// a search failure carries no user-presentable message.
func SearchFallbackMessage(lang Language) string {
	if lang == LangKO {
		return "검색 중 오류가 발생했습니다. 다시 시도해 주세요."
	}
	return "An error occurred during the search. Please try again."
}
