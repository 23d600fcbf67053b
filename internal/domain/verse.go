package domain

import "strings"

// VersionOriginal is the sentinel version carrying original-language analysis.
const VersionOriginal = "Original"

// KeyTerm is one analyzed term from the original-language text.
type KeyTerm struct {
	Term            string `json:"term"`
	Transliteration string `json:"transliteration"`
	Explanation     string `json:"explanation"`
}

// OriginalLanguageDetail holds script, transliteration, and key-term analysis
// for the "Original" translation entry. Never attached to any other version.
type OriginalLanguageDetail struct {
	Text            string    `json:"text"`
	Transliteration string    `json:"transliteration"`
	KeyTerms        []KeyTerm `json:"key_terms"`
}

// VerseTranslation is one rendering of a verse in a specific version.
type VerseTranslation struct {
	Version                string                  `json:"version"`
	Text                   string                  `json:"text"`
	OriginalLanguageDetail *OriginalLanguageDetail `json:"original_language_detail,omitempty"`
}

// GroupedVerseResult bundles one canonical reference with all requested
// translations and the shared commentary. Identity for bookmarking is ID.
type GroupedVerseResult struct {
	ID                   string             `json:"id"`
	Reference            string             `json:"reference"`
	RelevanceExplanation string             `json:"relevance_explanation"`
	Context              string             `json:"context"`
	Translations         []VerseTranslation `json:"translations"`
}

// DeriveID maps a canonical reference to a stable result id by replacing
// whitespace and colons with '-'. "John 3:16" -> "John-3-16".
func DeriveID(reference string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return '-'
		}
		return r
	}, reference)
}
