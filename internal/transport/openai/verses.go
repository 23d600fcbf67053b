package openai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/domain"
)

const verseSystemPrompt = `You are a Bible research assistant rooted in historic Reformed theology.
Perform a comprehensive search across all 66 books of the Protestant Bible for every verse directly
relevant to the user's query. Group results by canonical reference; each group carries one shared
relevance explanation and one shared historical-literary context (author, audience, genre, place in
redemptive history). Provide the verse text in every requested version. For the "Original" version,
give the full text in the original script (Hebrew for OT, Greek for NT), a complete English
transliteration, and 1-3 key terms each with its original form, transliteration, and a brief
layperson-friendly explanation. Verse selection and interpretation must be consistent across target
languages. Respond with JSON only: an object {"results": [...]} where each item has the fields
"reference", "relevance_explanation", "context", and "translations" (array of {"version", "text"},
with "original_language_detail" {"text", "transliteration", "key_terms": [{"term",
"transliteration", "explanation"}]} present only on the "Original" entry).`

// versePayload mirrors one result object of the service response, before
// validation and id derivation.
type versePayload struct {
	Reference            string                    `json:"reference"`
	RelevanceExplanation string                    `json:"relevance_explanation"`
	Context              string                    `json:"context"`
	Translations         []domain.VerseTranslation `json:"translations"`
}

// FindVerses runs a single verse search for the query in the given language.
// Transport and service failures map to domain.ErrVerseService; payloads
// that do not match the schema map to domain.ErrMalformedResult. No retries.
func (c *Client) FindVerses(
	ctx context.Context, query string, lang domain.Language,
) ([]domain.GroupedVerseResult, error) {
	versions := append(append([]string{}, c.versions[lang]...), domain.VersionOriginal)

	user := fmt.Sprintf("User query: %q\nLanguage: %q\nBible versions: %s",
		query, lang, strings.Join(versions, ", "))

	content, err := c.generate(ctx, "verses", verseSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	var payload []versePayload
	if err := decodeArray(content, "results", &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResult, err)
	}

	results, err := buildResults(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResult, err)
	}

	c.logger.Debug("Verse search completed",
		zap.String("language", string(lang)),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// buildResults validates required fields, derives ids, and enforces the
// result-set invariants: translations non-empty, ids unique,
// original_language_detail only on the "Original" entry.
func buildResults(payload []versePayload) ([]domain.GroupedVerseResult, error) {
	results := make([]domain.GroupedVerseResult, 0, len(payload))
	seen := make(map[string]bool, len(payload))

	for i, p := range payload {
		if strings.TrimSpace(p.Reference) == "" {
			return nil, fmt.Errorf("result %d: missing reference", i)
		}
		if p.RelevanceExplanation == "" {
			return nil, fmt.Errorf("result %q: missing relevance_explanation", p.Reference)
		}
		if p.Context == "" {
			return nil, fmt.Errorf("result %q: missing context", p.Reference)
		}
		if len(p.Translations) == 0 {
			return nil, fmt.Errorf("result %q: empty translations", p.Reference)
		}

		translations := make([]domain.VerseTranslation, 0, len(p.Translations))
		for j, t := range p.Translations {
			if t.Version == "" || t.Text == "" {
				return nil, fmt.Errorf("result %q: translation %d missing version or text", p.Reference, j)
			}
			if t.Version != domain.VersionOriginal {
				t.OriginalLanguageDetail = nil
			}
			translations = append(translations, t)
		}

		id := domain.DeriveID(p.Reference)
		if seen[id] {
			// Same reference emitted twice; keep the first occurrence.
			continue
		}
		seen[id] = true

		results = append(results, domain.GroupedVerseResult{
			ID:                   id,
			Reference:            p.Reference,
			RelevanceExplanation: p.RelevanceExplanation,
			Context:              p.Context,
			Translations:         translations,
		})
	}
	return results, nil
}
