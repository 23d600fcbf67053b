package httpapi

import (
	"sort"

	"github.com/biblespeak/versefinder/internal/domain"
	searchuc "github.com/biblespeak/versefinder/internal/usecase/search"
)

// displayRank orders translations for presentation. Versions not listed keep
// their relative order after the known ones.
var displayRank = map[string]int{
	"ESV":                  0,
	"NASB1995":             1,
	"KRV":                  2,
	"RNKSV":                3,
	domain.VersionOriginal: 4,
}

type stateResponse struct {
	Query    string                      `json:"query"`
	Language string                      `json:"language"`
	Loading  bool                        `json:"loading"`
	Error    string                      `json:"error,omitempty"`
	Results  []domain.GroupedVerseResult `json:"results"`
}

func stateToResponse(snap searchuc.Snapshot) stateResponse {
	return stateResponse{
		Query:    snap.Query,
		Language: string(snap.Language),
		Loading:  snap.Loading,
		Error:    snap.ErrMsg,
		Results:  resultsToResponse(snap.Results),
	}
}

// resultsToResponse copies results with translations in display order.
func resultsToResponse(results []domain.GroupedVerseResult) []domain.GroupedVerseResult {
	out := make([]domain.GroupedVerseResult, len(results))
	for i, r := range results {
		translations := make([]domain.VerseTranslation, len(r.Translations))
		copy(translations, r.Translations)
		sort.SliceStable(translations, func(a, b int) bool {
			return rankOf(translations[a].Version) < rankOf(translations[b].Version)
		})
		r.Translations = translations
		out[i] = r
	}
	return out
}

func rankOf(version string) int {
	if rank, ok := displayRank[version]; ok {
		return rank
	}
	return len(displayRank)
}
