package domain

import "time"

// TrendingEntry is a cached set of suggested prompts for one language.
// FetchedAt is unix milliseconds; the version suffix of the storage key,
// not this struct, guards against incompatible historical shapes.
type TrendingEntry struct {
	Prompts   []string `json:"prompts"`
	FetchedAt int64    `json:"timestamp"`
}

// NewTrendingEntry stamps prompts with the given fetch time.
func NewTrendingEntry(prompts []string, now time.Time) TrendingEntry {
	return TrendingEntry{Prompts: prompts, FetchedAt: now.UnixMilli()}
}

// Fresh reports whether the entry is younger than window at time now.
func (e TrendingEntry) Fresh(now time.Time, window time.Duration) bool {
	if e.FetchedAt <= 0 {
		return false
	}
	age := now.Sub(time.UnixMilli(e.FetchedAt))
	return age >= 0 && age < window
}
