package search

import (
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/justchokingaround/anisearch/internal/catalog"
)

// SortMode orders the displayed results
type SortMode string

const (
	SortNone       SortMode = ""
	SortPopularity SortMode = "popularity"
	SortRating     SortMode = "rating"
	SortNewest     SortMode = "newest"
)

// SortModes lists every mode in panel order
var SortModes = []SortMode{SortNone, SortPopularity, SortRating, SortNewest}

// Label is the human name of the mode
func (m SortMode) Label() string {
	switch m {
	case SortPopularity:
		return "Popularity"
	case SortRating:
		return "Rating"
	case SortNewest:
		return "Newest"
	default:
		return "Default"
	}
}

// ParseSortMode accepts "", "none" and the mode names, case-insensitively
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "default":
		return SortNone, nil
	case "popularity":
		return SortPopularity, nil
	case "rating":
		return SortRating, nil
	case "newest":
		return SortNewest, nil
	}
	return SortNone, &catalog.ValidationError{
		Field: "sort mode",
		Value: s,
		Msg:   "must be one of popularity, rating, newest",
	}
}

// Genres offered by the filter panel
var Genres = []string{
	"Action",
	"Adventure",
	"Comedy",
	"Drama",
	"Fantasy",
	"Horror",
	"Mystery",
	"Romance",
	"Sci-Fi",
	"Slice of Life",
	"Sports",
	"Supernatural",
}

// RecentYears returns the last n years, newest first
func RecentYears(now time.Time, n int) []string {
	years := make([]string, 0, n)
	for i := 0; i < n; i++ {
		years = append(years, strconv.Itoa(now.Year()-i))
	}
	return years
}

// Filters narrows the fetched page. An empty Filters matches everything.
type Filters struct {
	Genres []string
	Year   string
}

// HasGenre reports whether genre is selected
func (f Filters) HasGenre(genre string) bool {
	return slices.Contains(f.Genres, genre)
}

// Count is the number of active filter criteria
func (f Filters) Count() int {
	n := len(f.Genres)
	if f.Year != "" {
		n++
	}
	return n
}

func (f Filters) clone() Filters {
	return Filters{Genres: slices.Clone(f.Genres), Year: f.Year}
}

func (f Filters) String() string {
	parts := make([]string, 0, 2)
	if len(f.Genres) > 0 {
		parts = append(parts, "genres="+strings.Join(f.Genres, ","))
	}
	if f.Year != "" {
		parts = append(parts, "year="+f.Year)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Derive filters and sorts items into the list to display.
// items is never modified.
func Derive(items []catalog.Anime, filters Filters, mode SortMode) []catalog.Anime {
	out := make([]catalog.Anime, 0, len(items))
	for _, item := range items {
		if matches(item, filters) {
			out = append(out, item)
		}
	}

	if less := comparator(mode); less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j])
		})
	}
	return out
}

func matches(item catalog.Anime, filters Filters) bool {
	if len(filters.Genres) > 0 {
		found := false
		for _, g := range filters.Genres {
			if item.HasGenre(g) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filters.Year != "" && item.YearString() != filters.Year {
		return false
	}
	return true
}

func comparator(mode SortMode) func(a, b catalog.Anime) bool {
	switch mode {
	case SortPopularity:
		return func(a, b catalog.Anime) bool {
			return popularityKey(a) < popularityKey(b)
		}
	case SortRating:
		return func(a, b catalog.Anime) bool {
			return catalog.Deref(a.Score) > catalog.Deref(b.Score)
		}
	case SortNewest:
		return func(a, b catalog.Anime) bool {
			return catalog.Deref(a.Year) > catalog.Deref(b.Year)
		}
	}
	return nil
}

// Missing or zero popularity ranks sort after every ranked item
func popularityKey(a catalog.Anime) int {
	if a.Popularity == nil || *a.Popularity == 0 {
		return math.MaxInt
	}
	return *a.Popularity
}
