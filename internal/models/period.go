package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is an inclusive calendar interval
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the range is ordered
func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start)
}

// String formats the range for display
func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// Natural-language period phrases. Each phrase maps to a pure function of
// the reference date so resolution is deterministic and testable without
// wall-clock dependence.
//
//	last N days   -> [ref - N days, ref]
//	last N months -> [ref - N calendar months, ref]
//	this month    -> [first day of ref's month, ref]
//	this year     -> [Jan 1 of ref's year, ref]
//	last year     -> [Jan 1 of previous year, Dec 31 of previous year]
var (
	lastDaysPattern   = regexp.MustCompile(`^last\s+(\d+)\s+days?$`)
	lastMonthsPattern = regexp.MustCompile(`^last\s+(\d+)\s+months?$`)
)

// ErrUnknownPeriod is returned for phrases outside the supported set
type ErrUnknownPeriod struct {
	Phrase string
}

func (e *ErrUnknownPeriod) Error() string {
	return fmt.Sprintf("unrecognized time period %q", e.Phrase)
}

// ResolvePeriod maps a natural-language phrase to an explicit date range
// anchored at ref. ResolvePeriod has no hidden state: the same phrase and
// reference date always produce the same range.
func ResolvePeriod(phrase string, ref time.Time) (DateRange, error) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))

	if m := lastDaysPattern.FindStringSubmatch(normalized); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil || days <= 0 {
			return DateRange{}, &ErrUnknownPeriod{Phrase: phrase}
		}
		return DateRange{Start: ref.AddDate(0, 0, -days), End: ref}, nil
	}

	if m := lastMonthsPattern.FindStringSubmatch(normalized); m != nil {
		months, err := strconv.Atoi(m[1])
		if err != nil || months <= 0 {
			return DateRange{}, &ErrUnknownPeriod{Phrase: phrase}
		}
		return DateRange{Start: ref.AddDate(0, -months, 0), End: ref}, nil
	}

	switch normalized {
	case "this month":
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return DateRange{Start: start, End: ref}, nil
	case "this year":
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		return DateRange{Start: start, End: ref}, nil
	case "last year":
		start := time.Date(ref.Year()-1, time.January, 1, 0, 0, 0, 0, ref.Location())
		end := time.Date(ref.Year()-1, time.December, 31, 23, 59, 59, 0, ref.Location())
		return DateRange{Start: start, End: end}, nil
	}

	return DateRange{}, &ErrUnknownPeriod{Phrase: phrase}
}

// Granularity selects the calendar bucket size for trend series
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity validates a granularity label
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case GranularityDay:
		return GranularityDay, nil
	case GranularityWeek:
		return GranularityWeek, nil
	case GranularityMonth:
		return GranularityMonth, nil
	case GranularityYear:
		return GranularityYear, nil
	default:
		return "", fmt.Errorf("unsupported granularity %q", s)
	}
}

// BucketStart aligns t to the start of its calendar period. Weeks start on
// Monday, matching ISO 8601 week numbering.
func BucketStart(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case GranularityYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

func nextBucket(start time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return start.AddDate(0, 0, 7)
	case GranularityMonth:
		return start.AddDate(0, 1, 0)
	case GranularityYear:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// BucketLabel formats the canonical label for a bucket starting at start
func BucketLabel(start time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case GranularityMonth:
		return start.Format("2006-01")
	case GranularityYear:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}

// Buckets returns one DateRange per calendar period touched by [start, end],
// in chronological order, with no gaps. Empty periods still get a bucket so
// consumers can plot a continuous series.
func Buckets(start, end time.Time, g Granularity) []DateRange {
	if end.Before(start) {
		return nil
	}

	var buckets []DateRange
	for cursor := BucketStart(start, g); !cursor.After(end); cursor = nextBucket(cursor, g) {
		buckets = append(buckets, DateRange{
			Start: cursor,
			End:   nextBucket(cursor, g).Add(-time.Second),
		})
	}
	return buckets
}

// PeriodsBetween counts the calendar periods touched by [start, end]
func PeriodsBetween(start, end time.Time, g Granularity) int {
	return len(Buckets(start, end, g))
}
