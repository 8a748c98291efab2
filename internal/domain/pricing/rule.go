package pricing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"court-reserve/internal/domain/schedule"
)

var (
	ErrRuleNotConfigured = errors.New("no active pricing rule for bucket pair")
	ErrDuplicateRule     = errors.New("multiple active pricing rules for bucket pair")
	ErrNegativeRate      = errors.New("price per hour cannot be negative")
	ErrInvalidBucket     = errors.New("invalid pricing bucket")
)

type DayBucket string

const (
	DaySunWed DayBucket = "sun_wed"
	DayThu    DayBucket = "thu"
	DayFri    DayBucket = "fri"
	DaySat    DayBucket = "sat"
)

func (b DayBucket) Valid() bool {
	switch b {
	case DaySunWed, DayThu, DayFri, DaySat:
		return true
	default:
		return false
	}
}

// DayBucketOf classifies a calendar date: Sunday-Wednesday share one bucket,
// Thursday, Friday and Saturday each get their own.
func DayBucketOf(date time.Time) DayBucket {
	switch date.Weekday() {
	case time.Thursday:
		return DayThu
	case time.Friday:
		return DayFri
	case time.Saturday:
		return DaySat
	default:
		return DaySunWed
	}
}

type TimeBucket string

const (
	TimeDay   TimeBucket = "day"
	TimeNight TimeBucket = "night"
)

func (b TimeBucket) Valid() bool {
	return b == TimeDay || b == TimeNight
}

const nightFrom = 19 * 60 // 19:00
const nightUntil = 9 * 60 // 09:00

// TimeBucketOf classifies a segment by its start minute: [19:00,24:00) and
// [00:00,09:00) are night, the rest is day.
func TimeBucketOf(start schedule.Minute) TimeBucket {
	if start >= nightFrom || start < nightUntil {
		return TimeNight
	}
	return TimeDay
}

type Rule struct {
	id           uuid.UUID
	dayBucket    DayBucket
	timeBucket   TimeBucket
	pricePerHour int64 // halalas
	active       bool
}

func NewRule(id uuid.UUID, day DayBucket, tb TimeBucket, pricePerHour int64, active bool) (Rule, error) {
	if !day.Valid() || !tb.Valid() {
		return Rule{}, ErrInvalidBucket
	}
	if pricePerHour < 0 {
		return Rule{}, ErrNegativeRate
	}
	return Rule{id: id, dayBucket: day, timeBucket: tb, pricePerHour: pricePerHour, active: active}, nil
}

func (r Rule) ID() uuid.UUID          { return r.id }
func (r Rule) DayBucket() DayBucket   { return r.dayBucket }
func (r Rule) TimeBucket() TimeBucket { return r.timeBucket }
func (r Rule) PricePerHour() int64    { return r.pricePerHour }
func (r Rule) Active() bool           { return r.active }

// Category is the derived convenience label, e.g. "thu_night".
func (r Rule) Category() string {
	return string(r.dayBucket) + "_" + string(r.timeBucket)
}

type bucketKey struct {
	day DayBucket
	tb  TimeBucket
}

// RuleSet is the small active-rule table, at most one rule per bucket pair.
type RuleSet struct {
	rules map[bucketKey]Rule
}

func NewRuleSet(rules []Rule) (RuleSet, error) {
	m := make(map[bucketKey]Rule, len(rules))
	for _, r := range rules {
		if !r.active {
			continue
		}
		k := bucketKey{day: r.dayBucket, tb: r.timeBucket}
		if _, exists := m[k]; exists {
			return RuleSet{}, ErrDuplicateRule
		}
		m[k] = r
	}
	return RuleSet{rules: m}, nil
}

// Resolve never falls back to a default rate: a missing pair is an operator
// configuration error and must surface as one.
func (s RuleSet) Resolve(day DayBucket, tb TimeBucket) (Rule, error) {
	r, ok := s.rules[bucketKey{day: day, tb: tb}]
	if !ok {
		return Rule{}, ErrRuleNotConfigured
	}
	return r, nil
}

func (s RuleSet) Len() int {
	return len(s.rules)
}
