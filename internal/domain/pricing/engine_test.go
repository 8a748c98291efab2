//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"court-reserve/internal/domain/pricing"
	"court-reserve/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-12 is a Thursday; the following day is a Friday.
var (
	thursday = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
)

func fullRuleSet(t *testing.T, rates map[string]int64) pricing.RuleSet {
	t.Helper()
	var rules []pricing.Rule
	for _, day := range []pricing.DayBucket{pricing.DaySunWed, pricing.DayThu, pricing.DayFri, pricing.DaySat} {
		for _, tb := range []pricing.TimeBucket{pricing.TimeDay, pricing.TimeNight} {
			rate := int64(10000)
			if r, ok := rates[string(day)+"_"+string(tb)]; ok {
				rate = r
			}
			rule, err := pricing.NewRule(uuid.New(), day, tb, rate, true)
			require.NoError(t, err)
			rules = append(rules, rule)
		}
	}
	set, err := pricing.NewRuleSet(rules)
	require.NoError(t, err)
	return set
}

func clock(t *testing.T, s string) schedule.Minute {
	t.Helper()
	m, err := schedule.ParseClock(s)
	require.NoError(t, err)
	return m
}

func TestDayBucketOf(t *testing.T) {
	assert.Equal(t, pricing.DayThu, pricing.DayBucketOf(thursday))
	assert.Equal(t, pricing.DayFri, pricing.DayBucketOf(thursday.AddDate(0, 0, 1)))
	assert.Equal(t, pricing.DaySat, pricing.DayBucketOf(thursday.AddDate(0, 0, 2)))
	assert.Equal(t, pricing.DaySunWed, pricing.DayBucketOf(sunday))
	assert.Equal(t, pricing.DaySunWed, pricing.DayBucketOf(sunday.AddDate(0, 0, 3))) // Wednesday
}

func TestTimeBucketOf(t *testing.T) {
	cases := []struct {
		clock string
		want  pricing.TimeBucket
	}{
		{"09:00", pricing.TimeDay},
		{"18:59", pricing.TimeDay},
		{"19:00", pricing.TimeNight},
		{"23:59", pricing.TimeNight},
		{"00:00", pricing.TimeNight},
		{"08:59", pricing.TimeNight},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pricing.TimeBucketOf(clock(t, tc.clock)), tc.clock)
	}
}

func TestPriceSimpleDaytime(t *testing.T) {
	set := fullRuleSet(t, map[string]int64{"thu_day": 9000})
	engine := pricing.NewEngine()

	quote, err := engine.Price(set, thursday, clock(t, "09:00"), clock(t, "11:00"))
	require.NoError(t, err)

	require.Len(t, quote.Segments, 2)
	assert.Equal(t, int64(18000), quote.Total)
	for _, seg := range quote.Segments {
		assert.Equal(t, pricing.DayThu, seg.DayBucket)
		assert.Equal(t, pricing.TimeDay, seg.TimeBucket)
		assert.Equal(t, int64(9000), seg.Amount)
		assert.Equal(t, 60, seg.Minutes)
	}
	assert.Equal(t, "09:00-10:00", quote.Segments[0].Label)
	assert.Equal(t, "10:00-11:00", quote.Segments[1].Label)
}

func TestPricePartialFinalSegment(t *testing.T) {
	set := fullRuleSet(t, map[string]int64{"thu_day": 9000})
	engine := pricing.NewEngine()

	quote, err := engine.Price(set, thursday, clock(t, "09:00"), clock(t, "10:30"))
	require.NoError(t, err)

	require.Len(t, quote.Segments, 2)
	assert.Equal(t, 60, quote.Segments[0].Minutes)
	assert.Equal(t, 30, quote.Segments[1].Minutes)
	assert.Equal(t, int64(4500), quote.Segments[1].Amount)
	assert.Equal(t, int64(13500), quote.Total)
}

func TestPriceDayNightBoundary(t *testing.T) {
	set := fullRuleSet(t, map[string]int64{"thu_day": 8000, "thu_night": 12000})
	engine := pricing.NewEngine()

	quote, err := engine.Price(set, thursday, clock(t, "18:00"), clock(t, "20:00"))
	require.NoError(t, err)

	require.Len(t, quote.Segments, 2)
	assert.Equal(t, pricing.TimeDay, quote.Segments[0].TimeBucket)
	assert.Equal(t, pricing.TimeNight, quote.Segments[1].TimeBucket)
	assert.Equal(t, int64(8000+12000), quote.Total)
}

// Segments priced after midnight take the next real day's bucket: Thursday
// night rolls into Friday pricing.
func TestPriceMidnightCrossing(t *testing.T) {
	set := fullRuleSet(t, map[string]int64{"thu_night": 10000, "fri_night": 15000})
	engine := pricing.NewEngine()

	quote, err := engine.Price(set, thursday, clock(t, "23:00"), clock(t, "02:00"))
	require.NoError(t, err)

	require.Len(t, quote.Segments, 3)
	assert.Equal(t, pricing.DayThu, quote.Segments[0].DayBucket) // 23:00-24:00
	assert.Equal(t, pricing.DayFri, quote.Segments[1].DayBucket) // 00:00-01:00
	assert.Equal(t, pricing.DayFri, quote.Segments[2].DayBucket) // 01:00-02:00
	assert.Equal(t, int64(10000+15000+15000), quote.Total)
}

// A slot that starts in the early-morning tail keeps the nominal date the
// customer picked; nothing is shifted backwards.
func TestPriceEarlyMorningKeepsNominalDate(t *testing.T) {
	set := fullRuleSet(t, map[string]int64{"thu_night": 11000})
	engine := pricing.NewEngine()

	quote, err := engine.Price(set, thursday, clock(t, "01:00"), clock(t, "03:00"))
	require.NoError(t, err)

	require.Len(t, quote.Segments, 2)
	for _, seg := range quote.Segments {
		assert.Equal(t, pricing.DayThu, seg.DayBucket)
		assert.Equal(t, pricing.TimeNight, seg.TimeBucket)
	}
	assert.Equal(t, int64(22000), quote.Total)
}

func TestPriceTotalsEqualSegmentSum(t *testing.T) {
	set := fullRuleSet(t, map[string]int64{"thu_day": 7000, "thu_night": 9000, "fri_night": 14000})
	engine := pricing.NewEngine()

	slots := [][2]string{
		{"09:00", "12:00"},
		{"18:30", "21:00"},
		{"23:30", "02:30"},
	}
	for _, slot := range slots {
		quote, err := engine.Price(set, thursday, clock(t, slot[0]), clock(t, slot[1]))
		require.NoError(t, err)

		var sum int64
		var minutes int
		for _, seg := range quote.Segments {
			sum += seg.Amount
			minutes += seg.Minutes
		}
		assert.Equal(t, quote.Total, sum)

		iv := mustTestInterval(t, slot[0], slot[1])
		assert.Equal(t, iv.DurationMinutes(), minutes)
	}
}

// Pricing is additive: quoting [start,mid) and [mid,end) separately must
// produce the same segments and total as the whole slot. A piece past
// midnight belongs to the next real day and is quoted against that date.
func TestPriceSplitAdditivity(t *testing.T) {
	set := fullRuleSet(t, map[string]int64{"thu_day": 7000, "thu_night": 9000, "fri_night": 14000})
	engine := pricing.NewEngine()
	friday := thursday.AddDate(0, 0, 1)

	cases := []struct {
		name            string
		start, mid, end string
		tailDate        time.Time
	}{
		{name: "within daytime", start: "09:00", mid: "10:00", end: "12:00", tailDate: thursday},
		{name: "across the day night boundary", start: "18:00", mid: "19:00", end: "21:00", tailDate: thursday},
		{name: "split exactly at midnight", start: "23:00", mid: "00:00", end: "02:00", tailDate: friday},
		{name: "split after midnight", start: "23:00", mid: "01:00", end: "02:00", tailDate: friday},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			whole, err := engine.Price(set, thursday, clock(t, tc.start), clock(t, tc.end))
			require.NoError(t, err)
			head, err := engine.Price(set, thursday, clock(t, tc.start), clock(t, tc.mid))
			require.NoError(t, err)
			tail, err := engine.Price(set, tc.tailDate, clock(t, tc.mid), clock(t, tc.end))
			require.NoError(t, err)

			assert.Equal(t, whole.Total, head.Total+tail.Total)
			recombined := append(append([]pricing.Segment{}, head.Segments...), tail.Segments...)
			assert.Equal(t, whole.Segments, recombined)
		})
	}
}

func TestPriceMissingRuleFails(t *testing.T) {
	rule, err := pricing.NewRule(uuid.New(), pricing.DayThu, pricing.TimeDay, 9000, true)
	require.NoError(t, err)
	set, err := pricing.NewRuleSet([]pricing.Rule{rule})
	require.NoError(t, err)

	engine := pricing.NewEngine()
	_, err = engine.Price(set, thursday, clock(t, "18:00"), clock(t, "20:00"))
	assert.ErrorIs(t, err, pricing.ErrRuleNotConfigured)
}

func TestNewRuleSet(t *testing.T) {
	a, err := pricing.NewRule(uuid.New(), pricing.DayThu, pricing.TimeDay, 9000, true)
	require.NoError(t, err)
	b, err := pricing.NewRule(uuid.New(), pricing.DayThu, pricing.TimeDay, 9500, true)
	require.NoError(t, err)
	inactive, err := pricing.NewRule(uuid.New(), pricing.DayThu, pricing.TimeDay, 8000, false)
	require.NoError(t, err)

	_, err = pricing.NewRuleSet([]pricing.Rule{a, b})
	assert.ErrorIs(t, err, pricing.ErrDuplicateRule)

	set, err := pricing.NewRuleSet([]pricing.Rule{a, inactive})
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	resolved, err := set.Resolve(pricing.DayThu, pricing.TimeDay)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), resolved.PricePerHour())
}

func TestNewRuleValidation(t *testing.T) {
	_, err := pricing.NewRule(uuid.New(), "weekend", pricing.TimeDay, 9000, true)
	assert.ErrorIs(t, err, pricing.ErrInvalidBucket)

	_, err = pricing.NewRule(uuid.New(), pricing.DayThu, pricing.TimeDay, -1, true)
	assert.ErrorIs(t, err, pricing.ErrNegativeRate)
}

func mustTestInterval(t *testing.T, start, end string) schedule.Interval {
	t.Helper()
	iv, err := schedule.NewInterval(thursday, clock(t, start), clock(t, end), schedule.DefaultWindow())
	require.NoError(t, err)
	return iv
}
