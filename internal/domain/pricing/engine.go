package pricing

import (
	"time"

	"court-reserve/internal/domain/schedule"
)

const minutesPerDay = 1440

// Segment is one priced slice of a booking, at most an hour long. Immutable
// once embedded in a reservation breakdown.
type Segment struct {
	Label      string
	DayBucket  DayBucket
	TimeBucket TimeBucket
	Rate       int64 // halalas per hour
	Minutes    int
	Amount     int64 // halalas
}

type Quote struct {
	Segments []Segment
	Total    int64 // halalas
}

// Engine splits an interval into hourly (final one possibly shorter)
// segments, classifies each against the rule table and sums. Pure and
// stateless, safe for any number of concurrent callers.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Price walks the interval from start in 60-minute steps. start/end are
// minute offsets against the nominal booking date; end <= start crosses
// midnight.
//
// Segments after midnight bucket by their real calendar date, which for a
// crossing booking is the day after the nominal date. A booking whose start
// already lies in the 00:00-04:00 tail keeps the nominal date the customer
// selected; no day is subtracted.
func (e *Engine) Price(rules RuleSet, nominalDate time.Time, start, end schedule.Minute) (Quote, error) {
	total := int(end) - int(start)
	if total <= 0 {
		total += minutesPerDay
	}

	var quote Quote
	for cursor := 0; cursor < total; {
		segLen := 60
		if remaining := total - cursor; remaining < segLen {
			segLen = remaining
		}

		abs := int(start) + cursor
		clockStart := schedule.Minute(abs % minutesPerDay)
		effectiveDate := nominalDate.AddDate(0, 0, abs/minutesPerDay)

		day := DayBucketOf(effectiveDate)
		tb := TimeBucketOf(clockStart)

		rule, err := rules.Resolve(day, tb)
		if err != nil {
			return Quote{}, err
		}

		amount := rule.PricePerHour() * int64(segLen) / 60
		clockEnd := schedule.Minute((abs + segLen) % minutesPerDay)
		quote.Segments = append(quote.Segments, Segment{
			Label:      clockStart.String() + "-" + clockEnd.String(),
			DayBucket:  day,
			TimeBucket: tb,
			Rate:       rule.PricePerHour(),
			Minutes:    segLen,
			Amount:     amount,
		})
		quote.Total += amount

		cursor += segLen
	}

	return quote, nil
}
