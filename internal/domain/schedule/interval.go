package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrInvalidClock      = errors.New("invalid clock time, expected HH:MM")
	ErrTooShort          = errors.New("booking must be at least 60 minutes")
	ErrNotOnBoundary     = errors.New("booking duration must be a multiple of 30 minutes")
	ErrOutsideHours      = errors.New("start time is outside operating hours")
	ErrZeroDuration      = errors.New("start and end time must differ")
	ErrDateInPast        = errors.New("booking date cannot be in the past")
	ErrInvalidWindowSpan = errors.New("operating window must close after midnight or before opening")
)

const minutesPerDay = 1440

var clockRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Minute is an offset in minutes since local midnight, 0-1439.
type Minute int

// ParseClock converts an HH:MM wire string into a Minute exactly once at the
// boundary; everything downstream operates on the offset.
func ParseClock(s string) (Minute, error) {
	if !clockRegex.MatchString(s) {
		return 0, ErrInvalidClock
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, ErrInvalidClock
	}
	return Minute(h*60 + m), nil
}

func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

func (m Minute) Valid() bool {
	return m >= 0 && m < minutesPerDay
}

// Window is the venue operating window. Close <= Open means the venue stays
// open past midnight (e.g. 09:00-04:00).
type Window struct {
	Open  Minute
	Close Minute
}

func DefaultWindow() Window {
	return Window{Open: 9 * 60, Close: 4 * 60}
}

func NewWindow(open, close string) (Window, error) {
	o, err := ParseClock(open)
	if err != nil {
		return Window{}, err
	}
	c, err := ParseClock(close)
	if err != nil {
		return Window{}, err
	}
	if o == c {
		return Window{}, ErrInvalidWindowSpan
	}
	return Window{Open: o, Close: c}, nil
}

// Contains reports whether a start minute falls inside the window.
func (w Window) Contains(m Minute) bool {
	if w.Open < w.Close {
		return m >= w.Open && m < w.Close
	}
	return m >= w.Open || m < w.Close
}

// Interval is a booked span on a single nominal calendar date. End <= Start
// means the span crosses midnight into the next real day.
type Interval struct {
	date  time.Time
	start Minute
	end   Minute
}

func NewInterval(date time.Time, start, end Minute, win Window) (Interval, error) {
	if !start.Valid() || !end.Valid() {
		return Interval{}, ErrInvalidClock
	}
	if start == end {
		return Interval{}, ErrZeroDuration
	}

	iv := Interval{date: normalizeDate(date), start: start, end: end}

	if iv.DurationMinutes() < 60 {
		return Interval{}, ErrTooShort
	}
	if iv.DurationMinutes()%30 != 0 {
		return Interval{}, ErrNotOnBoundary
	}
	if !win.Contains(start) {
		return Interval{}, ErrOutsideHours
	}
	return iv, nil
}

// ReconstructInterval rebuilds a stored interval without re-validating; the
// store only holds values that passed NewInterval.
func ReconstructInterval(date time.Time, start, end Minute) Interval {
	return Interval{date: normalizeDate(date), start: start, end: end}
}

func (iv Interval) Date() time.Time { return iv.date }
func (iv Interval) Start() Minute   { return iv.start }
func (iv Interval) End() Minute     { return iv.end }

func (iv Interval) CrossesMidnight() bool {
	return iv.end <= iv.start
}

func (iv Interval) DurationMinutes() int {
	if iv.CrossesMidnight() {
		return int(iv.end) + minutesPerDay - int(iv.start)
	}
	return int(iv.end) - int(iv.start)
}

// InPast reports whether the nominal date falls before the day containing
// now. Same-day bookings are allowed; the nominal date stays valid even when
// the span finishes after midnight.
func (iv Interval) InPast(now time.Time) bool {
	return iv.date.Before(normalizeDate(now))
}

// Key returns the normalized slot key used to address batch availability
// results, e.g. "23:00-02:00".
func (iv Interval) Key() string {
	return iv.start.String() + "-" + iv.end.String()
}

func (iv Interval) String() string {
	return iv.date.Format("2006-01-02") + " " + iv.Key()
}

// Overlaps reports whether two intervals on the same nominal date intersect.
// Callers pre-filter by date. A midnight-crossing interval occupies two
// ranges on the 0-1439 circle: [start,1440) and [0,end).
func Overlaps(a, b Interval) bool {
	aCross, bCross := a.CrossesMidnight(), b.CrossesMidnight()

	switch {
	case !aCross && !bCross:
		return rangesOverlap(int(a.start), int(a.end), int(b.start), int(b.end))
	case aCross && bCross:
		// Both touch the midnight boundary, so they always share it.
		return true
	case aCross:
		return rangesOverlap(int(b.start), int(b.end), int(a.start), minutesPerDay) ||
			rangesOverlap(int(b.start), int(b.end), 0, int(a.end))
	default:
		return Overlaps(b, a)
	}
}

func rangesOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
