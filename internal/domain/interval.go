package domain

import "time"

// DateInterval is the create/effective/expire/discontinue window of a filed record.
// A zero ExpireDate or DiscDate means the record is open-ended on that side.
type DateInterval struct {
	CreateDate time.Time `json:"createDate"`
	EffDate    time.Time `json:"effDate"`
	ExpireDate time.Time `json:"expireDate"`
	DiscDate   time.Time `json:"discDate"`
}

// openEnd stands in for a blank expire/discontinue date.
var openEnd = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

func endOrOpen(t time.Time) time.Time {
	if t.IsZero() {
		return openEnd
	}
	return t
}

func earlier(a, b time.Time) time.Time {
	if endOrOpen(a).Before(endOrOpen(b)) {
		return a
	}
	return b
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LastEffective returns the earlier of the expire and discontinue dates.
func (d DateInterval) LastEffective() time.Time {
	return endOrOpen(earlier(d.ExpireDate, d.DiscDate))
}

// IsEffective reports whether date falls inside [EffDate, min(ExpireDate, DiscDate)].
// Only the calendar date is compared.
func (d DateInterval) IsEffective(date time.Time) bool {
	day := dateOnly(date)
	if day.Before(dateOnly(d.EffDate)) {
		return false
	}
	return !day.After(dateOnly(d.LastEffective()))
}

// IsEffectiveAt is the historical form: the record must have been created and not
// yet discontinued on the ticketing date, and be in effect on the travel date.
func (d DateInterval) IsEffectiveAt(ticketingDate, travelDate time.Time) bool {
	tkt := dateOnly(ticketingDate)
	if tkt.Before(dateOnly(d.CreateDate)) {
		return false
	}
	if tkt.After(dateOnly(endOrOpen(d.DiscDate))) {
		return false
	}
	travel := dateOnly(travelDate)
	if travel.Before(dateOnly(d.EffDate)) {
		return false
	}
	return !travel.After(dateOnly(endOrOpen(d.ExpireDate)))
}

// within reports whether t lies in [from, to] after truncation.
func within(t, from, to time.Time, trunc func(time.Time) time.Time) bool {
	t, from, to = trunc(t), trunc(from), trunc(to)
	return !t.Before(from) && !t.After(to)
}

func identity(t time.Time) time.Time { return t }

func defineIntersection(a, b DateInterval, trunc func(time.Time) time.Time) (DateInterval, bool) {
	var result DateInterval
	switch {
	case within(a.EffDate, b.EffDate, b.LastEffective(), trunc):
		result.EffDate = a.EffDate
	case within(b.EffDate, a.EffDate, a.LastEffective(), trunc):
		result.EffDate = b.EffDate
	default:
		return DateInterval{}, false
	}
	result.CreateDate = later(a.CreateDate, b.CreateDate)
	result.ExpireDate = earlier(a.ExpireDate, b.ExpireDate)
	result.DiscDate = earlier(a.DiscDate, b.DiscDate)
	return result, true
}

// DefineIntersection returns the intersection of two intervals. It reports false
// when the effective windows do not overlap.
func DefineIntersection(a, b DateInterval) (DateInterval, bool) {
	return defineIntersection(a, b, identity)
}

// DefineIntersectionH is DefineIntersection comparing calendar dates only, used for
// historical create/expire boundaries.
func DefineIntersectionH(a, b DateInterval) (DateInterval, bool) {
	return defineIntersection(a, b, dateOnly)
}

// DefineUnion returns the smallest interval covering both a and b. It reports false
// when the effective windows do not overlap.
func DefineUnion(a, b DateInterval) (DateInterval, bool) {
	if _, ok := DefineIntersection(a, b); !ok {
		return DateInterval{}, false
	}
	result := DateInterval{
		CreateDate: a.CreateDate,
		EffDate:    a.EffDate,
		ExpireDate: a.ExpireDate,
		DiscDate:   a.DiscDate,
	}
	if b.CreateDate.Before(result.CreateDate) {
		result.CreateDate = b.CreateDate
	}
	if b.EffDate.Before(result.EffDate) {
		result.EffDate = b.EffDate
	}
	if a.ExpireDate.IsZero() || b.ExpireDate.IsZero() {
		result.ExpireDate = time.Time{}
	} else {
		result.ExpireDate = later(a.ExpireDate, b.ExpireDate)
	}
	if a.DiscDate.IsZero() || b.DiscDate.IsZero() {
		result.DiscDate = time.Time{}
	} else {
		result.DiscDate = later(a.DiscDate, b.DiscDate)
	}
	return result, true
}
