package yqyr

import (
	"slices"
	"strings"
	"time"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/timeutil"
)

// Validation selects optional fee checks a caller may skip.
type Validation uint8

const (
	ValidatePOS Validation = 1 << iota
	ValidatePOT
	ValidateAgency
	ValidateTicketingDate
	ValidateJourney
	ValidatePTC
	ValidateReturnToOrigin
)

func (v Validation) has(flag Validation) bool {
	return v&flag != 0
}

type zoneKey struct {
	vendor, zone string
}

// refData holds the reference tables preloaded for the carriers being processed.
type refData struct {
	t186  map[int][]domain.CarrierFlightEntry
	t190  map[int][]domain.CarrierApplEntry
	zones map[zoneKey][]domain.LocKey
}

func newRefData() *refData {
	return &refData{
		t186:  make(map[int][]domain.CarrierFlightEntry),
		t190:  make(map[int][]domain.CarrierApplEntry),
		zones: make(map[zoneKey][]domain.LocKey),
	}
}

// matcher scores fee records against segment ranges of one itinerary. It holds no
// mutable state besides the fare-basis cache.
type matcher struct {
	it            *domain.Itinerary
	geometry      Geometry
	paxType       string
	ticketingDate time.Time
	skip          Validation

	// fareBasis holds the candidate fare bases per segment
	fareBasis      [][]string
	designators    bool
	fareBasisKnown bool

	// bookingCodes holds the effective booking code per segment
	bookingCodes []string
	softpassRBD  bool

	ref *refData
	fb  *FareBasisMatcher
}

// shouldSoftpassRBD reports whether booking codes are not final yet.
func shouldSoftpassRBD(flags domain.RequestFlags) bool {
	return flags.LowFareRequested ||
		flags.NoPNRPricing ||
		(flags.RexNewItinerary && !flags.NoAvailability)
}

// match scores fee against [first, last]. Sector records only look at first. The
// reason is empty unless the record failed.
func (m *matcher) match(fee *domain.FeeRecord, valCxr string, first, last int) (MatchResult, string) {
	if fee.FareBasis != "" && strings.Contains(fee.FareBasis, "/") && m.fareBasisKnown && !m.designators {
		return Never, "no ticket designator in itinerary"
	}
	if reason := m.validateFee(fee, valCxr); reason != "" {
		return Never, reason
	}
	if fee.IsPortion() {
		return m.matchPortion(fee, first, last)
	}
	return m.matchSector(fee, first)
}

// validateFee runs the itinerary-invariant checks. A failure means the record can
// never apply to this itinerary for this validating carrier.
func (m *matcher) validateFee(fee *domain.FeeRecord, valCxr string) string {
	switch {
	case !m.skip.has(ValidateJourney) && !m.validateJourney(fee):
		return "journey"
	case !m.skip.has(ValidateReturnToOrigin) && !m.validateReturnToOrigin(fee):
		return "return to origin"
	case !m.skip.has(ValidatePTC) && !m.validatePaxType(fee):
		return "passenger type"
	case !m.skip.has(ValidatePOS) && !m.locMatch(fee.PosLoc, fee.Vendor, m.it.PointOfSale):
		return "point of sale"
	case !m.skip.has(ValidatePOT) && !m.locMatch(fee.PotLoc, fee.Vendor, m.pointOfTicketing()):
		return "point of ticketing"
	case !m.skip.has(ValidateAgency) && !m.validateAgency(fee):
		return "agency"
	case !fee.Interval.IsEffectiveAt(m.ticketingDate, m.it.TravelDate()):
		return "travel date"
	case !m.skip.has(ValidateTicketingDate) && !m.validateTicketingDate(fee):
		return "ticketing date"
	case !validatePercentage(fee):
		return "percentage"
	case !m.validateValidatingCarrier(fee, valCxr):
		return "validating carrier"
	}
	return ""
}

func (m *matcher) pointOfTicketing() *domain.Location {
	if m.it.PointOfTicketing != nil {
		return m.it.PointOfTicketing
	}
	return m.it.PointOfSale
}

// locMatch reports whether loc lies in key. A blank key matches anything.
func (m *matcher) locMatch(key domain.LocKey, vendor string, loc *domain.Location) bool {
	if key.IsBlank() {
		return true
	}
	if loc == nil {
		return false
	}
	if !key.IsZone() {
		return key.Contains(loc)
	}
	for _, member := range m.ref.zones[zoneKey{vendor, key.Code}] {
		if member.Contains(loc) {
			return true
		}
	}
	return false
}

func (m *matcher) validateJourney(fee *domain.FeeRecord) bool {
	loc1, loc2 := fee.JourneyLoc1, fee.JourneyLoc2
	if loc1.IsBlank() && loc2.IsBlank() {
		return true
	}

	origin := m.it.Origin()
	furthest := m.geometry.Furthest
	at := func(key domain.LocKey, loc *domain.Location) bool {
		return m.locMatch(key, fee.Vendor, loc)
	}

	switch fee.JourneyInd.Normalize() {
	case domain.DirFromTo:
		return at(loc1, origin) && at(loc2, furthest)
	case domain.DirToFrom:
		return at(loc2, origin) && at(loc1, furthest)
	}

	switch {
	case loc2.IsBlank():
		return at(loc1, origin) || at(loc1, furthest)
	case loc1.IsBlank():
		return at(loc2, origin) || at(loc2, furthest)
	default:
		return (at(loc1, origin) && at(loc2, furthest)) || (at(loc2, origin) && at(loc1, furthest))
	}
}

func (m *matcher) validateReturnToOrigin(fee *domain.FeeRecord) bool {
	switch fee.ReturnToOrigin.Normalize() {
	case domain.IndicatorYes:
		return m.geometry.ReturnsToOrigin
	case domain.IndicatorNo:
		return !m.geometry.ReturnsToOrigin
	default:
		return true
	}
}

func (m *matcher) validatePaxType(fee *domain.FeeRecord) bool {
	return fee.PsgType == "" || fee.PsgType == m.paxType
}

func (m *matcher) validateAgency(fee *domain.FeeRecord) bool {
	if fee.AgencyPCC != "" && fee.AgencyPCC != m.it.Agency.PCC {
		return false
	}
	return fee.AgencyIATA == "" || fee.AgencyIATA == m.it.Agency.IATANumber
}

func (m *matcher) validateTicketingDate(fee *domain.FeeRecord) bool {
	tkt := timeutil.DateOnly(m.ticketingDate)
	if !fee.FirstTktDate.IsZero() && tkt.Before(timeutil.DateOnly(fee.FirstTktDate)) {
		return false
	}
	return fee.LastTktDate.IsZero() || !tkt.After(timeutil.DateOnly(fee.LastTktDate))
}

// validatePercentage rejects records whose amount fields cannot be charged: a
// negative amount, or a percentage that is out of range or filed with an amount.
func validatePercentage(fee *domain.FeeRecord) bool {
	if fee.Amount.IsNegative() || fee.Percent.IsNegative() {
		return false
	}
	if !fee.IsPercentage() {
		return true
	}
	return fee.Amount.IsZero() && fee.Percent.LessThanOrEqual(hundred)
}

func (m *matcher) validateValidatingCarrier(fee *domain.FeeRecord, valCxr string) bool {
	if fee.ValCxrTblItemNo == 0 {
		return true
	}
	return validateT190(m.ref.t190[fee.ValCxrTblItemNo], valCxr)
}

// validateT190 scans the table 190 rows for carrier. Missing rows never match.
func validateT190(rows []domain.CarrierApplEntry, carrier string) bool {
	for _, row := range rows {
		if row.Carrier == domain.DollarCarrier {
			return true
		}
		if row.Carrier == carrier {
			return row.ApplInd.Normalize() != domain.IndicatorX
		}
	}
	return false
}

// endpoints reports whether the origin side of the filed locations matches and
// whether both sides match, honoring the directionality indicator.
func (m *matcher) endpoints(fee *domain.FeeRecord, origin, dest *domain.Location) (originOK, bothOK bool) {
	loc1, loc2 := fee.SectorPortionLoc1, fee.SectorPortionLoc2
	fwdOrigin := m.locMatch(loc1, fee.Vendor, origin)
	fwdDest := m.locMatch(loc2, fee.Vendor, dest)
	revOrigin := m.locMatch(loc2, fee.Vendor, origin)
	revDest := m.locMatch(loc1, fee.Vendor, dest)

	switch fee.DirectionalityInd.Normalize() {
	case domain.DirFromTo:
		return fwdOrigin, fwdOrigin && fwdDest
	case domain.DirToFrom:
		return revOrigin, revOrigin && revDest
	default:
		return fwdOrigin || revOrigin, (fwdOrigin && fwdDest) || (revOrigin && revDest)
	}
}

// checkSegment runs the per-segment checks and returns the failed check, if any.
func (m *matcher) checkSegment(fee *domain.FeeRecord, idx int) string {
	seg := m.it.Segments[idx]
	if !seg.IsAir() {
		return "surface segment"
	}
	if seg.MarketingCarrier != fee.Carrier {
		return "carrier"
	}
	if fee.Equipment != "" && fee.Equipment != seg.Equipment {
		return "equipment"
	}
	switch fee.IntlDomInd.Normalize() {
	case domain.IntlDomInternational:
		if !seg.IsInternational() {
			return "international"
		}
	case domain.IntlDomDomestic:
		if seg.IsInternational() {
			return "domestic"
		}
	}
	if !fee.WhollyWithinLoc.IsBlank() &&
		!(m.locMatch(fee.WhollyWithinLoc, fee.Vendor, seg.Origin) &&
			m.locMatch(fee.WhollyWithinLoc, fee.Vendor, seg.Destination)) {
		return "within"
	}
	if fee.CarrierFltTblItemNo != 0 && !m.validateT186(fee.CarrierFltTblItemNo, seg) {
		return "carrier flight table"
	}
	return ""
}

// validateT186 matches the segment against the table 186 rows. Missing rows never match.
func (m *matcher) validateT186(itemNo int, seg *domain.TravelSegment) bool {
	for _, row := range m.ref.t186[itemNo] {
		if row.MatchesFlight(seg) {
			return true
		}
	}
	return false
}

// isStopover classifies the point after segment idx for fee.
func (m *matcher) isStopover(fee *domain.FeeRecord, idx int) bool {
	segs := m.it.Segments
	if idx >= len(segs)-1 {
		return true
	}
	seg, next := segs[idx], segs[idx+1]
	if seg.ForcedStopover || seg.ForcedConnection || !fee.HasStopConnectTime() {
		return m.geometry.IsStopover(idx)
	}
	if seg.Arrival.IsZero() || next.Departure.IsZero() {
		return m.geometry.IsStopover(idx)
	}

	if fee.StopConnectUnit.Normalize() == domain.UnitDays && fee.StopConnectTime == 0 {
		return timeutil.DateOnly(next.Departure).After(timeutil.DateOnly(seg.Arrival))
	}
	return next.Departure.Sub(seg.Arrival) > stopConnectThreshold(fee.StopConnectUnit, fee.StopConnectTime)
}

// stopConnectThreshold converts a filed unit and time into a duration. Unknown
// units count as days.
func stopConnectThreshold(unit domain.Indicator, value int) time.Duration {
	switch unit.Normalize() {
	case domain.UnitMinutes:
		return time.Duration(value) * time.Minute
	case domain.UnitHours:
		return time.Duration(value) * time.Hour
	case domain.UnitMonths:
		return time.Duration(value) * 30 * 24 * time.Hour
	default:
		return time.Duration(value) * 24 * time.Hour
	}
}

// checkStopConnect reports whether the point after idx satisfies the record's
// stopover/connection indicator.
func (m *matcher) checkStopConnect(fee *domain.FeeRecord, idx int) bool {
	switch fee.StopConnectInd.Normalize() {
	case domain.StopConnectStopover:
		return m.isStopover(fee, idx)
	case domain.StopConnectConnection:
		return !m.isStopover(fee, idx)
	default:
		return true
	}
}

// matchBookingCode checks the effective booking code of every segment in range.
func (m *matcher) matchBookingCode(fee *domain.FeeRecord, first, last int, portion bool) MatchResult {
	codes := fee.BookingCodes()
	if len(codes) == 0 {
		return Unconditionally
	}
	if m.softpassRBD {
		return conditionally(portion)
	}
	for idx := first; idx <= last; idx++ {
		if idx >= len(m.bookingCodes) || !slices.Contains(codes, m.bookingCodes[idx]) {
			return failed(portion)
		}
	}
	return Unconditionally
}

func (m *matcher) matchSector(fee *domain.FeeRecord, idx int) (MatchResult, string) {
	if idx < 0 || idx >= len(m.it.Segments) {
		return SFailed, "segment index"
	}
	seg := m.it.Segments[idx]

	if reason := m.checkSegment(fee, idx); reason != "" {
		return SFailed, reason
	}
	if _, ok := m.endpoints(fee, seg.Origin, seg.Destination); !ok {
		return SFailed, "sector location"
	}
	if !m.checkStopConnect(fee, idx) {
		return SFailed, "stopover/connection"
	}

	rbd := m.matchBookingCode(fee, idx, idx, false)
	if !rbd.IsMatch() {
		return rbd, "booking code"
	}
	fb := m.fb.MatchRange(fee.FareBasis, m.fareBasis, idx, idx).result(false)
	if !fb.IsMatch() {
		return fb, "fare basis"
	}
	return minResult(rbd, fb), ""
}

func (m *matcher) matchPortion(fee *domain.FeeRecord, first, last int) (MatchResult, string) {
	segs := m.it.Segments
	if first < 0 || last >= len(segs) || first > last {
		return PFailedNoChance, "segment index"
	}

	originOK, bothOK := m.endpoints(fee, segs[first].Origin, segs[last].Destination)
	if !originOK {
		return PFailedNoChance, "portion origin"
	}

	for idx := first; idx <= last; idx++ {
		if reason := m.checkSegment(fee, idx); reason != "" {
			if idx == first {
				return PFailedNoChance, reason
			}
			return PFailed, reason
		}
	}

	if !bothOK {
		return PFailed, "portion destination"
	}

	var viaPoints []int
	if !fee.ViaLoc.IsBlank() {
		for idx := first; idx < last; idx++ {
			if idx == m.geometry.Turnaround {
				continue
			}
			if m.locMatch(fee.ViaLoc, fee.Vendor, segs[idx].Destination) {
				viaPoints = append(viaPoints, idx)
			}
		}
		if len(viaPoints) == 0 {
			return PFailed, "via"
		}
	}

	if !fee.StopConnectInd.IsBlank() {
		if len(viaPoints) > 0 {
			if !slices.ContainsFunc(viaPoints, func(idx int) bool { return m.checkStopConnect(fee, idx) }) {
				return PFailed, "stopover/connection"
			}
		} else {
			for idx := first; idx < last; idx++ {
				if !m.checkStopConnect(fee, idx) {
					return PFailed, "stopover/connection"
				}
			}
		}
	}

	rbd := m.matchBookingCode(fee, first, last, true)
	if !rbd.IsMatch() {
		return rbd, "booking code"
	}
	fb := m.fb.MatchRange(fee.FareBasis, m.fareBasis, first, last).result(true)
	if !fb.IsMatch() {
		return fb, "fare basis"
	}
	return minResult(rbd, fb), ""
}
