// Package yqyr computes carrier-imposed YQ/YR surcharges for an itinerary.
//
// A Calculator matches every filed fee record of the concurring carriers against
// carrier-contiguous slices of the itinerary, enumerates each non-overlapping way
// the records can cover a slice, and keeps the resulting paths per validating
// carrier. Pricing code then asks for the charge of a concrete fare path or for a
// lower bound valid across all fare paths.
package yqyr

// MatchResult is the outcome of matching one fee record against a segment range.
// Values are ordered; a smaller value is a worse outcome.
type MatchResult int

const (
	Unknown MatchResult = iota

	// Never means the record cannot apply anywhere in this itinerary
	Never

	// SFailed means a sector record does not apply at this segment
	SFailed

	// PFailedNoChance means a portion record cannot start at this segment
	PFailedNoChance

	// PFailed means a portion record does not apply to this range but may to a
	// shorter one
	PFailed

	// SConditionally and PConditionally mean some candidate fare bases matched
	SConditionally
	PConditionally

	// Unconditionally means every candidate matched
	Unconditionally
)

var matchResultNames = [...]string{
	Unknown:         "UNKNOWN",
	Never:           "NEVER",
	SFailed:         "S_FAILED",
	PFailedNoChance: "P_FAILED_NO_CHANCE",
	PFailed:         "P_FAILED",
	SConditionally:  "S_CONDITIONALLY",
	PConditionally:  "P_CONDITIONALLY",
	Unconditionally: "UNCONDITIONALLY",
}

// String returns the result name.
func (r MatchResult) String() string {
	if r < 0 || int(r) >= len(matchResultNames) {
		return "UNKNOWN"
	}
	return matchResultNames[r]
}

// IsMatch reports whether the record applies, conditionally or not.
func (r MatchResult) IsMatch() bool {
	return r >= SConditionally
}

// IsConditional reports whether the match still depends on the fare path.
func (r MatchResult) IsConditional() bool {
	return r == SConditionally || r == PConditionally
}

func minResult(a, b MatchResult) MatchResult {
	if a < b {
		return a
	}
	return b
}

func failed(portion bool) MatchResult {
	if portion {
		return PFailed
	}
	return SFailed
}

func noChance(portion bool) MatchResult {
	if portion {
		return PFailedNoChance
	}
	return SFailed
}

func conditionally(portion bool) MatchResult {
	if portion {
		return PConditionally
	}
	return SConditionally
}

// FareBasisMatch summarizes how the candidate fare bases of a range compare with a
// filed fare-basis pattern.
type FareBasisMatch int

const (
	// FareBasisNowhere means the pattern needs a ticket designator and no fare basis
	// in the itinerary carries one
	FareBasisNowhere FareBasisMatch = iota

	// FareBasisNone means no candidate matched
	FareBasisNone

	// FareBasisSome means some candidates matched
	FareBasisSome

	// FareBasisAll means every candidate matched
	FareBasisAll
)

// String returns the match name.
func (m FareBasisMatch) String() string {
	switch m {
	case FareBasisNowhere:
		return "NOWHERE"
	case FareBasisNone:
		return "NONE"
	case FareBasisSome:
		return "SOME"
	case FareBasisAll:
		return "ALL"
	default:
		return "UNKNOWN"
	}
}

// result converts the fare-basis match into a record match result.
func (m FareBasisMatch) result(portion bool) MatchResult {
	switch m {
	case FareBasisNowhere:
		return Never
	case FareBasisNone:
		return failed(portion)
	case FareBasisSome:
		return conditionally(portion)
	default:
		return Unconditionally
	}
}
