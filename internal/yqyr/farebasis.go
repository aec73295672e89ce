package yqyr

import (
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// fareBasisCacheSize is the number of direct-mapped cache slots. Must be a power of two.
const fareBasisCacheSize = 512

type fareBasisEntry struct {
	pattern   string
	candidate string
	match     bool
	valid     bool
}

// FareBasisMatcher matches filed fare-basis patterns against fare basis codes and
// memoizes the answers in a small direct-mapped cache. A colliding pair evicts the
// previous occupant of its slot.
type FareBasisMatcher struct {
	mu     sync.Mutex
	slots  [fareBasisCacheSize]fareBasisEntry
	hits   uint64
	misses uint64
}

// NewFareBasisMatcher creates an empty matcher.
func NewFareBasisMatcher() *FareBasisMatcher {
	return &FareBasisMatcher{}
}

// Match reports whether candidate satisfies pattern, consulting the cache first.
func (m *FareBasisMatcher) Match(pattern, candidate string) bool {
	if pattern == "" {
		return true
	}

	idx := xxhash.Sum64String(pattern+"|"+candidate) & (fareBasisCacheSize - 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	slot := &m.slots[idx]
	if slot.valid && slot.pattern == pattern && slot.candidate == candidate {
		m.hits++
		fareBasisCacheTotal.WithLabelValues("hit").Inc()
		return slot.match
	}

	m.misses++
	fareBasisCacheTotal.WithLabelValues("miss").Inc()
	match := MatchFareBasis(pattern, candidate)
	*slot = fareBasisEntry{pattern: pattern, candidate: candidate, match: match, valid: true}
	return match
}

// Hits returns the number of cache hits so far.
func (m *FareBasisMatcher) Hits() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Misses returns the number of cache misses so far.
func (m *FareBasisMatcher) Misses() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.misses
}

// MatchRange compares pattern with the candidate fare bases of every segment in
// [first, last]. A segment without candidates is undecided and counts as SOME.
func (m *FareBasisMatcher) MatchRange(pattern string, fareBasisBySeg [][]string, first, last int) FareBasisMatch {
	if pattern == "" {
		return FareBasisAll
	}

	result := FareBasisAll
	for idx := first; idx <= last; idx++ {
		if idx < 0 || idx >= len(fareBasisBySeg) {
			return FareBasisNone
		}

		candidates := fareBasisBySeg[idx]
		if len(candidates) == 0 {
			result = min(result, FareBasisSome)
			continue
		}

		matched := 0
		for _, fb := range candidates {
			if m.Match(pattern, fb) {
				matched++
			}
		}

		switch {
		case matched == 0:
			return FareBasisNone
		case matched < len(candidates):
			result = min(result, FareBasisSome)
		}
	}
	return result
}

// MatchFareBasis reports whether candidate satisfies the filed pattern.
//
// Pattern and candidate are split on "/" into the fare basis and up to two ticket
// designators; both must have the same number of parts. A part of "*" matches any
// value, and "-" inside a part matches any run of characters. Unless the pattern
// starts with "-" the first characters must agree.
func MatchFareBasis(pattern, candidate string) bool {
	if pattern == "" {
		return true
	}
	if candidate == "" {
		return false
	}
	if pattern[0] != '-' && pattern[0] != '*' && pattern[0] != candidate[0] {
		return false
	}

	patternParts := strings.Split(pattern, "/")
	candidateParts := strings.Split(candidate, "/")
	if len(patternParts) != len(candidateParts) {
		return false
	}

	for i, part := range patternParts {
		if part == "*" {
			continue
		}
		if !matchPart(part, candidateParts[i]) {
			return false
		}
	}
	return true
}

// matchPart is a glob match with '-' as the any-run wildcard.
func matchPart(pattern, value string) bool {
	p, v := 0, 0
	star, mark := -1, 0
	for v < len(value) {
		switch {
		case p < len(pattern) && pattern[p] == '-':
			star, mark = p, v
			p++
		case p < len(pattern) && pattern[p] == value[v]:
			p++
			v++
		case star >= 0:
			p = star + 1
			mark++
			v = mark
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '-' {
		p++
	}
	return p == len(pattern)
}

// hasDesignator reports whether any fare basis carries a ticket designator, and
// whether any fare basis is known at all.
func hasDesignator(fareBasisBySeg [][]string) (designator, known bool) {
	for _, candidates := range fareBasisBySeg {
		for _, fb := range candidates {
			known = true
			if strings.Contains(fb, "/") {
				return true, true
			}
		}
	}
	return false, known
}
