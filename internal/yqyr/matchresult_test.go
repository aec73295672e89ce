package yqyr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchResult_Order(t *testing.T) {
	ordered := []MatchResult{
		Unknown, Never, SFailed, PFailedNoChance, PFailed,
		SConditionally, PConditionally, Unconditionally,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1], ordered[i], "%s < %s", ordered[i-1], ordered[i])
	}
}

func TestMatchResult_Predicates(t *testing.T) {
	tests := []struct {
		result      MatchResult
		name        string
		match       bool
		conditional bool
	}{
		{Unknown, "UNKNOWN", false, false},
		{Never, "NEVER", false, false},
		{SFailed, "S_FAILED", false, false},
		{PFailedNoChance, "P_FAILED_NO_CHANCE", false, false},
		{PFailed, "P_FAILED", false, false},
		{SConditionally, "S_CONDITIONALLY", true, true},
		{PConditionally, "P_CONDITIONALLY", true, true},
		{Unconditionally, "UNCONDITIONALLY", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.result.String())
			assert.Equal(t, tt.match, tt.result.IsMatch())
			assert.Equal(t, tt.conditional, tt.result.IsConditional())
		})
	}

	assert.Equal(t, "UNKNOWN", MatchResult(42).String())
}

func TestMinResult(t *testing.T) {
	assert.Equal(t, SConditionally, minResult(Unconditionally, SConditionally))
	assert.Equal(t, PFailed, minResult(PFailed, PConditionally))
	assert.Equal(t, Never, minResult(Never, Never))
}

func TestFareBasisMatch_Result(t *testing.T) {
	tests := []struct {
		match   FareBasisMatch
		portion bool
		want    MatchResult
	}{
		{FareBasisNowhere, false, Never},
		{FareBasisNowhere, true, Never},
		{FareBasisNone, false, SFailed},
		{FareBasisNone, true, PFailed},
		{FareBasisSome, false, SConditionally},
		{FareBasisSome, true, PConditionally},
		{FareBasisAll, false, Unconditionally},
		{FareBasisAll, true, Unconditionally},
	}

	for _, tt := range tests {
		t.Run(tt.match.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match.result(tt.portion))
		})
	}
}
