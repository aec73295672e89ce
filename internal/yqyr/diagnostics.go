package yqyr

import (
	"github.com/rs/zerolog"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// DiagnosticFilter narrows the trace to matching fee records. Zero fields match all.
type DiagnosticFilter struct {
	Carrier string
	TaxCode string
	SeqNo   int64
}

func (f DiagnosticFilter) accepts(fee *domain.FeeRecord) bool {
	if f.Carrier != "" && f.Carrier != fee.Carrier {
		return false
	}
	if f.TaxCode != "" && f.TaxCode != fee.TaxCode && f.TaxCode != fee.FeeCode() {
		return false
	}
	return f.SeqNo == 0 || f.SeqNo == fee.SeqNo
}

// Diagnostics traces why fee records passed or failed. A nil *Diagnostics is a
// valid disabled sink.
type Diagnostics struct {
	logger zerolog.Logger
	filter DiagnosticFilter
}

// NewDiagnostics creates an enabled diagnostic sink writing debug events to logger.
func NewDiagnostics(logger zerolog.Logger, filter DiagnosticFilter) *Diagnostics {
	return &Diagnostics{
		logger: logger.With().Str("component", "yqyr_diag").Logger(),
		filter: filter,
	}
}

// Record traces one match attempt.
func (d *Diagnostics) Record(fee *domain.FeeRecord, first, last int, result MatchResult, reason string) {
	if d == nil || !d.filter.accepts(fee) {
		return
	}
	d.logger.Debug().
		Str("carrier", fee.Carrier).
		Str("tax_code", fee.FeeCode()).
		Int64("seq", fee.SeqNo).
		Int("first", first).
		Int("last", last).
		Stringer("result", result).
		Str("reason", reason).
		Msg("fee record match")
}

// Carriers traces the concurring carriers found for a validating carrier.
func (d *Diagnostics) Carriers(valCxr string, concurring []string) {
	if d == nil {
		return
	}
	d.logger.Debug().
		Str("validating_carrier", valCxr).
		Strs("concurring", concurring).
		Msg("concurring carriers")
}

// Bucket traces the lower bound of one carrier fee code bucket.
func (d *Diagnostics) Bucket(valCxr string, b *bucket, lowerBound string) {
	if d == nil || (d.filter.Carrier != "" && d.filter.Carrier != b.carrier) {
		return
	}
	d.logger.Debug().
		Str("validating_carrier", valCxr).
		Str("carrier", b.carrier).
		Str("tax_code", b.feeCode).
		Int("slices", len(b.slices)).
		Str("lower_bound", lowerBound).
		Msg("fee code bucket")
}
