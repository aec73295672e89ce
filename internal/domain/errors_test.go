package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataError(t *testing.T) {
	tests := []struct {
		name          string
		lookup        string
		underlyingErr error
		transient     bool
		wantContains  []string
	}{
		{
			name:          "permanent lookup failure",
			lookup:        "fees LH",
			underlyingErr: errors.New("relation does not exist"),
			transient:     false,
			wantContains:  []string{"fees LH", "relation does not exist", "unavailable"},
		},
		{
			name:          "transient lookup failure",
			lookup:        "t190 1234",
			underlyingErr: errors.New("connection reset"),
			transient:     true,
			wantContains:  []string{"t190 1234", "connection reset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err *DataError
			if tt.transient {
				err = NewTransientDataError(tt.lookup, tt.underlyingErr)
			} else {
				err = NewDataError(tt.lookup, tt.underlyingErr)
			}

			for _, want := range tt.wantContains {
				assert.Contains(t, err.Error(), want)
			}
			assert.ErrorIs(t, err, tt.underlyingErr)
			assert.ErrorIs(t, err, ErrDataUnavailable)
			assert.Equal(t, tt.transient, IsTransient(err))

			wrapped := fmt.Errorf("load filings: %w", err)
			assert.Equal(t, tt.transient, IsTransient(wrapped))
		})
	}
}

func TestIsTransient_PlainError(t *testing.T) {
	assert.False(t, IsTransient(errors.New("boom")))
	assert.False(t, IsTransient(nil))
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidRequest,
		ErrMemoryOverused,
		ErrUnknownFeeApplIndicator,
		ErrDataUnavailable,
		ErrCurrencyConversion,
		ErrNotProcessed,
		ErrUnknownValidatingCarrier,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
