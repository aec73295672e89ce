package yqyr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

func TestBudget_Consume(t *testing.T) {
	b := newBudget(3, 0, nil)

	require.NoError(t, b.consume(2))
	require.NoError(t, b.consume(1))

	err := b.consume(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMemoryOverused)
}

func TestBudget_Unlimited(t *testing.T) {
	b := newBudget(0, 0, nil)
	for i := 0; i < 1000; i++ {
		require.NoError(t, b.consume(1000))
	}
}

func TestBudget_Governor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	governor := domain.NewMockMemoryGovernor(ctrl)
	gomock.InOrder(
		governor.EXPECT().Exhausted().Return(false),
		governor.EXPECT().Exhausted().Return(true),
	)

	b := newBudget(0, 10, governor)

	// checked every 10 paths
	require.NoError(t, b.consume(4))
	require.NoError(t, b.consume(6))
	require.NoError(t, b.consume(9))

	err := b.consume(1)
	assert.ErrorIs(t, err, domain.ErrMemoryOverused)
}
