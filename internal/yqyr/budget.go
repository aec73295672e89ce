package yqyr

import (
	"fmt"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// budget bounds the number of paths a calculator may create.
type budget struct {
	remaining int
	unlimited bool

	governor      domain.MemoryGovernor
	checkInterval int
	sinceCheck    int
	created       int
}

func newBudget(maxApplications, checkInterval int, governor domain.MemoryGovernor) *budget {
	return &budget{
		remaining:     maxApplications,
		unlimited:     maxApplications <= 0,
		governor:      governor,
		checkInterval: checkInterval,
	}
}

// consume charges n new paths against the budget before they are allocated.
func (b *budget) consume(n int) error {
	b.created += n

	if !b.unlimited {
		b.remaining -= n
		if b.remaining < 0 {
			return fmt.Errorf("%w: path budget exhausted after %d paths", domain.ErrMemoryOverused, b.created)
		}
	}

	if b.governor == nil || b.checkInterval <= 0 {
		return nil
	}
	b.sinceCheck += n
	if b.sinceCheck < b.checkInterval {
		return nil
	}
	b.sinceCheck = 0
	if b.governor.Exhausted() {
		return fmt.Errorf("%w: transaction memory exhausted after %d paths", domain.ErrMemoryOverused, b.created)
	}
	return nil
}
