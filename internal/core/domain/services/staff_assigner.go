package services

import (
	"sync"

	"kitchen/internal/core/domain/model/batch"
	"kitchen/internal/core/domain/model/kernel"
)

// staffPerItems is how many line items one staff member works in parallel.
const staffPerItems = 3

// RotatingStaffAssigner assigns kitchen staff to batches round-robin over a
// fixed roster, so consecutive batches are spread across the whole team.
//
// The number of staff picked for a batch grows with the batch's total item
// count, one staff member per three items, never exceeding the roster size.
// An empty roster assigns nobody.
type RotatingStaffAssigner struct {
	mu     sync.Mutex
	roster []kernel.UUID
	next   int
}

// NewRotatingStaffAssigner creates an assigner over the given roster.
func NewRotatingStaffAssigner(roster []kernel.UUID) *RotatingStaffAssigner {
	return &RotatingStaffAssigner{roster: roster}
}

// Assign picks the staff for a batch.
func (r *RotatingStaffAssigner) Assign(b *batch.Batch) []kernel.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.roster) == 0 {
		return nil
	}

	items := 0
	for _, o := range b.Orders() {
		items += len(o.Items())
	}

	needed := (items + staffPerItems - 1) / staffPerItems
	if needed < 1 {
		needed = 1
	}
	if needed > len(r.roster) {
		needed = len(r.roster)
	}

	staff := make([]kernel.UUID, 0, needed)
	for range needed {
		staff = append(staff, r.roster[r.next])
		r.next = (r.next + 1) % len(r.roster)
	}

	return staff
}
