package batch

import (
	"errors"
	"fmt"
	"math"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"
)

const (
	// MaxOrders is the membership cap while a batch accumulates orders.
	MaxOrders = 10

	// MaxOptimizedOrders is the membership cap applied when the queue
	// optimizer regroups orders into fresh batches.
	MaxOptimizedOrders = 8

	// maxPriorityGap is the largest allowed priority weight difference
	// between an order and the batch anchor for the two to be batchable.
	maxPriorityGap = 1

	// minEfficiencyFactor caps the throughput gain from batching: a batch
	// never takes less than 80% of the summed nominal time of its members.
	minEfficiencyFactor = 0.8

	// efficiencyGainPerOrder is the fractional time reduction contributed
	// by each member beyond the first.
	efficiencyGainPerOrder = 0.1
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch instance was not created
	// through the NewBatch or NewBatchOfOrders factory methods.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch or NewBatchOfOrders constructor")
)

// Compatible reports whether two orders may share a batch: they must have
// the same fulfilment channel and priority weights differing by at most one.
func Compatible(a, b *order.Order) bool {
	if a.OrderType() != b.OrderType() {
		return false
	}

	gap := a.Priority().Weight() - b.Priority().Weight()
	if gap < 0 {
		gap = -gap
	}
	return gap <= maxPriorityGap
}

// ComputePriority derives the batch priority score from its members:
// ceil(0.7*maxWeight + 0.3*averageWeight). Higher scores are processed first.
func ComputePriority(orders []*order.Order) int {
	if len(orders) == 0 {
		return 0
	}

	maxWeight := 0
	sum := 0
	for _, o := range orders {
		w := o.Priority().Weight()
		sum += w
		if w > maxWeight {
			maxWeight = w
		}
	}
	avg := float64(sum) / float64(len(orders))

	return int(math.Ceil(0.7*float64(maxWeight) + 0.3*avg))
}

// ComputeEstimatedMinutes derives the batch processing time estimate from
// its members. Batching models throughput gains from parallel preparation:
// every member beyond the first cuts 10% off the summed nominal time, down
// to a floor of 80%. A singleton batch keeps its nominal time unchanged.
func ComputeEstimatedMinutes(orders []*order.Order) int {
	total := 0
	for _, o := range orders {
		total += o.EstimatedPrepMinutes()
	}

	factor := 1 - float64(len(orders)-1)*efficiencyGainPerOrder
	if factor < minEfficiencyFactor {
		factor = minEfficiencyFactor
	}

	return int(math.Ceil(float64(total) * factor))
}

// Batch groups compatible orders of one restaurant for joint processing.
// It is an aggregate owned by the batch scheduler.
//
// Batch follows these invariants:
//   - All members belong to the same restaurant
//   - Every member was compatible with the batch anchor (the first member)
//     at the time it joined; compatibility is anchor-based by design, not
//     pairwise across all members
//   - Membership only changes while the batch is queued
//   - Priority and estimated time are recomputed on every membership change
type Batch struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	orders       []*order.Order
	status       Status

	priority         int
	estimatedMinutes int

	startTime *time.Time
	endTime   *time.Time

	// assignedStaff is filled by the staff assignment collaborator when
	// the batch starts processing. The current assigner is a stub that
	// returns no staff.
	assignedStaff []kernel.UUID

	isConstructed bool
}

// NewBatch creates a queued singleton batch around its first order.
// The first order becomes the batch anchor: its type and priority define
// the acceptance criteria for further members.
func NewBatch(id kernel.UUID, first *order.Order) (*Batch, error) {
	return NewBatchOfOrders(id, []*order.Order{first})
}

// NewBatchOfOrders creates a queued batch from a pre-grouped set of orders,
// scoring it from the full membership. Used by the queue optimizer, which
// groups orders itself before forming batches.
func NewBatchOfOrders(id kernel.UUID, orders []*order.Order) (*Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errs.NewValueIsRequiredError("orders")
	}

	restaurantID := orders[0].RestaurantID()
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if !o.RestaurantID().IsEqual(restaurantID) {
			return nil, errs.NewValueIsInvalidErrorWithCause("orders",
				fmt.Errorf("order %s belongs to a different restaurant", o.ID()))
		}
	}

	b := &Batch{
		id:            id,
		restaurantID:  restaurantID,
		orders:        append([]*order.Order(nil), orders...),
		status:        Queued,
		assignedStaff: []kernel.UUID{},
		isConstructed: true,
	}
	b.rescore()

	return b, nil
}

// Validate ensures the Batch instance was properly constructed.
func (b *Batch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// RestaurantID returns the restaurant the batch belongs to.
func (b *Batch) RestaurantID() kernel.UUID {
	return b.restaurantID
}

// Orders returns a copy of the member order list in join order.
func (b *Batch) Orders() []*order.Order {
	return append([]*order.Order(nil), b.orders...)
}

// Len returns the number of member orders.
func (b *Batch) Len() int {
	return len(b.orders)
}

// Anchor returns the batch anchor: the first member, whose type and
// priority define the batch's acceptance criteria.
func (b *Batch) Anchor() *order.Order {
	return b.orders[0]
}

// Status returns the current batch status.
func (b *Batch) Status() Status {
	return b.status
}

// Priority returns the derived batch priority score.
func (b *Batch) Priority() int {
	return b.priority
}

// EstimatedMinutes returns the derived batch time estimate.
func (b *Batch) EstimatedMinutes() int {
	return b.estimatedMinutes
}

// StartTime returns when the batch started processing, or nil.
func (b *Batch) StartTime() *time.Time {
	if b.startTime == nil {
		return nil
	}
	t := *b.startTime
	return &t
}

// EndTime returns when the batch finished processing, or nil.
func (b *Batch) EndTime() *time.Time {
	if b.endTime == nil {
		return nil
	}
	t := *b.endTime
	return &t
}

// AssignedStaff returns a copy of the assigned staff identifiers.
func (b *Batch) AssignedStaff() []kernel.UUID {
	return append([]kernel.UUID(nil), b.assignedStaff...)
}

// CanAccept reports whether the order may join this batch: the batch must
// still be queued with room to spare, and the order must be compatible
// with the batch anchor.
//
// Compatibility is checked against the anchor only. Members admitted
// earlier may be mutually incompatible with the candidate; this is a
// deliberate heuristic that keeps admission O(1) per batch, at the cost
// of transitively wider batches.
func (b *Batch) CanAccept(o *order.Order) bool {
	return b.status == Queued &&
		len(b.orders) < MaxOrders &&
		Compatible(o, b.Anchor())
}

// Append admits the order into the batch and recomputes the batch's
// priority and estimated time.
//
// Returns an error when the batch is not accepting members or the order
// is incompatible with the anchor.
func (b *Batch) Append(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.RestaurantID().IsEqual(b.restaurantID) {
		return errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("order %s belongs to a different restaurant", o.ID()))
	}
	if !b.CanAccept(o) {
		return errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("order %s is not compatible with batch %s", o.ID(), b.id))
	}

	b.orders = append(b.orders, o)
	b.rescore()
	return nil
}

// RemoveOrder prunes a member order while the batch is still queued and
// recomputes the batch aggregates. Used when a queued order is cancelled.
//
// Returns true when a member was removed. Batches that have left the
// queued state keep their membership, dead members included, until
// completion.
func (b *Batch) RemoveOrder(orderID kernel.UUID) bool {
	if b.status != Queued {
		return false
	}

	for i := range b.orders {
		if b.orders[i].ID().IsEqual(orderID) {
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
			if len(b.orders) > 0 {
				b.rescore()
			}
			return true
		}
	}
	return false
}

// StartProcessing transitions the batch from queued to processing,
// stamping the start time and recording the assigned staff. Membership
// becomes immutable from this point on.
func (b *Batch) StartProcessing(staff []kernel.UUID) error {
	if b.status != Queued {
		return errs.NewValueIsInvalidErrorWithCause("batch status",
			fmt.Errorf("cannot start processing batch in %s status", b.status.String()))
	}

	now := time.Now()
	b.status = Processing
	b.startTime = &now
	b.assignedStaff = append([]kernel.UUID{}, staff...)
	return nil
}

// Complete transitions the batch from processing to completed, stamping
// the end time.
func (b *Batch) Complete() error {
	if b.status != Processing {
		return errs.NewValueIsInvalidErrorWithCause("batch status",
			fmt.Errorf("cannot complete batch in %s status", b.status.String()))
	}

	now := time.Now()
	b.status = Completed
	b.endTime = &now
	return nil
}

// DurationMinutes returns the wall time between start and end of
// processing, in whole minutes, rounded up. Returns zero until both
// timestamps are stamped.
func (b *Batch) DurationMinutes() int {
	if b.startTime == nil || b.endTime == nil {
		return 0
	}
	return int(math.Ceil(b.endTime.Sub(*b.startTime).Minutes()))
}

func (b *Batch) rescore() {
	b.priority = ComputePriority(b.orders)
	b.estimatedMinutes = ComputeEstimatedMinutes(b.orders)
}
