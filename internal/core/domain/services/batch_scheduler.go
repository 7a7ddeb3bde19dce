package services

import (
	"errors"
	"sort"
	"sync"

	"kitchen/internal/core/domain/model/batch"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"
)

// ErrNoQueuedBatches is returned when a restaurant has no batches waiting
// for processing. Callers typically treat this as an expected business
// scenario rather than a failure.
var ErrNoQueuedBatches = errors.New("no queued batches")

// StaffAssigner selects the kitchen staff that will work a batch when it
// starts processing.
type StaffAssigner interface {
	Assign(b *batch.Batch) []kernel.UUID
}

// BatchScheduler is a domain service that groups incoming orders into
// compatible batches and drives batches through their processing lifecycle.
//
// Key responsibilities:
//   - Joining new orders into an existing compatible batch, or opening a
//     new one when none can accept them
//   - Keeping each restaurant's queued batches ordered by batch priority
//     (highest first), with estimated time as the tiebreaker
//   - Tracking in-flight batches so completion can settle member orders
//
// Business rules:
//   - Batches never mix orders from different restaurants
//   - Admission into a batch is decided against the batch's first order
//   - Starting a batch moves every member order into preparation
//   - Completing a batch records the measured wall-clock duration on each
//     member order
//
// All methods are safe for concurrent use. Operations on different
// restaurants do not contend with each other.
type BatchScheduler struct {
	mu          sync.Mutex
	restaurants map[kernel.UUID]*restaurantQueue
	inFlight    map[kernel.UUID]*batch.Batch
	assigner    StaffAssigner
}

// restaurantQueue holds one restaurant's queued batches behind its own lock.
type restaurantQueue struct {
	mu      sync.Mutex
	batches []*batch.Batch
}

// NewBatchScheduler creates a BatchScheduler. The assigner may be nil, in
// which case batches start processing with no staff assigned.
func NewBatchScheduler(assigner StaffAssigner) *BatchScheduler {
	return &BatchScheduler{
		restaurants: make(map[kernel.UUID]*restaurantQueue),
		inFlight:    make(map[kernel.UUID]*batch.Batch),
		assigner:    assigner,
	}
}

// AddOrder places an order into the restaurant's batch queue.
//
// The order joins the first queued batch that can accept it; if none can,
// a new single-order batch is opened. The queue is re-sorted afterwards
// because joining changes the batch's priority and estimated time.
//
// Returns the batch the order now belongs to.
func (s *BatchScheduler) AddOrder(o *order.Order) (*batch.Batch, error) {
	rq := s.restaurantQueueFor(o.RestaurantID())

	rq.mu.Lock()
	defer rq.mu.Unlock()

	for _, b := range rq.batches {
		if b.CanAccept(o) {
			if err := b.Append(o); err != nil {
				return nil, err
			}
			sortBatches(rq.batches)
			return b, nil
		}
	}

	b, err := batch.NewBatch(kernel.NewUUID(), o)
	if err != nil {
		return nil, err
	}

	rq.batches = append(rq.batches, b)
	sortBatches(rq.batches)

	return b, nil
}

// ProcessNext takes the highest-priority queued batch for the restaurant
// and starts processing it: staff is assigned, the batch records its start
// time, and every member order begins preparation.
//
// Returns ErrNoQueuedBatches when the restaurant's queue is empty.
func (s *BatchScheduler) ProcessNext(restaurantID kernel.UUID) (*batch.Batch, error) {
	rq := s.restaurantQueueFor(restaurantID)

	rq.mu.Lock()
	defer rq.mu.Unlock()

	if len(rq.batches) == 0 {
		return nil, ErrNoQueuedBatches
	}

	b := rq.batches[0]

	// Member orders advance first so a failure leaves the batch queued
	// rather than stuck in Processing at the head of the queue. Orders
	// already preparing tolerate the retry.
	for _, o := range b.Orders() {
		if err := o.BeginPreparation(); err != nil {
			return nil, err
		}
	}

	var staff []kernel.UUID
	if s.assigner != nil {
		staff = s.assigner.Assign(b)
	}

	if err := b.StartProcessing(staff); err != nil {
		return nil, err
	}

	rq.batches = rq.batches[1:]

	s.mu.Lock()
	s.inFlight[b.ID()] = b
	s.mu.Unlock()

	return b, nil
}

// Complete finishes an in-flight batch.
//
// The batch records its end time, and each member order is settled with
// the batch's measured duration in minutes. A batch that is not in flight
// (never started, or already completed) yields an object-not-found error.
func (s *BatchScheduler) Complete(batchID kernel.UUID) (*batch.Batch, error) {
	s.mu.Lock()
	b, ok := s.inFlight[batchID]
	if ok {
		delete(s.inFlight, batchID)
	}
	s.mu.Unlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("batchID", batchID)
	}

	if err := b.Complete(); err != nil {
		return nil, err
	}

	actualMinutes := b.DurationMinutes()
	for _, o := range b.Orders() {
		o.FinishProcessing(actualMinutes)
	}

	return b, nil
}

// RemoveOrder prunes an order from whichever queued batch holds it, for
// example when the order is cancelled before processing starts.
//
// A batch emptied by the removal is dropped from the queue; otherwise the
// batch is rescored and the queue re-sorted. Returns false when no queued
// batch for the restaurant contains the order.
func (s *BatchScheduler) RemoveOrder(restaurantID kernel.UUID, orderID kernel.UUID) bool {
	rq := s.restaurantQueueFor(restaurantID)

	rq.mu.Lock()
	defer rq.mu.Unlock()

	for i, b := range rq.batches {
		if !b.RemoveOrder(orderID) {
			continue
		}

		if b.Len() == 0 {
			rq.batches = append(rq.batches[:i], rq.batches[i+1:]...)
		} else {
			sortBatches(rq.batches)
		}

		return true
	}

	return false
}

// QueuedBatches returns a snapshot of the restaurant's queued batches in
// processing order.
func (s *BatchScheduler) QueuedBatches(restaurantID kernel.UUID) []*batch.Batch {
	rq := s.restaurantQueueFor(restaurantID)

	rq.mu.Lock()
	defer rq.mu.Unlock()

	snapshot := make([]*batch.Batch, len(rq.batches))
	copy(snapshot, rq.batches)

	return snapshot
}

// InFlightBatches returns a snapshot of every batch currently processing,
// across all restaurants.
func (s *BatchScheduler) InFlightBatches() []*batch.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]*batch.Batch, 0, len(s.inFlight))
	for _, b := range s.inFlight {
		snapshot = append(snapshot, b)
	}

	return snapshot
}

// RestaurantIDs returns the restaurants the scheduler has seen, in no
// particular order.
func (s *BatchScheduler) RestaurantIDs() []kernel.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]kernel.UUID, 0, len(s.restaurants))
	for id := range s.restaurants {
		ids = append(ids, id)
	}

	return ids
}

// OptimizeQueued rebuilds the restaurant's queued batches through the given
// rebatch function, which receives every queued order and returns the new
// batch set. The flatten, rebuild and swap happen under the restaurant's
// queue lock so orders arriving or batches dequeued mid-rebuild can neither
// be lost nor scheduled twice.
//
// A rebatch error leaves the queue untouched. An empty queue is a no-op.
// Returns the installed batches in their new processing order.
func (s *BatchScheduler) OptimizeQueued(
	restaurantID kernel.UUID,
	rebatch func([]*order.Order) ([]*batch.Batch, error),
) ([]*batch.Batch, error) {
	rq := s.restaurantQueueFor(restaurantID)

	rq.mu.Lock()
	defer rq.mu.Unlock()

	if len(rq.batches) == 0 {
		return nil, nil
	}

	orders := make([]*order.Order, 0, len(rq.batches))
	for _, b := range rq.batches {
		orders = append(orders, b.Orders()...)
	}

	rebuilt, err := rebatch(orders)
	if err != nil {
		return nil, err
	}

	sortBatches(rebuilt)
	rq.batches = rebuilt

	snapshot := make([]*batch.Batch, len(rq.batches))
	copy(snapshot, rq.batches)

	return snapshot, nil
}

func (s *BatchScheduler) restaurantQueueFor(restaurantID kernel.UUID) *restaurantQueue {
	s.mu.Lock()
	defer s.mu.Unlock()

	rq, ok := s.restaurants[restaurantID]
	if !ok {
		rq = &restaurantQueue{}
		s.restaurants[restaurantID] = rq
	}

	return rq
}

// sortBatches orders batches by priority (highest first), breaking ties by
// estimated time (shortest first). The sort is stable so equally scored
// batches keep their arrival order.
func sortBatches(batches []*batch.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].Priority() != batches[j].Priority() {
			return batches[i].Priority() > batches[j].Priority()
		}
		return batches[i].EstimatedMinutes() < batches[j].EstimatedMinutes()
	})
}
