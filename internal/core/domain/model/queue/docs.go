// Package queue provides the order priority queue: a single sequence of
// order references ordered by priority weight, FIFO within a tier.
//
// The queue is an observational structure: it tracks which live orders are
// waiting and for how long, and derives advisory staffing requirements.
// It never owns orders; entries reference orders by identifier and are
// removed when the order reaches a terminal state.
package queue
