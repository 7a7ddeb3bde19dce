// Package batch provides the Batch aggregate: a group of compatible orders
// from one restaurant processed jointly by the kitchen.
//
// Two orders are batchable when they share a fulfilment channel and their
// priority weights differ by at most one. Admission into an existing batch
// is decided against the batch anchor (the first member) only, a documented
// heuristic rather than full pairwise compatibility.
//
// Batch scoring models throughput gains from joint preparation: the batch
// priority blends the maximum and average member priority weights, and the
// batch time estimate discounts the summed nominal times by 10% per extra
// member down to a floor of 80%.
package batch
