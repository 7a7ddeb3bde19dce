// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the kitchen scheduling system. It implements
// complex business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - BatchScheduler: A domain service that groups orders into compatible batches
//     and drives batches through their processing lifecycle
//   - QueueOptimizer: A domain service that periodically rebuilds queued batches
//     into homogeneous, right-sized groups
//   - RotatingStaffAssigner: A staff selection policy that spreads batches across
//     the kitchen roster
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
