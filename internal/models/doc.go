// Package models defines the domain values of the settlement and reporting
// engine.
//
// # Inputs
//
// Two collaborators feed the engine and are not owned by it:
//   - ExpenseRecord: one non-deleted expense of a room, already filtered to
//     the requested date range
//   - Participant: one split unit of a room, either a user or a household
//     depending on the room's split mode
//
// # Derived values
//
// Everything else is recomputed on every report request and never persisted:
//   - Balance: paid, owed and net per participant
//   - Settlement: a transfer instruction that reduces one debt
//   - CategorySummary, TimeBucketSummary, ParticipantSpending: chart and
//     summary aggregates
//
// # Design Principles
//
//  1. **Fixed-point money**: every amount is a money.Amount, never a float
//  2. **One participant type**: users and households share the Participant
//     type and differ only by Kind
//  3. **IDs, not pointers**: relationships are expressed through id strings
package models
