// Package scheduling is the time-scheduling core: local-to-UTC conversion,
// recurrence expansion, slot generation, conflict detection and cancellation
// refund computation.
//
// Every function is pure and synchronous. The current time is always passed
// in by the caller, so results are deterministic and safe to compute
// concurrently and to recompute on retry. Persistence, payments and
// transport live outside of this package.
package scheduling
