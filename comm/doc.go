// Package comm provides the message-passing execution context for the
// distributed transpose kernel: a World of cooperating ranks, each running
// its own goroutine, that share no memory and interact only through
//
//   - tagged point-to-point Send / posted Recv over per-pair links,
//   - a reusable Barrier,
//   - MaxFloat64 / SumFloat64 reductions whose result lands on every rank,
//   - Agree, the collective error gate: every rank reports its local error,
//     and either all ranks proceed or all ranks abort together.
//
// Payloads are copied at the send side, so a sender may overwrite its
// outgoing buffer as soon as Send returns and a receiver owns its incoming
// buffer outright once Wait returns — the same ownership contract a wire
// would enforce between processes.
//
// Links are buffered one message deep per ordered pair, so a Send never
// waits on the partner having posted its receive; posting a receive before
// the partner's matching send is a protocol statement, not a delivery
// requirement. One message per ordered pair may be in flight at a time,
// which is exactly the shape of a phased exchange schedule.
//
// All blocking operations watch the run context and return ErrAborted once
// it is canceled, so a failure on one rank unwinds the whole world instead
// of deadlocking it.
package comm
