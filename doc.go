// Package asyncmap applies an asynchronous per-item transform over a sequence
// with a hard bound on concurrency while preserving input order in the output.
//
// Two modes share one engine:
//   - Map: eager. Runs at most limit transforms concurrently and returns a
//     fully materialized slice in input order once every item has finished.
//   - MapStream: streaming. Returns a lazy iter.Seq2[R, error] that yields
//     each result as soon as it is both complete and next in input order,
//     without waiting for later items.
//
// Concurrency and backpressure
//
// An admission gate (package gate) bounds executing transforms to the limit.
// In streaming mode a second, independent bound applies: dispatched-but-
// undelivered work is queued as pending-result handles in a channel of
// capacity limit × WithBufferMultiplier (default 2). When that channel is
// full the producer blocks, so scheduling can never run more than the channel
// capacity ahead of consumption, regardless of how fast transforms complete.
//
// Cancellation
//
// Each call derives a single cancellation context from the caller's ctx. It
// is tripped by the first transform failure or by the caller, after which no
// new items are admitted; already-running transforms receive the same context
// and may honor it cooperatively. Both modes join all launched work before
// returning control, so no transform keeps running after Map returns or after
// a MapStream range loop exits, including an early break.
//
// Each invocation is single-use: the gate, the cancellation context, and the
// returned stream all belong to one call and must not be shared or re-iterated.
package asyncmap
