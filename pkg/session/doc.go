// Package session reassembles one structured record per pipeline stage out
// of a multiplexed event stream.
//
// A Session is scoped to a single pipeline run. It owns one text accumulator
// per producer, the full retained event log, and the delivery ledger that
// makes dispatch idempotent: each (producer, record kind) pair reaches the
// subscriber at most once no matter how often the upstream re-sends a
// payload. Everything inside a session is synchronous single-threaded work;
// sessions are fully isolated from each other and need no locking.
//
// Records are delivered in the order their payloads finished parsing, not in
// producer or sequence order. At end of stream, clean close or cancellation
// alike, Finish runs a best-effort reconstruction over the full event log
// for any producer the live path never completed, so an aborted stream still
// yields partial-but-valid results.
package session
