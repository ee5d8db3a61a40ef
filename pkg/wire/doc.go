// Package wire decodes the newline-delimited SSE frame stream emitted by an
// ADK-style /run_sse endpoint into discrete producer events.
//
// The decoder is push-based: callers feed it raw byte chunks exactly as they
// arrive from the network and receive zero or more complete events per feed.
// A line split across two reads is carried over and reassembled on the next
// feed. Lines that are not data frames, or whose JSON envelope does not
// parse, are skipped and counted as warnings; nothing on the wire is fatal.
package wire
