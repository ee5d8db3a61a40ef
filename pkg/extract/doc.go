// Package extract locates structured JSON payloads inside accumulated
// producer text.
//
// Producers emit their payload embedded in free-form text, arbitrarily
// chunked and occasionally wrapped in markdown fences, separator rules, or
// doubled-brace template artifacts. Extract tries a fixed priority order of
// strategies (fenced block, separator-delimited block, brace-matched block)
// and returns the first candidate that strictly parses, after at most one
// narrow textual repair. A buffer with no parseable candidate is "pending",
// the normal still-streaming case.
//
// ScanAll and ParseLoose serve the end-of-stream fallback path: they collect
// every candidate across a full event log and accept malformed JSON via
// jsonrepair. The live path never parses loosely, so a half-streamed payload
// is never mistaken for a complete one.
package extract
