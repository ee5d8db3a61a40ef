package extract

import (
	"encoding/json"
	"strings"
)

// Payload is a candidate that passed strict parse.
type Payload struct {
	// Value is the parsed generic JSON object.
	Value map[string]any
	// Text is the exact text that parsed, after repair if one was applied.
	Text string
	// Strategy tags how the candidate was isolated.
	Strategy Strategy
	// Repaired reports whether the doubled-brace fix was needed.
	Repaired bool
}

// Extract attempts to locate one complete structured payload in buf.
//
// Strategies run in fixed priority order and the first candidate that
// strictly parses wins. The returned int is the length of the buffer prefix
// the caller should discard, through the end of the matched construct;
// trailing text after it belongs to whatever the producer says next and must
// be kept. ok=false means no candidate parses yet; with a still-streaming
// producer that is the normal case, not an error, so the caller leaves the
// buffer intact and waits for more text.
//
// Extract is a pure function of buf: calling it again with the same buffer
// returns the same result, so it is safe to re-run after every append.
func Extract(buf string) (p *Payload, consumed int, ok bool) {
	for _, candidates := range strategies {
		for _, cand := range candidates(buf) {
			if p := parseCandidate(cand); p != nil {
				return p, cand.End, true
			}
		}
	}
	return nil, 0, false
}

// ScanAll returns every candidate any strategy finds in text, in strategy
// priority order. It performs no parsing; the fallback reconstructor decides
// what each candidate is worth.
func ScanAll(text string) []Candidate {
	var out []Candidate
	for _, candidates := range strategies {
		out = append(out, candidates(text)...)
	}
	return out
}

// parseCandidate strictly parses a candidate, allowing one doubled-brace
// repair attempt. A candidate that still fails is rejected, not retried.
func parseCandidate(cand Candidate) *Payload {
	text := strings.TrimSpace(cand.Text)
	if text == "" {
		return nil
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return &Payload{Value: v, Text: text, Strategy: cand.Strategy}
	}
	fixed, changed := RepairBraces(text)
	if !changed {
		return nil
	}
	if err := json.Unmarshal([]byte(fixed), &v); err != nil {
		return nil
	}
	return &Payload{Value: v, Text: fixed, Strategy: cand.Strategy, Repaired: true}
}
