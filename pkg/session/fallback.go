package session

import (
	"github.com/bitquill/optistream/pkg/extract"
	"github.com/bitquill/optistream/pkg/record"
)

// reconstruct is the end-of-stream fallback: for each producer with no
// ledger entry it rescans the producer's entire retained event log (not the
// live accumulator, whose prefix may already have been consumed past a
// payload boundary), collecting every candidate from every strategy and
// accepting the first one that parses, loosely, and classifies. This
// recovers payloads the live path lost to a missed boundary, such as a fence
// spanning a buffer-clearing extraction.
func (s *Session) reconstruct() {
	for _, producer := range s.order {
		if s.delivered(producer) {
			continue
		}
		full := s.logText(producer)
		if s.recoverFrom(producer, full) {
			continue
		}
		s.logger.Warn("session: stage incomplete", "producer", producer, "log_len", len(full))
	}
}

// logText concatenates every logged fragment of one producer in sequence
// order. The log is already in arrival order and arrival order is
// non-decreasing per producer.
func (s *Session) logText(producer string) string {
	var n int
	for _, ev := range s.log {
		if ev.Producer == producer {
			n += len(ev.Text)
		}
	}
	buf := make([]byte, 0, n)
	for _, ev := range s.log {
		if ev.Producer == producer {
			buf = append(buf, ev.Text...)
		}
	}
	return string(buf)
}

func (s *Session) recoverFrom(producer, full string) bool {
	for _, cand := range extract.ScanAll(full) {
		v, err := extract.ParseLoose(cand.Text)
		if err != nil {
			continue
		}
		rec, ok := record.Classify(v)
		if !ok {
			continue
		}
		s.logger.Info("session: recovered stage from event log",
			"producer", producer, "strategy", cand.Strategy.String(), "kind", rec.Kind().String())
		return s.dispatch(producer, rec)
	}
	return false
}
