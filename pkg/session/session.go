package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bitquill/optistream/pkg/extract"
	"github.com/bitquill/optistream/pkg/record"
	"github.com/bitquill/optistream/pkg/wire"
)

// readChunkSize is the network read granularity of Consume.
const readChunkSize = 4096

// Callbacks are the subscriber hooks. OnStageComplete fires once per
// non-duplicate classified record, synchronously, in completion order.
// OnProgress fires for every decoded event regardless of what becomes of it;
// it exists for liveness display and carries no correctness contract. Either
// may be nil.
type Callbacks struct {
	OnStageComplete func(producer string, rec record.Record)
	OnProgress      func(ev *wire.Event)
}

type ledgerKey struct {
	producer string
	kind     record.Kind
}

// Session reconstructs stage records for one pipeline run.
type Session struct {
	cbs    Callbacks
	logger *slog.Logger

	decoder    *wire.Decoder
	log        []*wire.Event
	accums     map[string]*accumulator
	order      []string
	ledger     map[ledgerKey]struct{}
	deliveries []*Delivery
	finished   bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a Session for one pipeline run.
func New(cbs Callbacks, opts ...Option) *Session {
	s := &Session{
		cbs:    cbs,
		logger: slog.Default(),
		accums: make(map[string]*accumulator),
		ledger: make(map[ledgerKey]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.decoder = wire.NewDecoder(wire.WithLogger(s.logger))
	return s
}

// Consume reads the raw stream until EOF, the end-of-stream sentinel, or
// ctx cancellation, feeding every chunk through the frame decoder and
// handling each event as it completes. It returns nil on a clean close and
// the causing error otherwise. Either way the caller should still call
// Finish: an aborted stream yields partial results, not nothing.
func (s *Session) Consume(ctx context.Context, r io.Reader) error {
	buf := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			for _, ev := range s.decoder.Feed(buf[:n]) {
				s.HandleEvent(ev)
			}
		}
		if s.decoder.Done() {
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				for _, ev := range s.decoder.Flush() {
					s.HandleEvent(ev)
				}
				return nil
			}
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			return fmt.Errorf("session: stream read: %w", err)
		}
	}
}

// HandleEvent routes one decoded event: the text is appended to the
// producer's accumulator and extraction is attempted immediately. The
// partial flag is never consulted here: some producers send a complete
// payload in one final message, others dribble it across partials with
// nothing special in the last one, so every append is a potential
// completion.
func (s *Session) HandleEvent(ev *wire.Event) {
	s.log = append(s.log, ev)
	if s.cbs.OnProgress != nil {
		s.cbs.OnProgress(ev)
	}
	acc, ok := s.accums[ev.Producer]
	if !ok {
		acc = &accumulator{}
		s.accums[ev.Producer] = acc
		s.order = append(s.order, ev.Producer)
	}
	acc.append(ev.Text)
	s.drain(ev.Producer, acc)
}

// drain extracts payloads from the accumulator until it reports pending.
// One append can complete several payloads when fragments of a new message
// arrived before the previous payload's boundary.
func (s *Session) drain(producer string, acc *accumulator) {
	for {
		p, consumed, ok := extract.Extract(acc.text())
		if !ok {
			return
		}
		acc.consume(consumed)
		rec, ok := record.Classify(p.Value)
		if !ok {
			s.logger.Warn("session: unrecognized payload",
				"producer", producer, "strategy", p.Strategy.String(), "len", len(p.Text))
			continue
		}
		if p.Repaired {
			s.logger.Warn("session: payload needed brace repair", "producer", producer)
		}
		s.dispatch(producer, rec)
	}
}

// dispatch delivers a record unless the ledger already holds its
// (producer, kind) pair. The ledger is append-only for the session's life;
// upstream re-sends of a final payload land here as suppressed duplicates.
func (s *Session) dispatch(producer string, rec record.Record) bool {
	key := ledgerKey{producer, rec.Kind()}
	if _, dup := s.ledger[key]; dup {
		s.logger.Warn("session: duplicate delivery suppressed",
			"producer", producer, "kind", rec.Kind().String())
		return false
	}
	s.ledger[key] = struct{}{}
	d := &Delivery{Producer: producer, Kind: rec.Kind().String(), Record: rec}
	s.deliveries = append(s.deliveries, d)
	if s.cbs.OnStageComplete != nil {
		s.cbs.OnStageComplete(producer, rec)
	}
	return true
}

// delivered reports whether any record was dispatched for the producer.
func (s *Session) delivered(producer string) bool {
	for key := range s.ledger {
		if key.producer == producer {
			return true
		}
	}
	return false
}

// Finish closes the session: the fallback reconstructor runs once for every
// producer the live path never completed, then the result is assembled.
// Safe to call after cancellation; repeated calls return the same result.
func (s *Session) Finish() *Result {
	if !s.finished {
		s.finished = true
		s.reconstruct()
	}
	return s.result()
}
