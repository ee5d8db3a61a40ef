package wire

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// framePrefix marks a data-bearing SSE line.
var framePrefix = []byte("data:")

// doneSentinel is sent by some servers as the last frame of a stream.
var doneSentinel = []byte("[DONE]")

// Event is one decoded frame attributed to a producer (the "author" of the
// upstream pipeline stage). Seq is the decoder's arrival index; events for
// the same producer are therefore in non-decreasing Seq order.
type Event struct {
	Producer string
	Partial  bool
	Text     string
	Seq      uint64
}

// Decoder turns raw stream chunks into Events.
//
// Feed may be called with chunks of any size, including chunks that end in
// the middle of a line; the unterminated tail is retained and prepended to
// the next chunk. The zero value is not usable, call NewDecoder.
type Decoder struct {
	carry    []byte
	seq      uint64
	warnings int
	done     bool
	logger   *slog.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLogger sets the logger used for decode warnings.
func WithLogger(l *slog.Logger) DecoderOption {
	return func(d *Decoder) { d.logger = l }
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed consumes one raw chunk and returns the events decoded from every
// complete line it contains. An empty result is normal ("no full line yet"),
// not an error; Feed never fails.
func (d *Decoder) Feed(p []byte) []*Event {
	if len(d.carry) > 0 {
		p = append(d.carry, p...)
		d.carry = nil
	}
	var events []*Event
	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			break
		}
		if ev := d.decodeLine(p[:i]); ev != nil {
			events = append(events, ev)
		}
		p = p[i+1:]
	}
	if len(p) > 0 {
		d.carry = append(d.carry, p...)
	}
	return events
}

// Flush decodes any retained unterminated line. Call once at end of stream,
// when no further bytes can arrive to complete it.
func (d *Decoder) Flush() []*Event {
	if len(d.carry) == 0 {
		return nil
	}
	line := d.carry
	d.carry = nil
	if ev := d.decodeLine(line); ev != nil {
		return []*Event{ev}
	}
	return nil
}

// Warnings returns the number of lines skipped so far.
func (d *Decoder) Warnings() int {
	return d.warnings
}

// Done reports whether the stream-end sentinel has been seen.
func (d *Decoder) Done() bool {
	return d.done
}

func (d *Decoder) decodeLine(line []byte) *Event {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		// Blank lines separate SSE events; nothing to report.
		return nil
	}
	if !bytes.HasPrefix(line, framePrefix) {
		// Comment lines, "event:" fields and other non-data noise.
		d.warnings++
		return nil
	}
	data := bytes.TrimSpace(bytes.TrimPrefix(line, framePrefix))
	if bytes.Equal(data, doneSentinel) {
		d.done = true
		return nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		d.warnings++
		d.logger.Warn("wire: skipping bad envelope", "err", err, "len", len(data))
		return nil
	}
	if env.Author == "" {
		d.warnings++
		d.logger.Warn("wire: frame without author")
		return nil
	}
	ev := &Event{
		Producer: env.Author,
		Partial:  env.partial(),
		Text:     env.text(),
		Seq:      d.seq,
	}
	d.seq++
	return ev
}
