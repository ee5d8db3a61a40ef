package wire

import (
	"testing"
)

func frame(t *testing.T, body string) string {
	t.Helper()
	return "data: " + body + "\n"
}

func TestDecoder_SingleFrame(t *testing.T) {
	d := NewDecoder()

	events := d.Feed([]byte(frame(t, `{"author":"meta","partial":true,"content":{"role":"model","parts":[{"text":"hello"}]}}`)))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Producer != "meta" {
		t.Errorf("Producer = %q, want %q", ev.Producer, "meta")
	}
	if !ev.Partial {
		t.Errorf("Partial = false, want true")
	}
	if ev.Text != "hello" {
		t.Errorf("Text = %q, want %q", ev.Text, "hello")
	}
	if d.Warnings() != 0 {
		t.Errorf("Warnings() = %d, want 0", d.Warnings())
	}
}

func TestDecoder_MissingPartialMeansFinal(t *testing.T) {
	d := NewDecoder()

	events := d.Feed([]byte(frame(t, `{"author":"meta","content":{"role":"model","parts":[{"text":"x"}]}}`)))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Partial {
		t.Errorf("Partial = true, want false when flag absent")
	}
}

func TestDecoder_SplitLine(t *testing.T) {
	line := frame(t, `{"author":"meta","partial":false,"content":{"role":"model","parts":[{"text":"split across reads"}]}}`)

	// Cut the line at every possible position; each prefix/suffix pair must
	// still yield exactly one event.
	for cut := 1; cut < len(line)-1; cut++ {
		d := NewDecoder()
		events := d.Feed([]byte(line[:cut]))
		events = append(events, d.Feed([]byte(line[cut:]))...)
		if len(events) != 1 {
			t.Fatalf("cut=%d: got %d events, want 1", cut, len(events))
		}
		if events[0].Text != "split across reads" {
			t.Fatalf("cut=%d: Text = %q", cut, events[0].Text)
		}
	}
}

func TestDecoder_ManyFramesOneChunk(t *testing.T) {
	d := NewDecoder()
	chunk := frame(t, `{"author":"a","content":{"parts":[{"text":"1"}]}}`) +
		frame(t, `{"author":"b","content":{"parts":[{"text":"2"}]}}`) +
		frame(t, `{"author":"a","content":{"parts":[{"text":"3"}]}}`)

	events := d.Feed([]byte(chunk))
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Seq >= events[1].Seq || events[1].Seq >= events[2].Seq {
		t.Errorf("Seq not increasing: %d %d %d", events[0].Seq, events[1].Seq, events[2].Seq)
	}
	if events[2].Producer != "a" || events[2].Text != "3" {
		t.Errorf("events[2] = %+v", events[2])
	}
}

func TestDecoder_SkipsNoise(t *testing.T) {
	d := NewDecoder()
	chunk := "\n" + // blank separator, not a warning
		": keepalive comment\n" +
		"event: message\n" +
		"data: {not json}\n" +
		frame(t, `{"content":{"parts":[{"text":"no author"}]}}`) +
		frame(t, `{"author":"ok","content":{"parts":[{"text":"good"}]}}`)

	events := d.Feed([]byte(chunk))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Producer != "ok" {
		t.Errorf("Producer = %q, want %q", events[0].Producer, "ok")
	}
	// comment + event: + bad json + missing author
	if d.Warnings() != 4 {
		t.Errorf("Warnings() = %d, want 4", d.Warnings())
	}
}

func TestDecoder_DoneSentinel(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("data: [DONE]\n"))
	if len(events) != 0 {
		t.Fatalf("got %d events, want 0", len(events))
	}
	if !d.Done() {
		t.Errorf("Done() = false after sentinel")
	}
	if d.Warnings() != 0 {
		t.Errorf("Warnings() = %d, want 0", d.Warnings())
	}
}

func TestDecoder_FlushUnterminatedLine(t *testing.T) {
	d := NewDecoder()
	// No trailing newline: the line sits in the carry buffer.
	events := d.Feed([]byte("data: " + `{"author":"meta","content":{"parts":[{"text":"tail"}]}}`))
	if len(events) != 0 {
		t.Fatalf("Feed returned %d events, want 0", len(events))
	}
	events = d.Flush()
	if len(events) != 1 {
		t.Fatalf("Flush returned %d events, want 1", len(events))
	}
	if events[0].Text != "tail" {
		t.Errorf("Text = %q, want %q", events[0].Text, "tail")
	}
	if got := d.Flush(); len(got) != 0 {
		t.Errorf("second Flush returned %d events, want 0", len(got))
	}
}

func TestDecoder_MultiPartText(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte(frame(t, `{"author":"meta","content":{"parts":[{"text":"a"},{"text":"b"},{"functionCall":{"name":"x"}}]}}`)))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Text != "ab" {
		t.Errorf("Text = %q, want %q", events[0].Text, "ab")
	}
}

func TestDecoder_CRLF(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("data: " + `{"author":"meta","content":{"parts":[{"text":"crlf"}]}}` + "\r\n"))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Text != "crlf" {
		t.Errorf("Text = %q, want %q", events[0].Text, "crlf")
	}
}
