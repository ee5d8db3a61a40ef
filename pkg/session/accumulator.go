package session

// accumulator is one producer's growing text buffer. Both partial and final
// fragments are appended in arrival order: a producer's last message can
// itself arrive split across frames, so only concatenation of everything
// preserves the payload.
type accumulator struct {
	buf []byte
}

func (a *accumulator) append(text string) {
	a.buf = append(a.buf, text...)
}

func (a *accumulator) text() string {
	return string(a.buf)
}

// consume discards the first n bytes; text after a matched payload stays,
// it belongs to whatever the producer says next.
func (a *accumulator) consume(n int) {
	if n >= len(a.buf) {
		a.buf = a.buf[:0]
		return
	}
	a.buf = append(a.buf[:0], a.buf[n:]...)
}
