package wire

// envelope is the JSON payload carried by a data frame. Only the fields the
// engine consumes are declared; the server sends more (ids, timestamps,
// usage) and those are ignored.
type envelope struct {
	Author  string `json:"author"`
	Partial *bool  `json:"partial"`
	Content struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

// text concatenates every text part of the envelope in order. Non-text parts
// (function calls, blobs) decode to empty strings and contribute nothing.
func (e *envelope) text() string {
	switch len(e.Content.Parts) {
	case 0:
		return ""
	case 1:
		return e.Content.Parts[0].Text
	}
	var n int
	for _, p := range e.Content.Parts {
		n += len(p.Text)
	}
	buf := make([]byte, 0, n)
	for _, p := range e.Content.Parts {
		buf = append(buf, p.Text...)
	}
	return string(buf)
}

// partial reports the envelope's partial flag; a missing flag means final.
func (e *envelope) partial() bool {
	return e.Partial != nil && *e.Partial
}
