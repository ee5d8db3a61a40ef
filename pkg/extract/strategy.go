package extract

import "strings"

// Strategy identifies how a candidate was isolated from surrounding text.
type Strategy int

const (
	// StrategyFence matches a triple-backtick fenced block.
	StrategyFence Strategy = iota
	// StrategySeparator matches text between two identical horizontal-rule
	// separator lines.
	StrategySeparator
	// StrategyBrace matches the first '{' through its balancing '}'.
	StrategyBrace
)

func (s Strategy) String() string {
	switch s {
	case StrategyFence:
		return "fence"
	case StrategySeparator:
		return "separator"
	case StrategyBrace:
		return "brace"
	}
	return "unknown"
}

// Candidate is a substring believed to contain one complete structured
// object, prior to parse verification. End is the offset just past the whole
// construct (closing fence, second separator, or balancing brace) in the
// text it was found in.
type Candidate struct {
	Text     string
	Strategy Strategy
	End      int
}

// strategies in fixed priority order.
var strategies = []func(string) []Candidate{
	fenceCandidates,
	separatorCandidates,
	braceCandidates,
}

const fenceMarker = "```"

// fenceCandidates finds complete fenced blocks. The opening fence may carry
// a language tag; an unterminated fence yields nothing, more text may still
// close it.
func fenceCandidates(s string) []Candidate {
	var out []Candidate
	base := 0
	for {
		rest := s[base:]
		open := strings.Index(rest, fenceMarker)
		if open < 0 {
			return out
		}
		nl := strings.IndexByte(rest[open+len(fenceMarker):], '\n')
		if nl < 0 {
			return out
		}
		body := open + len(fenceMarker) + nl + 1
		end := strings.Index(rest[body:], fenceMarker)
		if end < 0 {
			return out
		}
		out = append(out, Candidate{
			Text:     strings.TrimSpace(rest[body : body+end]),
			Strategy: StrategyFence,
			End:      base + body + end + len(fenceMarker),
		})
		base += body + end + len(fenceMarker)
	}
}

// separatorLine reports whether a line is a horizontal-rule separator and
// returns its trimmed form.
func separatorLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return "", false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != '-' {
			return "", false
		}
	}
	return trimmed, true
}

// separatorCandidates finds text between two identical separator lines.
// Pairs do not overlap: the line closing one block cannot open the next.
func separatorCandidates(s string) []Candidate {
	var out []Candidate
	var openSep string
	var bodyStart int
	offset := 0
	for offset <= len(s) {
		lineEnd := strings.IndexByte(s[offset:], '\n')
		if lineEnd < 0 {
			lineEnd = len(s) - offset
		}
		line := s[offset : offset+lineEnd]
		if sep, ok := separatorLine(line); ok {
			switch {
			case openSep == "":
				openSep = sep
				bodyStart = offset + lineEnd
			case sep == openSep:
				out = append(out, Candidate{
					Text:     strings.TrimSpace(s[bodyStart:offset]),
					Strategy: StrategySeparator,
					End:      offset + lineEnd,
				})
				openSep = ""
			}
			// A separator that does not match the open one is skipped: it
			// may belong to surrounding prose.
		}
		offset += lineEnd + 1
	}
	return out
}

// braceCandidates finds balanced top-level objects by depth counting,
// ignoring braces inside string literals. A naive first-'{'-to-last-'}' scan
// would span independent objects or stop short of nested ones.
func braceCandidates(s string) []Candidate {
	var out []Candidate
	depth := 0
	start := -1
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				out = append(out, Candidate{
					Text:     s[start : i+1],
					Strategy: StrategyBrace,
					End:      i + 1,
				})
				start = -1
			}
		}
	}
	return out
}
