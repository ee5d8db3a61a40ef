package extract

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
)

// RepairBraces collapses doubled-brace artifacts left by upstream template
// substitution: runs of "{{" and "}}" outside string literals become single
// braces. It reports whether anything changed. This is the only textual
// fix-up the live extraction path is allowed; anything else must wait for
// more text or the end-of-stream fallback.
func RepairBraces(s string) (string, bool) {
	var b []byte
	changed := false
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
			b = append(b, c)
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '}':
			if i+1 < len(s) && s[i+1] == c {
				changed = true
				i++
			}
		}
		b = append(b, c)
	}
	if !changed {
		return s, false
	}
	return string(b), true
}

// ParseLoose parses candidate text accepting malformed JSON. It tries a
// strict parse, then the doubled-brace repair, then a full jsonrepair pass.
// Only the fallback reconstructor may use this; see the package comment.
func ParseLoose(text string) (map[string]any, error) {
	var v map[string]any
	err := json.Unmarshal([]byte(text), &v)
	if err == nil {
		return v, nil
	}
	if _, ok := err.(*json.SyntaxError); !ok {
		return nil, err
	}
	if fixed, ok := RepairBraces(text); ok {
		if json.Unmarshal([]byte(fixed), &v) == nil {
			return v, nil
		}
	}
	fixed, rerr := jsonrepair.JSONRepair(text)
	if rerr != nil {
		return nil, err
	}
	if uerr := json.Unmarshal([]byte(fixed), &v); uerr != nil {
		return nil, err
	}
	return v, nil
}
