package cli

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// ApplyFilter runs a jq expression over a result value and returns the
// emitted values. The input is round-tripped through JSON first so typed
// structs become the generic values gojq operates on.
func ApplyFilter(expr string, v any) ([]any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("cli: parse jq expression: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cli: marshal for jq: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("cli: unmarshal for jq: %w", err)
	}

	var out []any
	iter := query.Run(generic)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("cli: jq: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}
