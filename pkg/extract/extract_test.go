package extract

import (
	"reflect"
	"testing"
)

func TestExtract_FencedBlock(t *testing.T) {
	buf := "Here are the results:\n```json\n{\"tables_found\": 2}\n```\nmore prose"

	p, consumed, ok := Extract(buf)
	if !ok {
		t.Fatal("Extract not ok")
	}
	if p.Strategy != StrategyFence {
		t.Errorf("Strategy = %v, want fence", p.Strategy)
	}
	if p.Value["tables_found"] != float64(2) {
		t.Errorf("tables_found = %v", p.Value["tables_found"])
	}
	if rest := buf[consumed:]; rest != "\nmore prose" {
		t.Errorf("unconsumed tail = %q", rest)
	}
}

func TestExtract_SeparatorBlock(t *testing.T) {
	buf := "status update\n---\n{\"rules_checked\": 8}\n---\ntail"

	p, consumed, ok := Extract(buf)
	if !ok {
		t.Fatal("Extract not ok")
	}
	if p.Strategy != StrategySeparator {
		t.Errorf("Strategy = %v, want separator", p.Strategy)
	}
	if p.Value["rules_checked"] != float64(8) {
		t.Errorf("rules_checked = %v", p.Value["rules_checked"])
	}
	if rest := buf[consumed:]; rest != "\ntail" {
		t.Errorf("unconsumed tail = %q", rest)
	}
}

func TestExtract_BraceMatched(t *testing.T) {
	buf := `prefix {"a": {"b": 1}, "c": "}"} suffix`

	p, consumed, ok := Extract(buf)
	if !ok {
		t.Fatal("Extract not ok")
	}
	if p.Strategy != StrategyBrace {
		t.Errorf("Strategy = %v, want brace", p.Strategy)
	}
	want := map[string]any{"a": map[string]any{"b": float64(1)}, "c": "}"}
	if !reflect.DeepEqual(p.Value, want) {
		t.Errorf("Value = %v, want %v", p.Value, want)
	}
	if rest := buf[consumed:]; rest != " suffix" {
		t.Errorf("unconsumed tail = %q", rest)
	}
}

func TestExtract_BraceMatchedStopsAtFirstObject(t *testing.T) {
	buf := `{"first": 1} {"second": 2}`

	p, consumed, ok := Extract(buf)
	if !ok {
		t.Fatal("Extract not ok")
	}
	if _, has := p.Value["first"]; !has {
		t.Errorf("Value = %v, want the first object", p.Value)
	}
	if rest := buf[consumed:]; rest != ` {"second": 2}` {
		t.Errorf("unconsumed tail = %q", rest)
	}
}

func TestExtract_FencePreferredOverBraces(t *testing.T) {
	// A bare object precedes the fence, but the fence strategy has priority.
	buf := "{\"noise\": true}\n```json\n{\"tables_found\": 1}\n```"

	p, _, ok := Extract(buf)
	if !ok {
		t.Fatal("Extract not ok")
	}
	if p.Strategy != StrategyFence {
		t.Errorf("Strategy = %v, want fence", p.Strategy)
	}
	if _, has := p.Value["tables_found"]; !has {
		t.Errorf("Value = %v, want fenced object", p.Value)
	}
}

func TestExtract_UnterminatedFenceFallsThrough(t *testing.T) {
	// The fence never closes, but the object inside is already balanced, so
	// the brace strategy picks it up.
	buf := "```json\n{\"done\": true}\n"

	p, _, ok := Extract(buf)
	if !ok {
		t.Fatal("Extract not ok")
	}
	if p.Strategy != StrategyBrace {
		t.Errorf("Strategy = %v, want brace", p.Strategy)
	}
}

func TestExtract_Pending(t *testing.T) {
	for _, buf := range []string{
		"",
		"no payload here at all",
		`{"streaming": "still open`,
		`{"unbalanced": {`,
		"```json\n{\"fence\": \"never closes\"",
		"---\nawaiting the closing separator\n",
	} {
		if _, _, ok := Extract(buf); ok {
			t.Errorf("Extract(%q) ok, want pending", buf)
		}
	}
}

func TestExtract_SeparatorPairMustMatch(t *testing.T) {
	// "---" opened, "----" is a different rule; no pair yet.
	buf := "---\n{\"a\": 1}\n----\n"
	p, _, ok := Extract(buf)
	if !ok {
		t.Fatal("Extract not ok")
	}
	// The brace strategy still finds the object even though no separator
	// pair closed.
	if p.Strategy != StrategyBrace {
		t.Errorf("Strategy = %v, want brace", p.Strategy)
	}
}

func TestExtract_RepairedDoubledBraces(t *testing.T) {
	buf := `{{"tables_found": 1, "tables": [{{"table_name": "t"}}]}}`

	p, _, ok := Extract(buf)
	if !ok {
		t.Fatal("Extract not ok")
	}
	if !p.Repaired {
		t.Error("Repaired = false, want true")
	}
	tables, ok := p.Value["tables"].([]any)
	if !ok || len(tables) != 1 {
		t.Fatalf("tables = %v", p.Value["tables"])
	}
}

func TestExtract_Idempotent(t *testing.T) {
	buf := "words\n```json\n{\"x\": 1}\n```"
	p1, c1, ok1 := Extract(buf)
	p2, c2, ok2 := Extract(buf)
	if ok1 != ok2 || c1 != c2 || !reflect.DeepEqual(p1.Value, p2.Value) {
		t.Errorf("Extract not idempotent: (%v,%d,%v) vs (%v,%d,%v)", p1, c1, ok1, p2, c2, ok2)
	}
}

func TestScanAll_CollectsAcrossStrategies(t *testing.T) {
	text := "```json\n{\"a\": 1}\n```\nnoise {\"b\": 2} noise"

	cands := ScanAll(text)
	var strategies []Strategy
	for _, c := range cands {
		strategies = append(strategies, c.Strategy)
	}
	// Fence finds one, brace finds both objects (the fenced body is itself a
	// balanced object).
	want := []Strategy{StrategyFence, StrategyBrace, StrategyBrace}
	if !reflect.DeepEqual(strategies, want) {
		t.Errorf("strategies = %v, want %v", strategies, want)
	}
}
