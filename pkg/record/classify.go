package record

import "encoding/json"

// Rule pairs a record kind with its discriminator field set: a payload is
// that kind when every field in the set is present at its top level. Sets
// must stay mutually exclusive (each kind keeps at least one field that no
// other kind's payload carries at top level) so the table order never
// actually decides between two matches. TestRules_Exclusive guards this.
type Rule struct {
	Kind   Kind
	Fields []string
}

// Rules is the classification table, applied in order.
var Rules = []Rule{
	{KindMetadata, []string{"tables_found", "total_size_gb"}},
	{KindRuleReport, []string{"rules_checked", "violations"}},
	{KindOptimizationReport, []string{"total_optimizations", "steps"}},
	{KindFinalReport, []string{"executive_summary", "recommendations"}},
}

// Matches reports whether v carries every discriminator field of the rule.
func (r Rule) Matches(v map[string]any) bool {
	for _, f := range r.Fields {
		if _, ok := v[f]; !ok {
			return false
		}
	}
	return true
}

// Classify determines which record kind a parsed payload is and decodes it.
// ok=false means the payload matched no known discriminator set; callers
// log it and move on, it is not dispatched.
//
// The typed decode is best-effort: a producer that matched the
// discriminators but put an unexpected type in some other field still
// classifies, with that field zero-valued and the raw value retained.
func Classify(v map[string]any) (Record, bool) {
	for _, rule := range Rules {
		if !rule.Matches(v) {
			continue
		}
		switch rule.Kind {
		case KindMetadata:
			rec := &Metadata{raw: v}
			decodeInto(v, rec)
			return rec, true
		case KindRuleReport:
			rec := &RuleReport{raw: v}
			decodeInto(v, rec)
			return rec, true
		case KindOptimizationReport:
			rec := &OptimizationReport{raw: v}
			decodeInto(v, rec)
			return rec, true
		case KindFinalReport:
			rec := &FinalReport{raw: v}
			decodeInto(v, rec)
			return rec, true
		}
	}
	return nil, false
}

// decodeInto round-trips the generic value into the typed struct, ignoring
// type mismatches. Classification already succeeded; shape deviations only
// cost the deviating field.
func decodeInto(v map[string]any, out any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	// Unmarshal fills every field it can and reports the first mismatch;
	// the error is deliberately dropped.
	_ = json.Unmarshal(data, out)
}
