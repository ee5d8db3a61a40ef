package session

import "github.com/bitquill/optistream/pkg/record"

// Delivery is one dispatched record.
type Delivery struct {
	Producer string        `json:"producer"`
	Kind     string        `json:"kind"`
	Record   record.Record `json:"record"`
}

// Result is the session's final state: every dispatched record in delivery
// order, plus the producers whose stage never completed on either path.
// An incomplete stage is reported, not raised; the other producers'
// results remain valid.
type Result struct {
	Stages         []*Delivery `json:"stages"`
	Incomplete     []string    `json:"incomplete,omitempty"`
	DecodeWarnings int         `json:"decode_warnings,omitempty"`

	byKey map[ledgerKey]record.Record
}

// Record looks up a dispatched record by producer and kind.
func (r *Result) Record(producer string, kind record.Kind) (record.Record, bool) {
	rec, ok := r.byKey[ledgerKey{producer, kind}]
	return rec, ok
}

// Complete reports whether every producer seen on the stream completed.
func (r *Result) Complete() bool {
	return len(r.Incomplete) == 0
}

func (s *Session) result() *Result {
	res := &Result{
		DecodeWarnings: s.decoder.Warnings(),
		byKey:          make(map[ledgerKey]record.Record, len(s.deliveries)),
	}
	for _, d := range s.deliveries {
		res.Stages = append(res.Stages, d)
		res.byKey[ledgerKey{d.Producer, d.Record.Kind()}] = d.Record
	}
	for _, producer := range s.order {
		if !s.delivered(producer) {
			res.Incomplete = append(res.Incomplete, producer)
		}
	}
	return res
}
