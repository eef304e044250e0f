// Package interp executes decode and encode plans against keyed containers.
package interp

import (
	"errors"
	"fmt"

	"pathcodec/internal/plan"
	"pathcodec/internal/tree"
	"pathcodec/keyed"
)

var (
	// ErrMissingValue reports a required field absent from the encoded values.
	ErrMissingValue = errors.New("missing value")
	// ErrMalformedPlan reports an operation sequence the interpreter cannot run.
	ErrMalformedPlan = errors.New("malformed plan")
)

// State is what decoding found for a scope.
type State int

const (
	// StatePresent - the scope was opened.
	StatePresent State = iota
	// StateMissing - the probe found no key.
	StateMissing
	// StateNull - the probe found a null value.
	StateNull
	// StateCascaded - an ancestor was absent, so the scope was never probed.
	StateCascaded
)

func (s State) String() string {
	switch s {
	case StatePresent:
		return "present"
	case StateMissing:
		return "missing"
	case StateNull:
		return "null"
	case StateCascaded:
		return "cascaded"
	default:
		return "unknown"
	}
}

// Resolution tells where a decoded field value came from.
type Resolution int

const (
	// Decoded - read from the document.
	Decoded Resolution = iota
	// Fallback - the field default, or nil.
	Fallback
)

func (r Resolution) String() string {
	if r == Decoded {
		return "decoded"
	}

	return "fallback"
}

// Trace records the path a decode run took.
type Trace struct {
	// Probes counts presence checks of probed scopes against the document.
	Probes int
	// Scopes holds the state of every opened or probed scope.
	Scopes map[tree.NodeID]State
	// Fields holds the resolution of every assigned field.
	Fields map[string]Resolution
}

// Result is the outcome of Decode.
type Result struct {
	// Values maps field names to decoded values; nil means no value.
	Values map[string]any
	Trace  Trace
}

type decodeRun struct {
	p      *plan.Plan
	kinds  map[string]keyed.Kind
	scopes map[tree.NodeID]keyed.Decoder
	res    Result
}

// Decode runs the decode sequence of p against d.
func Decode(p *plan.Plan, d keyed.Decoder) (Result, error) {
	jumps, err := blockJumps(p.Decode)
	if err != nil {
		return Result{}, err
	}

	r := decodeRun{
		p:      p,
		kinds:  fieldKinds(p),
		scopes: make(map[tree.NodeID]keyed.Decoder),
		res: Result{
			Values: make(map[string]any, len(p.Fields)),
			Trace: Trace{
				Scopes: make(map[tree.NodeID]State),
				Fields: make(map[string]Resolution, len(p.Fields)),
			},
		},
	}

	for ip := 0; ip < len(p.Decode); ip++ {
		op := p.Decode[ip]

		switch op.Kind {
		case plan.OpOpenScope:
			err = r.open(d, op)
		case plan.OpProbeAbsence:
			err = r.probe(op)
		case plan.OpIfPresent:
			if r.scopes[op.Scope] == nil {
				ip = jumps[ip]
			}
		case plan.OpElse:
			ip = jumps[ip]
		case plan.OpEndIf:
		case plan.OpDecodeInto:
			err = r.decodeInto(op)
		case plan.OpAssignFallback:
			r.assign(op.Field, op.Fallback, Fallback)
		default:
			err = fmt.Errorf("%w: %s in decode sequence", ErrMalformedPlan, op.Kind)
		}

		if err != nil {
			return Result{}, fmt.Errorf("decoding %s: %w", p.Type, err)
		}
	}

	return r.res, nil
}

func (r *decodeRun) open(d keyed.Decoder, op plan.Op) error {
	if op.Parent == tree.None {
		r.scopes[op.Scope] = d
		r.res.Trace.Scopes[op.Scope] = StatePresent

		return nil
	}

	parent := r.scopes[op.Parent]
	if parent == nil {
		return fmt.Errorf("%w: scope %s opened below an absent parent", ErrMalformedPlan, r.p.ScopeName(op.Scope))
	}

	child, err := parent.Nested(op.Key)
	if err != nil {
		return err
	}

	r.scopes[op.Scope] = child
	r.res.Trace.Scopes[op.Scope] = StatePresent

	return nil
}

func (r *decodeRun) probe(op plan.Op) error {
	parent := r.scopes[op.Parent]
	if parent == nil {
		r.res.Trace.Scopes[op.Scope] = StateCascaded
		return nil
	}

	r.res.Trace.Probes++

	switch keyed.Classify(parent, op.Key) {
	case keyed.Missing:
		r.res.Trace.Scopes[op.Scope] = StateMissing
		return nil
	case keyed.Null:
		r.res.Trace.Scopes[op.Scope] = StateNull
		return nil
	}

	child, err := parent.Nested(op.Key)
	if err != nil {
		return err
	}

	r.scopes[op.Scope] = child
	r.res.Trace.Scopes[op.Scope] = StatePresent

	return nil
}

func (r *decodeRun) decodeInto(op plan.Op) error {
	d := r.scopes[op.Scope]
	if d == nil {
		return fmt.Errorf("%w: field %s decoded from an absent scope", ErrMalformedPlan, op.Field)
	}

	if op.Mode == plan.ModeIfPresent && keyed.Classify(d, op.Key) != keyed.Present {
		r.assign(op.Field, op.Fallback, Fallback)
		return nil
	}

	v, err := d.Value(op.Key)
	if err != nil {
		return fmt.Errorf("field %s: %w", op.Field, err)
	}

	if v == nil {
		return fmt.Errorf("field %s: %w", op.Field, &keyed.DecodeError{Path: d.Path(), Key: op.Key, Err: keyed.ErrValueNotFound})
	}

	v, err = keyed.Convert(v, r.kinds[op.Field])
	if err != nil {
		return fmt.Errorf("field %s: %w", op.Field, &keyed.DecodeError{Path: d.Path(), Key: op.Key, Err: err})
	}

	r.assign(op.Field, v, Decoded)

	return nil
}

func (r *decodeRun) assign(name string, v any, how Resolution) {
	r.res.Values[name] = v
	r.res.Trace.Fields[name] = how
}

// Encode runs the encode sequence of p, reading field values from values.
// Nil or absent values of nilable fields are skipped.
func Encode(p *plan.Plan, values map[string]any, e keyed.Encoder) error {
	kinds := fieldKinds(p)
	scopes := make(map[tree.NodeID]keyed.Encoder)

	for _, op := range p.Encode {
		switch op.Kind {
		case plan.OpOpenWriteScope:
			if op.Parent == tree.None {
				scopes[op.Scope] = e
				continue
			}

			parent, ok := scopes[op.Parent]
			if !ok {
				return fmt.Errorf("encoding %s: %w: scope %s opened before its parent", p.Type, ErrMalformedPlan, p.ScopeName(op.Scope))
			}

			scopes[op.Scope] = parent.Nested(op.Key)
		case plan.OpWriteField:
			v := values[op.Field]
			if v == nil {
				if op.Mode == plan.ModeIfPresent {
					continue
				}

				return fmt.Errorf("encoding %s: field %s: %w", p.Type, op.Field, ErrMissingValue)
			}

			v, err := keyed.Convert(v, kinds[op.Field])
			if err != nil {
				return fmt.Errorf("encoding %s: field %s: %w", p.Type, op.Field, err)
			}

			if err := scopes[op.Scope].Encode(op.Key, v); err != nil {
				return fmt.Errorf("encoding %s: field %s: %w", p.Type, op.Field, err)
			}
		default:
			return fmt.Errorf("encoding %s: %w: %s in encode sequence", p.Type, ErrMalformedPlan, op.Kind)
		}
	}

	return nil
}

func fieldKinds(p *plan.Plan) map[string]keyed.Kind {
	kinds := make(map[string]keyed.Kind, len(p.Fields))

	for _, f := range p.Fields {
		k, _ := keyed.KindOf(f.Type)
		kinds[f.Name] = k
	}

	return kinds
}

// blockJumps maps every IfPresent to its Else (or EndIf) and every Else to
// its EndIf.
func blockJumps(ops []plan.Op) (map[int]int, error) {
	jumps := make(map[int]int)

	var open []int

	for i, op := range ops {
		switch op.Kind {
		case plan.OpIfPresent:
			open = append(open, i)
		case plan.OpElse, plan.OpEndIf:
			if len(open) == 0 {
				return nil, fmt.Errorf("%w: unmatched %s at %d", ErrMalformedPlan, op.Kind, i)
			}

			top := open[len(open)-1]
			jumps[top] = i

			if op.Kind == plan.OpElse {
				open[len(open)-1] = i
			} else {
				open = open[:len(open)-1]
			}
		}
	}

	if len(open) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed blocks", ErrMalformedPlan, len(open))
	}

	return jumps, nil
}
