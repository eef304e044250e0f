package plan

import (
	"errors"
	"fmt"

	"pathcodec/internal/tree"
)

var (
	// ErrUnbalancedBlock reports IfPresent/Else/EndIf markers that do not nest.
	ErrUnbalancedBlock = errors.New("unbalanced block")
	// ErrScopeNotOpen reports an op using a scope before it is opened.
	ErrScopeNotOpen = errors.New("scope not open")
	// ErrFieldCoverage reports a field decoded or written other than exactly once.
	ErrFieldCoverage = errors.New("field coverage")
)

// Validate checks the structural invariants of both operation sequences.
func (p *Plan) Validate() error {
	if err := p.validateDecode(); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if err := p.validateEncode(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	return nil
}

func (p *Plan) validateDecode() error {
	open := make(map[tree.NodeID]OpKind)
	decoded := make(map[string]int)

	var stack []Op

	for i, op := range p.Decode {
		switch op.Kind {
		case OpOpenScope, OpProbeAbsence:
			if _, ok := open[op.Scope]; ok {
				return fmt.Errorf("op %d: scope %s opened twice", i, p.ScopeName(op.Scope))
			}

			if op.Scope != tree.Root {
				if _, ok := open[op.Parent]; !ok {
					return fmt.Errorf("op %d: %w: parent of %s", i, ErrScopeNotOpen, p.ScopeName(op.Scope))
				}
			}

			open[op.Scope] = op.Kind
		case OpIfPresent:
			if open[op.Scope] != OpProbeAbsence {
				return fmt.Errorf("op %d: %w: block on unprobed scope %s", i, ErrScopeNotOpen, p.ScopeName(op.Scope))
			}

			stack = append(stack, op)
		case OpElse:
			if len(stack) == 0 || stack[len(stack)-1].Kind != OpIfPresent || stack[len(stack)-1].Scope != op.Scope {
				return fmt.Errorf("op %d: %w: else of %s", i, ErrUnbalancedBlock, p.ScopeName(op.Scope))
			}

			stack[len(stack)-1] = op
		case OpEndIf:
			if len(stack) == 0 || stack[len(stack)-1].Scope != op.Scope {
				return fmt.Errorf("op %d: %w: end of %s", i, ErrUnbalancedBlock, p.ScopeName(op.Scope))
			}

			stack = stack[:len(stack)-1]
		case OpDecodeInto:
			if _, ok := open[op.Scope]; !ok {
				return fmt.Errorf("op %d: %w: %s for field %s", i, ErrScopeNotOpen, p.ScopeName(op.Scope), op.Field)
			}

			decoded[op.Field]++
		case OpAssignFallback:
			if len(stack) == 0 || stack[len(stack)-1].Kind != OpElse {
				return fmt.Errorf("op %d: fallback of %s outside of an else block", i, op.Field)
			}
		default:
			return fmt.Errorf("op %d: unexpected %s", i, op.Kind)
		}
	}

	if len(stack) > 0 {
		return fmt.Errorf("%w: %d blocks left open", ErrUnbalancedBlock, len(stack))
	}

	for _, f := range p.Fields {
		if decoded[f.Name] != 1 {
			return fmt.Errorf("%w: %s decoded %d times", ErrFieldCoverage, f.Name, decoded[f.Name])
		}
	}

	return nil
}

func (p *Plan) validateEncode() error {
	open := make(map[tree.NodeID]struct{})
	written := make(map[string]int)

	for i, op := range p.Encode {
		switch op.Kind {
		case OpOpenWriteScope:
			if op.Scope != tree.Root {
				if _, ok := open[op.Parent]; !ok {
					return fmt.Errorf("op %d: %w: parent of %s", i, ErrScopeNotOpen, p.ScopeName(op.Scope))
				}
			}

			open[op.Scope] = struct{}{}
		case OpWriteField:
			if _, ok := open[op.Scope]; !ok {
				return fmt.Errorf("op %d: %w: %s for field %s", i, ErrScopeNotOpen, p.ScopeName(op.Scope), op.Field)
			}

			written[op.Field]++
		default:
			return fmt.Errorf("op %d: unexpected %s", i, op.Kind)
		}
	}

	for _, f := range p.Fields {
		if written[f.Name] != 1 {
			return fmt.Errorf("%w: %s written %d times", ErrFieldCoverage, f.Name, written[f.Name])
		}
	}

	return nil
}
