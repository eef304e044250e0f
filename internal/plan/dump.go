package plan

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"pathcodec/internal/tree"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump returns a deep debug dump of the operation sequences of p.
func (p *Plan) Dump() string {
	var b strings.Builder

	fmt.Fprintf(&b, "plan %s (%s)\n", p.Type, p.Kind)
	b.WriteString("decode ")
	dumpConfig.Fdump(&b, p.Decode)
	b.WriteString("encode ")
	dumpConfig.Fdump(&b, p.Encode)

	return b.String()
}

// Listing returns a one-op-per-line outline of both sequences, indented by block.
func (p *Plan) Listing() string {
	var b strings.Builder

	fmt.Fprintf(&b, "decode %s:\n", p.Type)

	depth := 1
	for _, op := range p.Decode {
		if op.Kind == OpElse || op.Kind == OpEndIf {
			depth--
		}

		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(p.describe(op))
		b.WriteByte('\n')

		if op.Kind == OpIfPresent || op.Kind == OpElse {
			depth++
		}
	}

	fmt.Fprintf(&b, "encode %s:\n", p.Type)

	for _, op := range p.Encode {
		b.WriteString("  ")
		b.WriteString(p.describe(op))
		b.WriteByte('\n')
	}

	return b.String()
}

func (p *Plan) describe(op Op) string {
	scope := p.ScopeName(op.Scope)

	switch op.Kind {
	case OpOpenScope, OpProbeAbsence, OpOpenWriteScope:
		if op.Parent == tree.None {
			return fmt.Sprintf("%s %s", op.Kind, scope)
		}

		return fmt.Sprintf("%s %s = %s[%q]", op.Kind, scope, p.ScopeName(op.Parent), op.Key)
	case OpIfPresent, OpElse, OpEndIf:
		return fmt.Sprintf("%s %s", op.Kind, scope)
	case OpDecodeInto:
		if op.Mode == ModeIfPresent {
			return fmt.Sprintf("%s %s = %s[%q] ?? %#v", op.Kind, op.Field, scope, op.Key, op.Fallback)
		}

		return fmt.Sprintf("%s %s = %s[%q]", op.Kind, op.Field, scope, op.Key)
	case OpAssignFallback:
		return fmt.Sprintf("%s %s = %#v", op.Kind, op.Field, op.Fallback)
	case OpWriteField:
		return fmt.Sprintf("%s %s[%q] = %s (%s)", op.Kind, scope, op.Key, op.Field, op.Mode)
	default:
		return op.Kind.String()
	}
}
