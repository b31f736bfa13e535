package nbt

import (
	"fmt"
	"strings"
)

const (
	prettyMaxDepth      = 10
	prettyTruncateAbove = 10
	prettyTruncateTo    = 8
)

// Pretty renders the tree for human eyes. Nesting deeper than
// prettyMaxDepth is elided, and long arrays and lists are truncated.
// The exact layout is a debugging aid, not a compatibility contract.
func (n *Node) Pretty() string {
	var sb strings.Builder
	prettyNode(&sb, n, 0)
	return sb.String()
}

func (n *Node) String() string { return n.Pretty() }

func prettyNode(sb *strings.Builder, n *Node, level int) {
	if level > prettyMaxDepth {
		return
	}
	indent := strings.Repeat("  ", level)
	sb.WriteString(indent)
	if n.Name != "" {
		fmt.Fprintf(sb, "%s: ", n.Name)
	}
	prettyValue(sb, n.Value, level)
}

func prettyValue(sb *strings.Builder, value Value, level int) {
	switch v := value.(type) {
	case End:
		sb.WriteString("END")
	case Byte:
		fmt.Fprintf(sb, "byte %d", int8(v))
	case Short:
		fmt.Fprintf(sb, "short %d", int16(v))
	case Int:
		fmt.Fprintf(sb, "int %d", int32(v))
	case Long:
		fmt.Fprintf(sb, "long %d", int64(v))
	case Float:
		fmt.Fprintf(sb, "float %v", float32(v))
	case Double:
		fmt.Fprintf(sb, "double %v", float64(v))
	case String:
		fmt.Fprintf(sb, "string %q", string(v))
	case ByteArray:
		sb.WriteString("byte array ")
		prettySeq(sb, len(v), func(i int) string { return fmt.Sprintf("%d", int8(v[i])) })
	case IntArray:
		sb.WriteString("int array ")
		prettySeq(sb, len(v), func(i int) string { return fmt.Sprintf("%d", v[i]) })
	case LongArray:
		sb.WriteString("long array ")
		prettySeq(sb, len(v), func(i int) string { return fmt.Sprintf("%d", v[i]) })
	case *List:
		prettyList(sb, v, level)
	case *Compound:
		sb.WriteString("Compound {")
		for i := range v.Fields {
			sb.WriteString("\n")
			prettyNode(sb, &v.Fields[i], level+1)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("  ", level))
		sb.WriteString("}")
	}
}

func prettyList(sb *strings.Builder, l *List, level int) {
	switch l.Elem {
	case TagCompound, TagList:
		sb.WriteString("List {")
		shown := len(l.Items)
		if shown > prettyTruncateAbove {
			shown = prettyTruncateTo
		}
		for _, it := range l.Items[:shown] {
			sb.WriteString("\n")
			if level+1 <= prettyMaxDepth {
				sb.WriteString(strings.Repeat("  ", level+1))
				prettyValue(sb, it, level+1)
			}
		}
		if shown < len(l.Items) {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat("  ", level+1))
			sb.WriteString("...")
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("  ", level))
		sb.WriteString("}")
	default:
		fmt.Fprintf(sb, "List<%s> ", l.Elem)
		prettySeq(sb, len(l.Items), func(i int) string {
			var one strings.Builder
			prettyValue(&one, l.Items[i], level)
			return one.String()
		})
	}
}

// prettySeq prints up to prettyTruncateTo elements of sequences longer
// than prettyTruncateAbove, then an ellipsis.
func prettySeq(sb *strings.Builder, n int, elem func(int) string) {
	sb.WriteString("{")
	shown := n
	if n > prettyTruncateAbove {
		shown = prettyTruncateTo
	}
	for i := 0; i < shown; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elem(i))
	}
	if shown < n {
		sb.WriteString(", ...")
	}
	sb.WriteString("}")
}
