package luna

import (
	"strconv"
	"strings"
)

// indentUnit is the fixed indentation added per table nesting level.
const indentUnit = "  "

// Stringify renders v as indented, human-readable text. indent is the
// current nesting level; pass 0 at the top.
//
// Nil renders as "nil", booleans as "true"/"false", numbers with Go's
// shortest-form float formatting, strings quoted (embedded quotes are not
// escaped), error values as a bracketed diagnostic, and tables as a
// brace-delimited block with one "key = value" pair per line. Table pair
// order follows map iteration order and is therefore unspecified.
func Stringify(v Value, indent int) string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return `"` + v.s + `"`
	case KindError:
		return "[error: " + v.s + "]"
	case KindTable:
		var b strings.Builder
		b.WriteString("{\n")
		inner := strings.Repeat(indentUnit, indent+1)
		for k, elem := range v.t {
			b.WriteString(inner)
			b.WriteString(k.String())
			b.WriteString(" = ")
			b.WriteString(Stringify(elem, indent+1))
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(indentUnit, indent))
		b.WriteString("}")
		return b.String()
	default:
		return "nil"
	}
}

// formatNumber renders a float the way Lua's default tostring does for
// integral values: no trailing ".0".
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
