// printer.go — textual rendering of runtime values.
//
// FormatValue is the single place that decides how the print statement (and
// the REPL) shows a Value:
//
//	integers   decimal                            42
//	booleans   literal form                       true
//	closures   angle-bracketed                    <fn [x] (x + 1) | {y := 2}>
//	failures   "exn: " + message                  exn: Division by 0
//
// Closure environments render with keys in sorted order so the output is
// deterministic regardless of map iteration order.
package imp

import (
	"sort"
	"strconv"
	"strings"
)

// FormatValue renders v the way the print statement does.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTInt:
		return formatInt(v.Data.(int64))
	case VTBool:
		return formatBool(v.Data.(bool))
	case VTClo:
		c := v.Data.(*Closure)
		return "<fn [" + strings.Join(c.Params, ", ") + "] " +
			c.Body.String() + " | " + formatEnv(c.Env) + ">"
	case VTExn:
		return "exn: " + v.Data.(string)
	default:
		return "<unknown>"
	}
}

func formatInt(n int64) string { return strconv.FormatInt(n, 10) }

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func formatEnv(env Env) string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(" := ")
		b.WriteString(FormatValue(env[k]))
	}
	b.WriteByte('}')
	return b.String()
}
