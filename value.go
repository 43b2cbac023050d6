// value.go
package imp

// ValueTag enumerates the runtime kinds a Value may hold.
// The tag determines which field of Value.Data is valid.
type ValueTag int

const (
	VTInt  ValueTag = iota // int64
	VTBool                 // bool
	VTClo                  // *Closure
	VTExn                  // string (failure message)
)

// Value is the universal runtime carrier produced by evaluation.
//
// VTExn deserves a note: it is a first-class failure value, not a Go error
// and not control flow. Evaluation never aborts; "something went wrong" is
// just another Value the caller can print, bind, or pass along.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Closure pairs parameter names with a body expression and the environment
// captured at creation time. Closures are immutable after creation.
type Closure struct {
	Params []string
	Body   Exp
	Env    Env
}

// Constructors.
func IntVal(n int64) Value    { return Value{Tag: VTInt, Data: n} }
func BoolVal(b bool) Value    { return Value{Tag: VTBool, Data: b} }
func ExnVal(msg string) Value { return Value{Tag: VTExn, Data: msg} }

func CloVal(params []string, body Exp, env Env) Value {
	return Value{Tag: VTClo, Data: &Closure{Params: params, Body: body, Env: env}}
}

// String renders the value the way the print statement does.
func (v Value) String() string { return FormatValue(v) }

// Equal compares structurally. Closures are equal only when parameter lists,
// body trees, and captured environments all are.
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case VTInt:
		return v.Data.(int64) == o.Data.(int64)
	case VTBool:
		return v.Data.(bool) == o.Data.(bool)
	case VTExn:
		return v.Data.(string) == o.Data.(string)
	case VTClo:
		a := v.Data.(*Closure)
		b := o.Data.(*Closure)
		return equalNames(a.Params, b.Params) && ExpEqual(a.Body, b.Body) && a.Env.Equal(b.Env)
	default:
		return false
	}
}
