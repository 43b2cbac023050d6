// interpreter.go — evaluation and execution for Imp.
//
// Two layers, kept deliberately separate:
//
//   - Eval computes a Value from an expression and a variable environment.
//     It is pure: no I/O, no mutation of its input. Semantic failures
//     (unknown variable, type mismatch, division by zero, …) come back as
//     ExnVal values, never as Go errors.
//
//   - Exec runs a statement against a procedure environment and a variable
//     environment, returning the printed output plus the updated mappings.
//     The inputs are never mutated; callers adopt the returned environments.
//
// The Interpreter type owns the long-lived session state (Procs, Global)
// and feeds each input line through parse → exec, carrying the environments
// forward. Parse failures reject the line and leave the session untouched.
package imp

// Fixed operator tables. Integer operators close over division so that
// dividing by zero produces a failure value instead of a Go panic.

var intOps = map[string]func(a, b int64) Value{
	"+": func(a, b int64) Value { return IntVal(a + b) },
	"-": func(a, b int64) Value { return IntVal(a - b) },
	"*": func(a, b int64) Value { return IntVal(a * b) },
	"/": func(a, b int64) Value {
		if b == 0 {
			return ExnVal("Division by 0")
		}
		return IntVal(a / b)
	},
}

var cmpOps = map[string]func(a, b int64) bool{
	"<":  func(a, b int64) bool { return a < b },
	">":  func(a, b int64) bool { return a > b },
	"<=": func(a, b int64) bool { return a <= b },
	">=": func(a, b int64) bool { return a >= b },
	"/=": func(a, b int64) bool { return a != b },
	"==": func(a, b int64) bool { return a == b },
}

var boolOps = map[string]func(a, b bool) bool{
	"and": func(a, b bool) bool { return a && b },
	"or":  func(a, b bool) bool { return a || b },
}

// Eval computes the value of e under env. See the file header for the
// failure discipline; the exhaustive list of failure messages lives in the
// per-case comments below.
func Eval(e Exp, env Env) Value {
	switch x := e.(type) {
	case *IntExp:
		return IntVal(x.Value)

	case *BoolExp:
		return BoolVal(x.Value)

	case *VarExp:
		if v, ok := env.Lookup(x.Name); ok {
			return v
		}
		return ExnVal("No match in env")

	case *BinOpExp:
		return evalBinOp(x, env)

	case *IfExp:
		// Exactly one branch is evaluated.
		c := Eval(x.Cond, env)
		if c.Tag != VTBool {
			return ExnVal("Condition is not a Bool")
		}
		if c.Data.(bool) {
			return Eval(x.Then, env)
		}
		return Eval(x.Else, env)

	case *FunExp:
		// Capture the environment as it exists right now.
		return CloVal(x.Params, x.Body, env)

	case *LetExp:
		// Simultaneous binding: every right-hand side sees the outer env.
		binds := make(Env, len(x.Binds))
		for _, b := range x.Binds {
			binds[b.Name] = Eval(b.Exp, env)
		}
		return Eval(x.Body, env.Overlay(binds))

	case *AppExp:
		f := Eval(x.Fn, env)
		if f.Tag != VTClo {
			return ExnVal("Apply to non-closure")
		}
		clo := f.Data.(*Closure)
		if len(x.Args) != len(clo.Params) {
			return ExnVal("Wrong number of arguments")
		}
		// Arguments evaluate in the caller's env; the body evaluates in the
		// captured env with parameters overlaid.
		binds := make(Env, len(x.Args))
		for i, a := range x.Args {
			binds[clo.Params[i]] = Eval(a, env)
		}
		return Eval(clo.Body, clo.Env.Overlay(binds))
	}
	return ExnVal("Cannot lift")
}

func evalBinOp(x *BinOpExp, env Env) Value {
	l := Eval(x.Left, env)
	r := Eval(x.Right, env)

	if f, ok := intOps[x.Op]; ok {
		if l.Tag != VTInt || r.Tag != VTInt {
			return ExnVal("Cannot lift")
		}
		return f(l.Data.(int64), r.Data.(int64))
	}
	if f, ok := cmpOps[x.Op]; ok {
		if l.Tag != VTInt || r.Tag != VTInt {
			return ExnVal("Cannot lift")
		}
		return BoolVal(f(l.Data.(int64), r.Data.(int64)))
	}
	if f, ok := boolOps[x.Op]; ok {
		if l.Tag != VTBool || r.Tag != VTBool {
			return ExnVal("Cannot lift")
		}
		return BoolVal(f(l.Data.(bool), r.Data.(bool)))
	}
	return ExnVal("Cannot lift")
}

// Exec runs s and returns (printed output, updated PEnv, updated Env).
// Inputs are snapshots and are never written to.
func Exec(s Stmt, penv PEnv, env Env) (string, PEnv, Env) {
	switch x := s.(type) {
	case *PrintStmt:
		return FormatValue(Eval(x.Exp, env)), penv, env

	case *SetStmt:
		return "", penv, env.Insert(x.Name, Eval(x.Exp, env))

	case *QuitStmt:
		// Terminal: the session driver decides to stop; nothing to run here.
		return "", penv, env

	case *IfStmt:
		// Unlike the expression form, a bad condition surfaces as printed
		// output, not as a value.
		c := Eval(x.Cond, env)
		if c.Tag != VTBool {
			return FormatValue(ExnVal("Condition is not a Bool")), penv, env
		}
		if c.Data.(bool) {
			return Exec(x.Then, penv, env)
		}
		return Exec(x.Else, penv, env)

	case *ProcStmt:
		return "", penv.Insert(x.Name, x), env

	case *CallStmt:
		decl, ok := penv.Lookup(x.Name)
		if !ok {
			return "Procedure " + x.Name + " undefined", penv, env
		}
		if len(x.Args) != len(decl.Params) {
			return FormatValue(ExnVal("Wrong number of arguments")), penv, env
		}
		// Arguments evaluate in the caller's env; the body sees the caller's
		// bindings with parameters overlaid, plus the current PEnv (so the
		// procedure can call itself and anything declared so far). The env
		// the body produces replaces the caller's for what follows.
		binds := make(Env, len(x.Args))
		for i, a := range x.Args {
			binds[decl.Params[i]] = Eval(a, env)
		}
		return Exec(decl.Body, penv, env.Overlay(binds))

	case *SeqStmt:
		out := ""
		for _, st := range x.Stmts {
			var o string
			o, penv, env = Exec(st, penv, env)
			out += o
		}
		return out, penv, env
	}
	return "", penv, env
}

// Interpreter owns a session's long-lived state: the procedure environment
// and the global variable environment, both empty at start.
type Interpreter struct {
	Procs  PEnv
	Global Env
}

// NewInterpreter returns a fresh session with empty environments.
func NewInterpreter() *Interpreter {
	return &Interpreter{Procs: NewPEnv(), Global: NewEnv()}
}

// ExecSource parses src as one statement and executes it against the
// session state, adopting the updated environments.
//
// Returns:
//   - out:  the statement's printed output ("" for statements that print
//     nothing).
//   - quit: true when src parses to the quit statement; the statement is
//     not executed and the session state is unchanged.
//   - err:  a lex/parse failure. The line is rejected and the session
//     state is unchanged.
func (ip *Interpreter) ExecSource(src string) (out string, quit bool, err error) {
	s, perr := ParseStmt(src)
	if perr != nil {
		return "", false, perr
	}
	if _, isQuit := s.(*QuitStmt); isQuit {
		return "", true, nil
	}
	out, ip.Procs, ip.Global = Exec(s, ip.Procs, ip.Global)
	return out, false, nil
}

// ExecProgram parses src as a statement sequence and executes it
// statement by statement, stopping early at a top-level quit.
func (ip *Interpreter) ExecProgram(src string) (out string, quit bool, err error) {
	stmts, perr := ParseProgram(src)
	if perr != nil {
		return "", false, perr
	}
	for _, s := range stmts {
		if _, isQuit := s.(*QuitStmt); isQuit {
			return out, true, nil
		}
		var o string
		o, ip.Procs, ip.Global = Exec(s, ip.Procs, ip.Global)
		out += o
	}
	return out, false, nil
}
