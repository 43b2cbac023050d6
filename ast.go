// ast.go — syntax trees for Imp expressions and statements.
//
// Exp and Stmt are closed sums: each variant is a struct implementing the
// marker interface, and eval/exec switch exhaustively over them. Every node
// knows how to render itself back to canonical concrete syntax (String);
// re-parsing a rendering yields a structurally equal tree, which the parser
// tests rely on.
package imp

import "strings"

// Exp is an expression node. Expressions are immutable once parsed.
type Exp interface {
	expNode()
	String() string
}

// Stmt is a statement node. Statements are immutable once parsed.
type Stmt interface {
	stmtNode()
	String() string
}

// ----- expressions -----

type IntExp struct {
	Value int64
}

type BoolExp struct {
	Value bool
}

type VarExp struct {
	Name string
}

// BinOpExp applies a named binary operator ("+", "and", "<=", ...).
// The evaluator resolves Op against its operator tables.
type BinOpExp struct {
	Op    string
	Left  Exp
	Right Exp
}

type IfExp struct {
	Cond Exp
	Then Exp
	Else Exp
}

// FunExp is a function literal: fn [x, y] body end.
type FunExp struct {
	Params []string
	Body   Exp
}

// Bind is one name/expression pair in a let binding list.
type Bind struct {
	Name string
	Exp  Exp
}

// LetExp binds all pairs simultaneously: every right-hand side is evaluated
// in the outer environment before any binding takes effect.
type LetExp struct {
	Binds []Bind
	Body  Exp
}

// AppExp applies a callee expression to argument expressions:
// apply f (a, b).
type AppExp struct {
	Fn   Exp
	Args []Exp
}

func (*IntExp) expNode()   {}
func (*BoolExp) expNode()  {}
func (*VarExp) expNode()   {}
func (*BinOpExp) expNode() {}
func (*IfExp) expNode()    {}
func (*FunExp) expNode()   {}
func (*LetExp) expNode()   {}
func (*AppExp) expNode()   {}

// ----- statements -----

type SetStmt struct {
	Name string
	Exp  Exp
}

type PrintStmt struct {
	Exp Exp
}

// QuitStmt terminates the REPL session.
type QuitStmt struct{}

type IfStmt struct {
	Cond Exp
	Then Stmt
	Else Stmt
}

// ProcStmt declares a named procedure. The whole node is stored in the
// procedure environment so calls can see the parameter list and body.
type ProcStmt struct {
	Name   string
	Params []string
	Body   Stmt
}

type CallStmt struct {
	Name string
	Args []Exp
}

type SeqStmt struct {
	Stmts []Stmt
}

func (*SetStmt) stmtNode()   {}
func (*PrintStmt) stmtNode() {}
func (*QuitStmt) stmtNode()  {}
func (*IfStmt) stmtNode()    {}
func (*ProcStmt) stmtNode()  {}
func (*CallStmt) stmtNode()  {}
func (*SeqStmt) stmtNode()   {}

// ----- canonical rendering -----

func (e *IntExp) String() string  { return formatInt(e.Value) }
func (e *BoolExp) String() string { return formatBool(e.Value) }
func (e *VarExp) String() string  { return e.Name }

func (e *BinOpExp) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

func (e *IfExp) String() string {
	return "if " + e.Cond.String() + " then " + e.Then.String() +
		" else " + e.Else.String() + " fi"
}

func (e *FunExp) String() string {
	return "fn [" + strings.Join(e.Params, ", ") + "] " + e.Body.String() + " end"
}

func (e *LetExp) String() string {
	binds := make([]string, len(e.Binds))
	for i, b := range e.Binds {
		binds[i] = b.Name + " := " + b.Exp.String()
	}
	return "let [" + strings.Join(binds, "; ") + "] " + e.Body.String() + " end"
}

func (e *AppExp) String() string {
	return "apply " + e.Fn.String() + " (" + joinExps(e.Args) + ")"
}

func (s *SetStmt) String() string   { return s.Name + " := " + s.Exp.String() + ";" }
func (s *PrintStmt) String() string { return "print " + s.Exp.String() + ";" }
func (s *QuitStmt) String() string  { return "quit;" }

func (s *IfStmt) String() string {
	return "if " + s.Cond.String() + " then " + s.Then.String() +
		" else " + s.Else.String() + " fi"
}

func (s *ProcStmt) String() string {
	return "procedure " + s.Name + " (" + strings.Join(s.Params, ", ") + ") " +
		s.Body.String() + " endproc"
}

func (s *CallStmt) String() string {
	return "call " + s.Name + " (" + joinExps(s.Args) + ");"
}

func (s *SeqStmt) String() string {
	var b strings.Builder
	b.WriteString("do")
	for _, st := range s.Stmts {
		b.WriteByte(' ')
		b.WriteString(st.String())
	}
	b.WriteString(" od;")
	return b.String()
}

func joinExps(xs []Exp) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return strings.Join(parts, ", ")
}

// ----- structural equality -----

// ExpEqual compares two expression trees structurally.
func ExpEqual(a, b Exp) bool {
	switch x := a.(type) {
	case *IntExp:
		y, ok := b.(*IntExp)
		return ok && x.Value == y.Value
	case *BoolExp:
		y, ok := b.(*BoolExp)
		return ok && x.Value == y.Value
	case *VarExp:
		y, ok := b.(*VarExp)
		return ok && x.Name == y.Name
	case *BinOpExp:
		y, ok := b.(*BinOpExp)
		return ok && x.Op == y.Op && ExpEqual(x.Left, y.Left) && ExpEqual(x.Right, y.Right)
	case *IfExp:
		y, ok := b.(*IfExp)
		return ok && ExpEqual(x.Cond, y.Cond) && ExpEqual(x.Then, y.Then) && ExpEqual(x.Else, y.Else)
	case *FunExp:
		y, ok := b.(*FunExp)
		return ok && equalNames(x.Params, y.Params) && ExpEqual(x.Body, y.Body)
	case *LetExp:
		y, ok := b.(*LetExp)
		if !ok || len(x.Binds) != len(y.Binds) {
			return false
		}
		for i := range x.Binds {
			if x.Binds[i].Name != y.Binds[i].Name || !ExpEqual(x.Binds[i].Exp, y.Binds[i].Exp) {
				return false
			}
		}
		return ExpEqual(x.Body, y.Body)
	case *AppExp:
		y, ok := b.(*AppExp)
		return ok && ExpEqual(x.Fn, y.Fn) && equalExps(x.Args, y.Args)
	default:
		return false
	}
}

// StmtEqual compares two statement trees structurally.
func StmtEqual(a, b Stmt) bool {
	switch x := a.(type) {
	case *SetStmt:
		y, ok := b.(*SetStmt)
		return ok && x.Name == y.Name && ExpEqual(x.Exp, y.Exp)
	case *PrintStmt:
		y, ok := b.(*PrintStmt)
		return ok && ExpEqual(x.Exp, y.Exp)
	case *QuitStmt:
		_, ok := b.(*QuitStmt)
		return ok
	case *IfStmt:
		y, ok := b.(*IfStmt)
		return ok && ExpEqual(x.Cond, y.Cond) && StmtEqual(x.Then, y.Then) && StmtEqual(x.Else, y.Else)
	case *ProcStmt:
		y, ok := b.(*ProcStmt)
		return ok && x.Name == y.Name && equalNames(x.Params, y.Params) && StmtEqual(x.Body, y.Body)
	case *CallStmt:
		y, ok := b.(*CallStmt)
		return ok && x.Name == y.Name && equalExps(x.Args, y.Args)
	case *SeqStmt:
		y, ok := b.(*SeqStmt)
		if !ok || len(x.Stmts) != len(y.Stmts) {
			return false
		}
		for i := range x.Stmts {
			if !StmtEqual(x.Stmts[i], y.Stmts[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalExps(a, b []Exp) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ExpEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
