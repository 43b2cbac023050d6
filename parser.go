// parser.go — recursive-descent parser for Imp.
//
// OVERVIEW
// --------
// Consumes the token stream produced by lexer.go and builds the Exp/Stmt
// trees defined in ast.go. The expression grammar is a fixed precedence
// ladder, left-associative at every level via an iterative left fold:
//
//	expr   := conj ( "or" conj )*
//	conj   := cmp ( "and" cmp )*
//	cmp    := arith ( compOp arith )*     compOp ∈ { <=, >=, /=, ==, <, > }
//	arith  := term ( ("+"|"-") term )*
//	term   := atom ( ("*"|"/") atom )*
//	atom   := integer | boolean | fn … end | if … fi | let … end
//	        | apply … ( … ) | identifier | "(" expr ")"
//
// Statements dispatch on their leading keyword; plain assignment (no leading
// keyword) is tried last so it can never shadow a keyword form:
//
//	stmt := quit; | print e; | if e then s else s fi
//	      | procedure f (params) s endproc | call f (args);
//	      | do s+ od; | id := e;
//
// Because the lexer resolves keywords before identifiers and multi-char
// operators before their prefixes, one token of lookahead commits each
// alternative; there is no backtracking.
//
// Interactive mode, used by the REPL's parse probe, reports constructs cut
// off at end of input as *ParseError{Incomplete: true} so the driver can
// keep reading lines instead of rejecting the input.
package imp

import "fmt"

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// ParseError is a structural failure: the input does not match the grammar
// at (Line, Col). Incomplete marks errors caused purely by running out of
// input in interactive mode.
type ParseError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err is a ParseError caused by end of input
// in interactive mode.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Incomplete
}

// ParseStmt parses a single statement and requires the whole input to be
// consumed.
func ParseStmt(src string) (Stmt, error) {
	p, err := newParser(src, false)
	if err != nil {
		return nil, err
	}
	return p.parseOneStmt()
}

// ParseStmtInteractive parses like ParseStmt but flags constructs cut off
// at end of input as incomplete (see IsIncomplete).
func ParseStmtInteractive(src string) (Stmt, error) {
	p, err := newParser(src, true)
	if err != nil {
		return nil, err
	}
	return p.parseOneStmt()
}

// ParseProgram parses a sequence of statements up to end of input.
func ParseProgram(src string) ([]Stmt, error) {
	p, err := newParser(src, false)
	if err != nil {
		return nil, err
	}
	var out []Stmt
	for !p.atEnd() {
		s, perr := p.parseStmt()
		if perr != nil {
			return nil, perr
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseExp parses a single expression and requires the whole input to be
// consumed.
func ParseExp(src string) (Exp, error) {
	p, err := newParser(src, false)
	if err != nil {
		return nil, err
	}
	e, perr := p.parseExpr()
	if perr != nil {
		return nil, perr
	}
	if !p.atEnd() {
		return nil, p.errAtPeek("unexpected input after expression")
	}
	return e, nil
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

type parser struct {
	toks        []Token
	i           int
	interactive bool
}

func newParser(src string, interactive bool) (*parser, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks, interactive: interactive}, nil
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAtPeek(msg)
}

func (p *parser) errAtPeek(msg string) *ParseError {
	g := p.peek()
	// Columns are 0-based in tokens; report 1-based.
	e := &ParseError{Line: g.Line, Col: g.Col + 1, Msg: msg}
	if g.Type == EOF && p.interactive {
		e.Incomplete = true
	}
	return e
}

func (p *parser) parseOneStmt() (Stmt, error) {
	s, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errAtPeek("unexpected input after statement")
	}
	return s, nil
}

// ───────────────────────────── expression grammar ───────────────────────────

// chain levels, lowest precedence first; each level folds left.

func (p *parser) parseExpr() (Exp, error) {
	left, err := p.parseConj()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		right, rerr := p.parseConj()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinOpExp{Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseConj() (Exp, error) {
	left, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		right, rerr := p.parseCmp()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinOpExp{Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseCmp() (Exp, error) {
	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	for p.match(LESS_EQ, GREATER_EQ, NEQ, EQ, LESS, GREATER) {
		op := p.prev().Lexeme
		right, rerr := p.parseArith()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinOpExp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseArith() (Exp, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS) {
		op := p.prev().Lexeme
		right, rerr := p.parseTerm()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinOpExp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Exp, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.match(MULT, DIV) {
		op := p.prev().Lexeme
		right, rerr := p.parseAtom()
		if rerr != nil {
			return nil, rerr
		}
		left = &BinOpExp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAtom() (Exp, error) {
	switch {
	case p.match(INTEGER):
		return &IntExp{Value: p.prev().Literal.(int64)}, nil

	case p.match(BOOLEAN):
		return &BoolExp{Value: p.prev().Literal.(bool)}, nil

	case p.match(FN):
		return p.parseFunExp()

	case p.match(IF):
		return p.parseIfExp()

	case p.match(LET):
		return p.parseLetExp()

	case p.match(APPLY):
		return p.parseAppExp()

	case p.match(ID):
		return &VarExp{Name: p.prev().Lexeme}, nil

	case p.match(LROUND):
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "expected ')'"); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, p.errAtPeek("expected expression")
}

// fn [ params ] body end
func (p *parser) parseFunExp() (Exp, error) {
	if _, err := p.need(LSQUARE, "expected '[' after 'fn'"); err != nil {
		return nil, err
	}
	params, err := p.parseParams(RSQUARE, "expected ']' after parameters")
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(END, "expected 'end' after function body"); err != nil {
		return nil, err
	}
	return &FunExp{Params: params, Body: body}, nil
}

// if c then a else b fi
func (p *parser) parseIfExp() (Exp, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(THEN, "expected 'then'"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(ELSE, "expected 'else'"); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(FI, "expected 'fi'"); err != nil {
		return nil, err
	}
	return &IfExp{Cond: cond, Then: then, Else: els}, nil
}

// let [ x := e; y := e ] body end
func (p *parser) parseLetExp() (Exp, error) {
	if _, err := p.need(LSQUARE, "expected '[' after 'let'"); err != nil {
		return nil, err
	}
	var binds []Bind
	if !p.match(RSQUARE) {
		for {
			name, err := p.need(ID, "expected binding name")
			if err != nil {
				return nil, err
			}
			if _, err := p.need(ASSIGN, "expected ':=' in binding"); err != nil {
				return nil, err
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			binds = append(binds, Bind{Name: name.Lexeme, Exp: e})
			if !p.match(SEMI) {
				break
			}
		}
		if _, err := p.need(RSQUARE, "expected ']' after bindings"); err != nil {
			return nil, err
		}
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(END, "expected 'end' after let body"); err != nil {
		return nil, err
	}
	return &LetExp{Binds: binds, Body: body}, nil
}

// apply f ( args )
func (p *parser) parseAppExp() (Exp, error) {
	fn, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "expected '(' after callee"); err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &AppExp{Fn: fn, Args: args}, nil
}

// ───────────────────────────── statement grammar ─────────────────────────────

func (p *parser) parseStmt() (Stmt, error) {
	switch {
	case p.match(QUIT):
		if _, err := p.need(SEMI, "expected ';' after 'quit'"); err != nil {
			return nil, err
		}
		return &QuitStmt{}, nil

	case p.match(PRINT):
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(SEMI, "expected ';' after print statement"); err != nil {
			return nil, err
		}
		return &PrintStmt{Exp: e}, nil

	case p.match(IF):
		return p.parseIfStmt()

	case p.match(PROCEDURE):
		return p.parseProcStmt()

	case p.match(CALL):
		return p.parseCallStmt()

	case p.match(DO):
		return p.parseSeqStmt()

	// Assignment last: it has no leading keyword to commit on.
	case p.match(ID):
		name := p.prev().Lexeme
		if _, err := p.need(ASSIGN, "expected ':=' after variable name"); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(SEMI, "expected ';' after assignment"); err != nil {
			return nil, err
		}
		return &SetStmt{Name: name, Exp: e}, nil
	}
	return nil, p.errAtPeek("expected statement")
}

func (p *parser) parseIfStmt() (Stmt, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(THEN, "expected 'then'"); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(ELSE, "expected 'else'"); err != nil {
		return nil, err
	}
	els, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(FI, "expected 'fi'"); err != nil {
		return nil, err
	}
	return &IfStmt{Cond: cond, Then: then, Else: els}, nil
}

// procedure f ( params ) body endproc
func (p *parser) parseProcStmt() (Stmt, error) {
	name, err := p.need(ID, "expected procedure name")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "expected '(' after procedure name"); err != nil {
		return nil, err
	}
	params, perr := p.parseParams(RROUND, "expected ')' after parameters")
	if perr != nil {
		return nil, perr
	}
	body, berr := p.parseStmt()
	if berr != nil {
		return nil, berr
	}
	if _, err := p.need(ENDPROC, "expected 'endproc'"); err != nil {
		return nil, err
	}
	return &ProcStmt{Name: name.Lexeme, Params: params, Body: body}, nil
}

// call f ( args ) ;
func (p *parser) parseCallStmt() (Stmt, error) {
	name, err := p.need(ID, "expected procedure name after 'call'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "expected '(' after procedure name"); err != nil {
		return nil, err
	}
	args, aerr := p.parseArgs()
	if aerr != nil {
		return nil, aerr
	}
	if _, err := p.need(SEMI, "expected ';' after call statement"); err != nil {
		return nil, err
	}
	return &CallStmt{Name: name.Lexeme, Args: args}, nil
}

// do stmt+ od ;
func (p *parser) parseSeqStmt() (Stmt, error) {
	var stmts []Stmt
	for !p.match(OD) {
		if p.atEnd() {
			return nil, p.errAtPeek("expected 'od'")
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.need(SEMI, "expected ';' after 'od'"); err != nil {
		return nil, err
	}
	return &SeqStmt{Stmts: stmts}, nil
}

// ─────────────────────────────── shared pieces ──────────────────────────────

// parseParams reads a possibly empty comma-separated identifier list up to
// the closing token (already positioned after the opener).
func (p *parser) parseParams(closer TokenType, closeMsg string) ([]string, error) {
	var params []string
	if p.match(closer) {
		return params, nil
	}
	for {
		id, err := p.need(ID, "expected parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, id.Lexeme)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(closer, closeMsg); err != nil {
		return nil, err
	}
	return params, nil
}

// parseArgs reads a possibly empty comma-separated expression list up to ')'
// (already positioned after the '(').
func (p *parser) parseArgs() ([]Exp, error) {
	var args []Exp
	if p.match(RROUND) {
		return args, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RROUND, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}
