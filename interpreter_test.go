// interpreter_test.go
package imp

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	e, err := ParseExp(src)
	if err != nil {
		t.Fatalf("ParseExp error: %v\nsource:\n%s", err, src)
	}
	return Eval(e, NewEnv())
}

func evalIn(t *testing.T, src string, env Env) Value {
	t.Helper()
	e, err := ParseExp(src)
	if err != nil {
		t.Fatalf("ParseExp error: %v\nsource:\n%s", err, src)
	}
	return Eval(e, env)
}

func wantInt(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Tag != VTInt || v.Data.(int64) != n {
		t.Fatalf("want int %d, got %#v", n, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != VTBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

func wantExn(t *testing.T, v Value, msg string) {
	t.Helper()
	if v.Tag != VTExn {
		t.Fatalf("want exn %q, got %#v", msg, v)
	}
	if got := v.Data.(string); got != msg {
		t.Fatalf("want exn %q, got %q", msg, got)
	}
}

// --- literals & variables ---------------------------------------------------

func Test_Eval_Literals(t *testing.T) {
	wantInt(t, evalSrc(t, `42`), 42)
	wantBool(t, evalSrc(t, `true`), true)
	wantBool(t, evalSrc(t, `false`), false)
}

func Test_Eval_Variable_Lookup(t *testing.T) {
	env := NewEnv().Insert("x", IntVal(7))
	wantInt(t, evalIn(t, `x`, env), 7)
	wantExn(t, evalIn(t, `y`, env), "No match in env")
}

// --- operators ---------------------------------------------------------------

func Test_Eval_Integer_Arithmetic(t *testing.T) {
	wantInt(t, evalSrc(t, `1 + 2 * 3`), 7)
	wantInt(t, evalSrc(t, `10 - 3 - 2`), 5)
	wantInt(t, evalSrc(t, `7 / 2`), 3) // truncating division
	wantInt(t, evalSrc(t, `0 - 7`), -7)
}

func Test_Eval_Division_By_Zero(t *testing.T) {
	wantExn(t, evalSrc(t, `1 / 0`), "Division by 0")
	wantExn(t, evalSrc(t, `1 / (2 - 2)`), "Division by 0")
}

func Test_Eval_Comparisons(t *testing.T) {
	wantBool(t, evalSrc(t, `1 < 2`), true)
	wantBool(t, evalSrc(t, `2 <= 2`), true)
	wantBool(t, evalSrc(t, `1 > 2`), false)
	wantBool(t, evalSrc(t, `3 >= 4`), false)
	wantBool(t, evalSrc(t, `1 /= 2`), true)
	wantBool(t, evalSrc(t, `2 == 2`), true)
}

func Test_Eval_Boolean_Operators(t *testing.T) {
	wantBool(t, evalSrc(t, `true and false`), false)
	wantBool(t, evalSrc(t, `true or false`), true)
	wantBool(t, evalSrc(t, `1 < 2 and 2 < 3`), true)
}

func Test_Eval_Cannot_Lift_On_Type_Mismatch(t *testing.T) {
	wantExn(t, evalSrc(t, `1 + true`), "Cannot lift")
	wantExn(t, evalSrc(t, `true < false`), "Cannot lift")
	wantExn(t, evalSrc(t, `1 and 2`), "Cannot lift")
	// An exn operand is not an integer either.
	wantExn(t, evalSrc(t, `1 + 1 / 0`), "Cannot lift")
	// Chained comparison goes bool < int, which cannot lift.
	wantExn(t, evalSrc(t, `1 < 2 < 3`), "Cannot lift")
}

func Test_Eval_Boolean_Operators_Evaluate_Both_Sides(t *testing.T) {
	// "or" does not short-circuit: the ill-typed right operand poisons it.
	wantExn(t, evalSrc(t, `true or 1`), "Cannot lift")
	wantExn(t, evalSrc(t, `false and 1`), "Cannot lift")
}

// --- conditionals -------------------------------------------------------------

func Test_Eval_If_Takes_Exactly_One_Branch(t *testing.T) {
	// The untaken branch must not be evaluated.
	wantInt(t, evalSrc(t, `if true then 1 else 1 / 0 fi`), 1)
	wantInt(t, evalSrc(t, `if false then 1 / 0 else 2 fi`), 2)
}

func Test_Eval_If_Condition_Must_Be_Bool(t *testing.T) {
	wantExn(t, evalSrc(t, `if 1 then 2 else 3 fi`), "Condition is not a Bool")
	wantExn(t, evalSrc(t, `if 1 / 0 then 2 else 3 fi`), "Condition is not a Bool")
}

// --- let ----------------------------------------------------------------------

func Test_Eval_Let_Binds_Simultaneously(t *testing.T) {
	// The y binding sees the OUTER x, not the sibling binding.
	env := NewEnv().Insert("x", IntVal(10))
	wantInt(t, evalIn(t, `let [x := 1; y := x] y end`, env), 10)

	// With no outer x the sibling reference fails.
	wantExn(t, evalSrc(t, `let [x := 1; y := x] y end`), "No match in env")
}

func Test_Eval_Let_Overlays_Outer_Env(t *testing.T) {
	env := NewEnv().Insert("x", IntVal(1)).Insert("z", IntVal(100))
	wantInt(t, evalIn(t, `let [x := 2] x + z end`, env), 102)
	// The outer binding is untouched afterwards.
	wantInt(t, env["x"], 1)
}

// --- functions ----------------------------------------------------------------

func Test_Eval_Closure_Captures_Creation_Env(t *testing.T) {
	// Free variables resolve against the captured env, not the caller's.
	env := NewEnv().Insert("n", IntVal(1))
	clo := evalIn(t, `fn [x] x + n end`, env)
	if clo.Tag != VTClo {
		t.Fatalf("want closure, got %#v", clo)
	}

	caller := NewEnv().Insert("n", IntVal(100)).Insert("f", clo)
	wantInt(t, evalIn(t, `apply f (1)`, caller), 2)
}

func Test_Eval_Apply_Args_Evaluate_In_Caller_Env(t *testing.T) {
	env := NewEnv().Insert("a", IntVal(5))
	clo := evalIn(t, `fn [x] x end`, NewEnv())
	caller := env.Insert("f", clo)
	wantInt(t, evalIn(t, `apply f (a + 1)`, caller), 6)
}

func Test_Eval_Params_Shadow_Captured_Bindings(t *testing.T) {
	env := NewEnv().Insert("x", IntVal(1))
	clo := evalIn(t, `fn [x] x end`, env)
	caller := NewEnv().Insert("f", clo)
	wantInt(t, evalIn(t, `apply f (9)`, caller), 9)
}

func Test_Eval_Apply_To_Non_Closure(t *testing.T) {
	wantExn(t, evalSrc(t, `apply 1 (2)`), "Apply to non-closure")
	wantExn(t, evalSrc(t, `apply x (2)`), "Apply to non-closure")
}

func Test_Eval_Apply_Arity_Mismatch(t *testing.T) {
	wantExn(t, evalSrc(t, `apply fn [x, y] x end (1)`), "Wrong number of arguments")
	wantExn(t, evalSrc(t, `apply fn [x] x end (1, 2)`), "Wrong number of arguments")
	wantExn(t, evalSrc(t, `apply fn [] 1 end (2)`), "Wrong number of arguments")
}

func Test_Eval_Self_Application_Recursion(t *testing.T) {
	// Factorial by passing the function to itself.
	src := `let [f := fn [g, n] if n == 0 then 1 else n * apply g (g, n - 1) fi end]
	          apply f (f, 5)
	        end`
	wantInt(t, evalSrc(t, src), 120)
}

func Test_Eval_Exn_Is_A_First_Class_Value(t *testing.T) {
	// A failure can be bound and returned like any other value.
	v := evalSrc(t, `let [e := 1 / 0] e end`)
	wantExn(t, v, "Division by 0")
	if !strings.HasPrefix(FormatValue(v), "exn: ") {
		t.Fatalf("exn rendering wrong: %q", FormatValue(v))
	}
}
