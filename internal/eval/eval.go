// Package eval compiles and runs the restricted per-line expression
// grammar: govaluate expressions over a prepared environment, with the
// current line bound to x and the line number bound to n. There is no
// dynamic code execution; only arithmetic, comparisons, logical
// operators, string operations, named variables, and the whitelisted
// builtin functions are available.
package eval

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/Knetic/govaluate"
)

// Reserved variable names bound by the evaluator itself.
const (
	// VarLine is the current line (float64 when the line parses as a
	// number, string otherwise).
	VarLine = "x"
	// VarLineNum is the 1-based line number; after end of input it
	// holds the total number of lines read.
	VarLineNum = "n"
)

type compiledExpr struct {
	label string
	src   string
	expr  *govaluate.EvaluableExpression
}

// Program is a compiled set of per-line expressions, an environment
// prepared from init bindings, and an optional final expression.
// A Program is single-use and not safe for concurrent evaluation.
type Program struct {
	exprs  []compiledExpr
	last   *compiledExpr
	params map[string]any
	acc    *accumulator
}

var bindingRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=([^=].*)$`)

// Compile builds a Program. Each init binding has the form
// "name = expression" and is evaluated once, in order, binding name in
// the environment for all later expressions. A malformed binding, a
// binding that fails to evaluate, or an expression that fails to parse
// is a fatal compile error.
func Compile(exprs []string, inits []string, last string) (*Program, error) {
	p := &Program{
		params: make(map[string]any, len(inits)+2),
		acc:    &accumulator{},
	}
	funcs := builtins(p.acc)

	for _, init := range inits {
		m := bindingRe.FindStringSubmatch(init)
		if m == nil {
			return nil, fmt.Errorf("eval: init %q: want form \"name = expression\"", init)
		}
		name, src := m[1], m[2]
		if name == VarLine || name == VarLineNum {
			return nil, fmt.Errorf("eval: init %q: %q is reserved", init, name)
		}
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(src, funcs)
		if err != nil {
			return nil, fmt.Errorf("eval: init %q: %w", init, err)
		}
		v, err := expr.Evaluate(p.params)
		if err != nil {
			return nil, fmt.Errorf("eval: init %q: %w", init, err)
		}
		p.params[name] = v
	}

	for i, src := range exprs {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(src, funcs)
		if err != nil {
			return nil, fmt.Errorf("eval: expr[%d] %q: %w", i, src, err)
		}
		p.exprs = append(p.exprs, compiledExpr{
			label: fmt.Sprintf("expr[%d]", i),
			src:   src,
			expr:  expr,
		})
	}

	if last != "" {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(last, funcs)
		if err != nil {
			return nil, fmt.Errorf("eval: last %q: %w", last, err)
		}
		p.last = &compiledExpr{label: "expr[last]", src: last, expr: expr}
	}

	return p, nil
}

// Eval runs the expression chain over one line. Expressions run in
// order; false drops the line, true keeps the current value, and any
// other result replaces the current value for the next expression.
// The returned bool reports whether the line produced output.
func (p *Program) Eval(line string, n int) (string, bool, error) {
	if len(p.exprs) == 0 {
		return line, true, nil
	}

	var x any = line
	if f, err := strconv.ParseFloat(line, 64); err == nil {
		x = f
	}
	p.params[VarLineNum] = float64(n)

	for _, ce := range p.exprs {
		p.params[VarLine] = x
		r, err := ce.expr.Evaluate(p.params)
		if err != nil {
			return "", false, fmt.Errorf("eval: %s %q(%v): %w", ce.label, ce.src, x, err)
		}
		slog.Debug("eval", "expr", ce.label, "in", x, "out", r)
		switch v := r.(type) {
		case bool:
			if !v {
				return "", false, nil
			}
		default:
			x = v
		}
	}

	return FormatValue(x), true, nil
}

// Final evaluates the final expression, if any, after end of input.
// The environment carries the init bindings, the accumulator state,
// and n bound to the number of lines read.
func (p *Program) Final(n int) (string, bool, error) {
	if p.last == nil {
		return "", false, nil
	}
	delete(p.params, VarLine)
	p.params[VarLineNum] = float64(n)

	r, err := p.last.expr.Evaluate(p.params)
	if err != nil {
		return "", false, fmt.Errorf("eval: %s %q: %w", p.last.label, p.last.src, err)
	}
	slog.Debug("eval", "expr", p.last.label, "out", r)
	return FormatValue(r), true, nil
}

// FormatValue renders an expression result the way it is printed:
// floats without a trailing ".0", strings verbatim.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
