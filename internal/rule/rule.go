// Package rule evaluates the visibility expressions attached to navigation
// links. Expressions use the expr language (https://expr-lang.org) and must
// evaluate to a boolean.
package rule

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Env is the set of variables exposed to a rule.
type Env struct {
	SignedIn      bool   `expr:"signedIn"`
	Mobile        bool   `expr:"mobile"`
	Path          string `expr:"path"`
	Name          string `expr:"name"`
	Notifications int    `expr:"notifications"`
}

type Rule interface {
	Eval(env Env) (bool, error)
	String() string
}

const (
	Always   = "true"
	SignedIn = "signedIn"
)

type Expr struct {
	script  string
	program *vm.Program

	compileOnce sync.Once
	compileErr  error
}

// Eval implements Rule.
func (r *Expr) Eval(env Env) (bool, error) {
	program, err := r.Compile()
	if err != nil {
		return false, errors.WithStack(err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return false, errors.WithStack(err)
	}

	visible, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("unexpected rule '%s' result type '%T', expected boolean", r.script, result)
	}

	return visible, nil
}

// Compile parses the rule once; later calls return the cached result.
func (r *Expr) Compile() (*vm.Program, error) {
	r.compileOnce.Do(func() {
		program, err := expr.Compile(r.script, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			r.compileErr = errors.Wrapf(err, "could not compile rule '%s'", r.script)
			return
		}

		r.program = program
	})
	if r.compileErr != nil {
		return nil, errors.WithStack(r.compileErr)
	}

	return r.program, nil
}

func (r *Expr) String() string {
	return r.script
}

// New returns a rule for script. An empty script is always visible.
func New(script string) *Expr {
	if script == "" {
		script = Always
	}

	return &Expr{script: script}
}

var _ Rule = &Expr{}

type Func func(env Env) bool

// Eval implements Rule.
func (fn Func) Eval(env Env) (bool, error) {
	return fn(env), nil
}

func (fn Func) String() string {
	return "<func>"
}

var _ Rule = Func(nil)
