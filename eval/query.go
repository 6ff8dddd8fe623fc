package eval

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/types"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/gff-format/debug"
	"github.com/signadot/gff-format/ir"
)

// Query is a compiled filter. A Query is not safe for concurrent use.
type Query struct {
	src  string
	prg  *vm.Program
	root *ir.Struct
}

// Compile compiles src, which must evaluate to a bool.
func Compile(src string) (*Query, error) {
	q := &Query{src: src}
	opts := append(q.exprOpts(), expr.AsBool(), expr.Env(compileEnv()))
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", src, err)
	}
	q.prg = prg
	return q, nil
}

func (q *Query) String() string {
	return q.src
}

func (q *Query) exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("get", func(params ...any) (any, error) {
			if q.root == nil {
				return nil, errors.New("get: no tree")
			}
			res, err := q.root.Get(params[0].(string))
			if err != nil {
				return nil, err
			}
			return ToAny(res), nil
		},
			new(func(string) any)),
		expr.Function("has", func(params ...any) (any, error) {
			if q.root == nil {
				return false, nil
			}
			_, err := q.root.Resolve(params[0].(string))
			return err == nil, nil
		},
			new(func(string) bool)),
	}
}

// Match evaluates the query for one entry of root's walk.
func (q *Query) Match(root *ir.Struct, e *ir.Entry) (bool, error) {
	q.root = root
	res, err := expr.Run(q.prg, EntryEnv(e))
	if err != nil {
		return false, fmt.Errorf("%s: %w", e.Path, err)
	}
	ok, _ := res.(bool)
	if debug.Path() {
		debug.Logf("query %q at %s: %t\n", q.src, e.Path, ok)
	}
	return ok, nil
}

// Find returns the entries of root's walk that match.
func (q *Query) Find(root *ir.Struct) ([]*ir.Entry, error) {
	var res []*ir.Entry
	err := root.Walk(func(e *ir.Entry) error {
		ok, err := q.Match(root, e)
		if err != nil {
			return err
		}
		if ok {
			res = append(res, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// compileEnv declares the query variables. value is typed any, it
// holds numbers, strings or maps depending on the node.
func compileEnv() types.Map {
	return types.Map{
		"path":   types.String,
		"label":  types.String,
		"kind":   types.String,
		"value":  types.Any,
		"strref": types.Int64,
		"depth":  types.Int,
	}
}
