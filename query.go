package xmltree

import (
	"strconv"

	"github.com/casbin/govaluate"
	"github.com/pkg/errors"
)

// nodeParameters exposes a node to an expression as the variables tag, data
// and children.
type nodeParameters struct {
	node *Node
}

func (p nodeParameters) Get(name string) (interface{}, error) {
	switch name {
	case "tag":
		return p.node.tag, nil
	case "data":
		return p.node.data, nil
	case "children":
		return float64(p.node.ChildCount()), nil
	}
	return nil, errors.Errorf("unknown variable %q", name)
}

func keyArgument(name string, arguments []interface{}) (string, error) {
	if len(arguments) != 1 {
		return "", errors.Errorf("%s: expected 1 argument, got %d", name, len(arguments))
	}
	key, ok := arguments[0].(string)
	if !ok {
		return "", errors.Errorf("%s: expected string argument, got %T", name, arguments[0])
	}
	return key, nil
}

// Query returns node and its descendants, in pre-order, for which the boolean
// expression holds. Besides the variables tag, data and children the
// expression may call attr(key), has(key) and num(key):
//
//	tag == 'item' && num('price') < 5
func (node *Node) Query(expression string) ([]*Node, error) {
	var current *Node
	functions := map[string]govaluate.ExpressionFunction{
		"attr": func(arguments ...interface{}) (interface{}, error) {
			key, err := keyArgument("attr", arguments)
			if err != nil {
				return nil, err
			}
			value, _ := current.attrs.Get(key)
			return value, nil
		},
		"has": func(arguments ...interface{}) (interface{}, error) {
			key, err := keyArgument("has", arguments)
			if err != nil {
				return nil, err
			}
			return current.attrs.Has(key), nil
		},
		"num": func(arguments ...interface{}) (interface{}, error) {
			key, err := keyArgument("num", arguments)
			if err != nil {
				return nil, err
			}
			value, _ := current.attrs.Get(key)
			number, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return 0.0, nil
			}
			return number, nil
		},
	}
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, functions)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	found := make([]*Node, 0)
	var evalErr error
	node.Walk(func(n *Node) bool {
		if evalErr != nil {
			return false
		}
		current = n
		ok, err := eval[bool](expr, nodeParameters{node: n})
		if err != nil {
			evalErr = err
			return false
		}
		if ok {
			found = append(found, n)
		}
		return true
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return found, nil
}
