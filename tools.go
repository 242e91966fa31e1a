package xmltree

import (
	"strings"
	"unicode"

	"github.com/casbin/govaluate"
	"github.com/pkg/errors"
)

// strip trims leading and trailing whitespace.
func strip(s string) string {
	return strings.TrimFunc(s, unicode.IsSpace)
}

// condense collapses every run of whitespace into a single space.
// Leading and trailing runs are collapsed, not removed.
func condense(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func split(s string) []string {
	return strings.FieldsFunc(s, unicode.IsSpace)
}

func join(words []string) string {
	return strings.Join(words, " ")
}

// splitOne returns the first whitespace-delimited word of s.
func splitOne(s string) string {
	first, _ := splitFirst(s)
	return first
}

// splitFirst returns the first word of s and the remainder after it with
// leading whitespace removed.
func splitFirst(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimLeftFunc(s[idx:], unicode.IsSpace)
}

func eval[T any](expr *govaluate.EvaluableExpression, params govaluate.Parameters) (T, error) {
	var zero T
	response, err := expr.Eval(params)
	if err != nil {
		return zero, errors.WithStack(err)
	}
	value, ok := response.(T)
	if !ok {
		return zero, errors.Errorf("expression %q: expected %T, got %T", expr.String(), zero, response)
	}
	return value, nil
}
