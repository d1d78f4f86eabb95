package eval

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Knetic/govaluate"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// accumulator backs the stateful tally/total builtins. One instance
// per Program, shared between per-line and final expressions.
type accumulator struct {
	sum float64
}

// builtins returns the whitelisted function table. All numeric values
// are float64, matching govaluate's numeric model.
func builtins(acc *accumulator) map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"num": func(args ...any) (any, error) {
			return toNumber("num", args)
		},
		"str": func(args ...any) (any, error) {
			if len(args) != 1 {
				return nil, arityError("str", 1, len(args))
			}
			return FormatValue(args[0]), nil
		},
		"len": func(args ...any) (any, error) {
			s, err := toString("len", args)
			if err != nil {
				return nil, err
			}
			return float64(utf8.RuneCountInString(s)), nil
		},
		"upper": func(args ...any) (any, error) {
			s, err := toString("upper", args)
			if err != nil {
				return nil, err
			}
			return strings.ToUpper(s), nil
		},
		"lower": func(args ...any) (any, error) {
			s, err := toString("lower", args)
			if err != nil {
				return nil, err
			}
			return strings.ToLower(s), nil
		},
		"title": func(args ...any) (any, error) {
			s, err := toString("title", args)
			if err != nil {
				return nil, err
			}
			return cases.Title(language.Und).String(s), nil
		},
		"trim": func(args ...any) (any, error) {
			s, err := toString("trim", args)
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(s), nil
		},
		"contains": func(args ...any) (any, error) {
			if len(args) != 2 {
				return nil, arityError("contains", 2, len(args))
			}
			s, ok1 := args[0].(string)
			sub, ok2 := args[1].(string)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("contains: want (string, string)")
			}
			return strings.Contains(s, sub), nil
		},
		"replace": func(args ...any) (any, error) {
			if len(args) != 3 {
				return nil, arityError("replace", 3, len(args))
			}
			s, ok1 := args[0].(string)
			from, ok2 := args[1].(string)
			to, ok3 := args[2].(string)
			if !ok1 || !ok2 || !ok3 {
				return nil, fmt.Errorf("replace: want (string, string, string)")
			}
			return strings.ReplaceAll(s, from, to), nil
		},
		"comma": func(args ...any) (any, error) {
			f, err := toNumber("comma", args)
			if err != nil {
				return nil, err
			}
			return humanize.Commaf(f), nil
		},
		"bytes": func(args ...any) (any, error) {
			f, err := toNumber("bytes", args)
			if err != nil {
				return nil, err
			}
			if f < 0 {
				return nil, fmt.Errorf("bytes: negative size %v", f)
			}
			return humanize.Bytes(uint64(f)), nil
		},
		"tally": func(args ...any) (any, error) {
			f, err := toNumber("tally", args)
			if err != nil {
				return nil, err
			}
			acc.sum += f
			return acc.sum, nil
		},
		"total": func(args ...any) (any, error) {
			if len(args) != 0 {
				return nil, arityError("total", 0, len(args))
			}
			return acc.sum, nil
		},
	}
}

func arityError(name string, want, got int) error {
	return fmt.Errorf("%s: want %d argument(s), got %d", name, want, got)
}

func toString(name string, args []any) (string, error) {
	if len(args) != 1 {
		return "", arityError(name, 1, len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("%s: want string, got %T", name, args[0])
	}
	return s, nil
}

func toNumber(name string, args []any) (float64, error) {
	if len(args) != 1 {
		return 0, arityError(name, 1, len(args))
	}
	switch v := args[0].(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", name, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s: want number or numeric string, got %T", name, args[0])
	}
}
