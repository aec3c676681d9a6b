package typetable

import (
	"strconv"
	"strings"

	"github.com/wippyai/layoutview/errors"
)

// ParseTemplateArgs returns the top-level template arguments of the last
// template argument list in name, e.g. ["int", "4"] for
// "ocudu::static_vector<int, 4>". Names without a list return nil.
func ParseTemplateArgs(name string) ([]string, error) {
	var (
		args  []string
		cur   []string
		depth int
		start int
	)
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '<', '(', '[':
			if depth == 0 && name[i] == '<' {
				cur = []string{}
				start = i + 1
			}
			depth++
		case '>', ')', ']':
			depth--
			if depth < 0 {
				return nil, unbalanced(name)
			}
			if depth == 0 && name[i] == '>' {
				if arg := strings.TrimSpace(name[start:i]); arg != "" || len(cur) > 0 {
					cur = append(cur, arg)
				}
				args, cur = cur, nil
			}
		case ',':
			if depth == 1 && cur != nil {
				cur = append(cur, strings.TrimSpace(name[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, unbalanced(name)
	}
	return args, nil
}

func unbalanced(name string) error {
	return errors.InvalidInput(errors.PhaseResolve, "unbalanced template argument list in "+strconv.Quote(name))
}

// ParseConstant parses an integral template argument: decimal, hex or octal
// literals with optional u/l suffixes, and true/false.
func ParseConstant(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "true":
		return 1, true
	case "false":
		return 0, true
	}
	s = strings.TrimRight(s, "uUlL")
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return v, true
	}
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return int64(v), true
	}
	return 0, false
}
